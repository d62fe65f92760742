package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-reconciler/internal/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0.005, cfg.ZeroTolerance)
	assert.Equal(t, float64(50), cfg.RateChangeThreshold)
	assert.Equal(t, float64(20), cfg.RolePercents["RD1"])
	assert.Contains(t, cfg.OutputRoles, "OVR")
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reconciler.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
RateChangeThreshold = 75.0

[RolePercents]
RD1 = 25.0
`), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, float64(75), cfg.RateChangeThreshold)
	assert.Equal(t, float64(25), cfg.RolePercents["RD1"])
	assert.Equal(t, 0.005, cfg.ZeroTolerance, "omitted fields keep defaults")
}

func TestRoleTable(t *testing.T) {
	table := Default().RoleTable()

	base := table.Resolve("RD1")
	assert.Equal(t, domain.RoleKindBase, base.Kind)
	assert.Equal(t, "RD1", base.Bucket)
	assert.Equal(t, "20", base.Percent.String())

	overridden := table.Resolve("RD2-05")
	assert.Equal(t, domain.RoleKindOverridden, overridden.Kind)
	assert.Equal(t, "RD2", overridden.Bucket)
	assert.Equal(t, "5", overridden.Percent.String())

	catchAll := table.Resolve("HA7")
	assert.Equal(t, domain.RoleKindCatchAll, catchAll.Kind)
	assert.Equal(t, domain.CatchAllRole, catchAll.Bucket)

	unknown := table.Resolve("ZZZ")
	assert.Equal(t, domain.CatchAllRole, unknown.Bucket)
}

func TestDetectorConfig(t *testing.T) {
	dc := Default().DetectorConfig()
	assert.Equal(t, "0.005", dc.ZeroTolerance.String())
	assert.Equal(t, "50", dc.RateChangeThreshold.String())
}
