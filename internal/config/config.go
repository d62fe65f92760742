package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"commission-reconciler/internal/domain"
	"commission-reconciler/internal/usecase"
)

// Config holds the per-deployment knobs of a reconciliation run: the role
// percentage table and the dispute-detector thresholds. Both threshold
// values started life as hardcoded business constants and are expected to
// need tuning, which is why they live here.
type Config struct {
	RolePercents        map[string]float64 `toml:"RolePercents"`
	OutputRoles         []string           `toml:"OutputRoles"`
	ZeroTolerance       float64            `toml:"ZeroTolerance"`
	RateChangeThreshold float64            `toml:"RateChangeThreshold"`
}

// Default returns the built-in compensation plan and thresholds.
func Default() *Config {
	return &Config{
		RolePercents: map[string]float64{
			"RD1": 20, "RD2": 10, "RD3": 15, "RD4": 8, "RD5": 5,
			"RM1": 10, "RM2": 5, "RM3": 6, "RM4": 3,
			"OVR": 2,
		},
		OutputRoles: []string{
			"RD1", "RD2", "RD3", "RD4", "RD5",
			"RM1", "RM2", "RM3", "RM4", "OVR",
		},
		ZeroTolerance:       0.005,
		RateChangeThreshold: 50,
	}
}

// Load reads the configuration from the given path. An empty path or a
// missing file falls back to the defaults; fields omitted from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return cfg, nil
}

// RoleTable builds the splitter's role table from the configured plan.
func (c *Config) RoleTable() domain.RoleTable {
	percents := make(map[string]decimal.Decimal, len(c.RolePercents))
	for code, pct := range c.RolePercents {
		percents[code] = decimal.NewFromFloat(pct)
	}
	return domain.NewRoleTable(percents, c.OutputRoles)
}

// DetectorConfig builds the dispute-detector thresholds.
func (c *Config) DetectorConfig() usecase.DetectorConfig {
	return usecase.DetectorConfig{
		ZeroTolerance:       decimal.NewFromFloat(c.ZeroTolerance),
		RateChangeThreshold: decimal.NewFromFloat(c.RateChangeThreshold),
	}
}
