package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"commission-reconciler/internal/config"
	"commission-reconciler/internal/gateway"
	"commission-reconciler/internal/usecase"
)

func main() {
	// Define command-line flags
	masterFile := flag.String("master", "", "Path to the compensation-key CSV export (required)")
	carrierFilesStr := flag.String("carrier", "", "Comma-separated list of carrier statement files, CSV or XLSX (required)")
	month := flag.String("month", "", "Processing month, YYYY-MM (required)")
	priorFile := flag.String("prior", "", "Path to the previous month's matched-rows snapshot (optional)")
	configFile := flag.String("config", "", "Path to the TOML configuration file (optional)")
	snapshotOut := flag.String("snapshot-out", "", "Where to write this month's matched-rows snapshot (optional)")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)

	// Validate required flags
	if *masterFile == "" || *carrierFilesStr == "" || *month == "" {
		fmt.Println("Error: flags -master, -carrier and -month are required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.WithError(err).Fatal("could not load configuration")
	}

	carrierFiles := strings.Split(*carrierFilesStr, ",")

	// --- Dependency Injection (Wiring the application) ---
	// 1. Create the repository (the outermost layer)
	repo := gateway.NewFileRepository(logger)

	// 2. Create the usecase and inject the repository (the core logic layer)
	reconciliationUseCase := usecase.NewReconciliationUseCase(repo, cfg.RoleTable(), cfg.DetectorConfig(), logger)

	// --- Execute the Usecase ---
	ctx := context.Background()
	report, err := reconciliationUseCase.Reconcile(ctx, *month, *masterFile, carrierFiles, *priorFile)
	if err != nil {
		logger.WithError(err).Fatal("reconciliation failed")
	}

	if *snapshotOut != "" {
		if err := repo.WriteMatchedRows(ctx, *snapshotOut, report.Matched); err != nil {
			logger.WithError(err).Fatal("could not write matched-rows snapshot")
		}
	}

	logger.Info(report.Summary.String())

	// --- Present the Output ---
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.WithError(err).Fatal("failed to generate JSON report")
	}

	fmt.Println(string(output))
}
