// Command seriesreport runs the full report pipeline: it loads the configured
// metric files, computes the calendar aggregations and statistical overlays,
// and writes the CSV and JSON artifacts to the output directory.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"gridcli/internal/config"
	"gridcli/internal/infrastructure"
	"gridcli/internal/services"
)

func main() {
	configPath := flag.String("config", "gridpulse.yaml", "path to the YAML configuration file")
	outDir := flag.String("out", "", "output directory override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration",
			slog.String("config", *configPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Report.OutputDir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting report run",
		slog.String("config", *configPath),
		slog.Int("metrics", len(cfg.Metrics)),
		slog.String("output_dir", cfg.Report.OutputDir))

	svc := services.NewReportService(cfg, logger)
	if err := svc.Run(context.Background()); err != nil {
		logger.Error("Report run failed", slog.String("error", err.Error()))
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}
