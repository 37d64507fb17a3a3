package main

import (
	"flag"
	"log"
	"os"

	"go-erp/internal/config"
	"go-erp/internal/features/module"

	"go.uber.org/zap"
)

// catalog exports the module and route catalog the API would load as an
// Excel workbook, for review by the people who maintain roles.
func main() {
	out := flag.String("out", "modules.xlsx", "output workbook path")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	registry := module.Load(cfg, logger)

	f, err := os.Create(*out)
	if err != nil {
		logger.Fatal("Failed to create workbook", zap.String("path", *out), zap.Error(err))
	}
	defer f.Close()

	if err := module.ExportWorkbook(registry, f); err != nil {
		logger.Fatal("Failed to export catalog", zap.Error(err))
	}
	logger.Info("Catalog exported",
		zap.String("source", registry.Source()),
		zap.String("path", *out),
		zap.Int("modules", len(registry.ActiveModules())),
	)
}
