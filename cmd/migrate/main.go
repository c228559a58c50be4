package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/roleready/roleready-api/config"
	"github.com/roleready/roleready-api/pkg/db"
	"github.com/roleready/roleready-api/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", string(db.MigrateUp), "up, down (one step) or version")
	path := flag.String("path", "file://migrations", "migration source URL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		Environment: cfg.Server.AppEnv,
		ServiceName: "roleready-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *direction == "version" {
		version, dirty, err := db.MigrationVersion(cfg.Database, *path)
		if err != nil {
			logger.Error("Failed to read migration version", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("Database schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	}

	logger.Info("Starting database migrations",
		zap.String("database", db.MaskURL(cfg.Database.URL)),
		zap.String("direction", *direction))

	if err := db.RunMigrations(cfg.Database, *path, db.MigrationDirection(*direction)); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database migrations completed successfully")
}
