package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/qr-tracker/internal/config"
	"github.com/qr-tracker/internal/logging"
	"github.com/qr-tracker/internal/storage"
)

func main() {
	var (
		direction = flag.String("direction", "up", "Migration direction: up, down, or version")
		path      = flag.String("path", "migrations/postgres", "Path to migration files")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.InitGlobalLogger(
		logging.ParseLogLevel(cfg.Logging.Level),
		logging.FormatText,
	)
	logger := logging.GetGlobalLogger().WithField("component", "migrate")

	migrator := storage.NewMigrator(&cfg.Database.Postgres, *path)

	switch *direction {
	case "up":
		if err := migrator.Up(); err != nil {
			logger.WithError(err).Fatal("migration failed")
		}
		logger.Info("migrations applied")
	case "down":
		if err := migrator.Down(); err != nil {
			logger.WithError(err).Fatal("rollback failed")
		}
		logger.Info("last migration rolled back")
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			logger.WithError(err).Fatal("failed to read migration version")
		}
		logger.WithFields(map[string]interface{}{
			"version": version,
			"dirty":   dirty,
		}).Info("current migration version")
	default:
		fmt.Fprintf(os.Stderr, "unknown direction: %s (want up, down, or version)\n", *direction)
		os.Exit(1)
	}
}
