package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qr-tracker/internal/api"
	"github.com/qr-tracker/internal/config"
	"github.com/qr-tracker/internal/logging"
	"github.com/qr-tracker/internal/service"
	"github.com/qr-tracker/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.GetGlobalLogger().WithError(err).Fatal("failed to load configuration")
	}

	logging.InitGlobalLogger(
		logging.ParseLogLevel(cfg.Logging.Level),
		logging.ParseLogFormat(cfg.Logging.Format),
	)
	logger := logging.GetGlobalLogger()

	db, err := storage.NewPostgresDB(&cfg.Database.Postgres)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to Postgres")
	}
	defer db.Close()

	cache, err := storage.NewRedisCache(&cfg.Database.Redis)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to Redis")
	}
	defer cache.Close()

	users := storage.NewUserRepository(db)
	folders := storage.NewFolderRepository(db)
	codes := storage.NewQRCodeRepository(db)
	scans := storage.NewScanRepository(db)
	sessions := storage.NewSessionStore(cache, cfg.Session.TTL)

	authSvc := service.NewAuthService(users, sessions)
	folderSvc := service.NewFolderService(folders)
	qrSvc := service.NewQRCodeService(codes, folders, cfg.Server.PublicBaseURL)
	scanSvc := service.NewScanService(codes, scans)
	statsSvc := service.NewAnalyticsService(codes, scans)

	server := api.NewServer(
		cfg.Server.Host,
		cfg.Server.Port,
		authSvc,
		folderSvc,
		qrSvc,
		scanSvc,
		statsSvc,
	)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}

	logger.Info("server stopped")
}
