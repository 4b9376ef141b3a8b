package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduforge/backend/config"
	"eduforge/backend/routes"
	"eduforge/backend/storage"
	"eduforge/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := utils.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("Error initializing database", "error", err)
	}

	store, err := storage.Open(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Error initializing file storage", "error", err)
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	app := routes.NewApp(db, cfg, store, logger)

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort, "db", cfg.DBDriver, "media", cfg.MediaBackend)
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			logger.Error("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
