package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"freight-marketplace-backend/config"
	"freight-marketplace-backend/internal/api"
	"freight-marketplace-backend/internal/db"
	"freight-marketplace-backend/internal/seed"
	"freight-marketplace-backend/internal/store"
)

func main() {
	// .env is optional; it only provides CONFIG_PATH overrides locally.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.Fatalf("failed to load configuration from %s: %v", configPath, err)
		}
		// The demo runs fine without a config file: in-memory SQLite,
		// seeded fixtures.
		logrus.Warnf("no config file at %s, using defaults", configPath)
		cfg = config.Default()
	} else {
		logrus.Infof("configuration loaded from %s", configPath)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logrus.Fatalf("failed to initialize database: %v", err)
	}

	if cfg.Seed.Enabled {
		if err := seed.Load(gormDB); err != nil {
			logrus.Fatalf("failed to seed demo data: %v", err)
		}
	}

	appStore := store.NewGormStore(gormDB, cfg.Booking)
	logrus.Info("marketplace store initialized")

	router := api.NewRouter(appStore, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logrus.Info("Shutdown signal received, stopping services...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("HTTP server Shutdown: %v", err)
	}

	logrus.Info("Server gracefully stopped")
}
