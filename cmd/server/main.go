package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	kingpin "github.com/alecthomas/kingpin/v2"

	"github.com/maxviazov/pokedex-service/internal/app"
	"github.com/maxviazov/pokedex-service/internal/config"
	"github.com/maxviazov/pokedex-service/internal/logger"
)

// @title        Pokedex Service API
// @version      0.1.0
// @description  CRUD catalog of Pokemon with paginated listing.
// @BasePath     /
func main() {
	var (
		configFile = kingpin.Flag("config", "Path to YAML config file").Short('c').Default("config.yaml").Envar("APP_CONFIG").String()
		envFiles   = kingpin.Flag("env-file", "dotenv file to load before reading config (repeatable)").Strings()
	)
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	// Load application config
	cfg, err := config.Load(*configFile, *envFiles...)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	appLogger.Info().Str("config", *configFile).Msg("✅ Logger initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error().Err(err).Msg("❌ Startup failed")
		os.Exit(1)
	}
	defer a.Close()

	appLogger.Info().Str("env", cfg.App.Env).Msg("🚀 Service started")
	if err := a.Run(ctx); err != nil {
		appLogger.Error().Err(err).Msg("server stopped with error")
		a.Close()
		os.Exit(1)
	}
	appLogger.Info().Msg("👋 Service stopped")
}
