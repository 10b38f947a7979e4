package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/culinary-compass/backend/config"
	"github.com/culinary-compass/backend/internal/app"
	"github.com/culinary-compass/backend/internal/logging"
	"github.com/culinary-compass/backend/internal/server"
)

const warmTimeout = 2 * time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
	logging.Info().Msg("server stopped")
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("environment", string(cfg.Environment)).
		Str("embedding_model", cfg.Embedding.Model).
		Str("embedding_backend", cfg.Embedding.Backend).
		Msg("starting culinary compass api")

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logging.Error().Err(err).Msg("failed to release resources")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	warmCtx, cancel := context.WithTimeout(ctx, warmTimeout)
	defer cancel()
	if err := a.Warm(warmCtx); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	return server.New(cfg.Server.Host, cfg.Server.Port, a.Router, cfg.Server.ShutdownTimeout).Run(ctx)
}
