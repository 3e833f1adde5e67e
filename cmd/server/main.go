package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/writerfolio/internal/app"
	"github.com/nfrund/writerfolio/internal/config"
	"github.com/nfrund/writerfolio/internal/logging"
)

func main() {
	logging.New() // Initialize the structured logger
	cfg := config.New()

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("Error during shutdown", "error", err)
		}
	}()
	return a.Server.Start(ctx)
}
