package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/davidbz/matchwise/internal/app"
	"github.com/davidbz/matchwise/internal/config"
	"github.com/davidbz/matchwise/internal/http"
	"github.com/davidbz/matchwise/internal/observability"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := app.BuildContainer(ctx)

	// Configuration problems are reported before any provider or store is built.
	if err := container.Invoke(func(cfg *config.Config) error {
		return cfg.Validate()
	}); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := container.Invoke(func(*zap.Logger) {}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	err := container.Invoke(func(server *http.Server, lifecycle *app.Lifecycle) error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		var serveErr error
		select {
		case serveErr = <-errCh:
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Join(serveErr, server.Shutdown(shutdownCtx), lifecycle.Stop(shutdownCtx))
	})
	if err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}

	observability.FromContext(ctx).Info("server stopped")
}
