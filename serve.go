package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freegames/internal/config"
	"freegames/internal/services"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	mqClient, err := connectBroker(cfg)
	if err != nil {
		return err
	}
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
		defer func() {
			if err := mqClient.Close(); err != nil {
				slog.Error("error closing RabbitMQ client", "error", err)
			}
		}()
	}

	service, err := newService(cfg, repo, publisher)
	if err != nil {
		return err
	}
	app := newApp(service)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.AppPort, "storage", cfg.StorageDriver)
		listenErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		slog.Error("error during server shutdown", "error", err)
	}
	slog.Info("server gracefully stopped")
	return nil
}
