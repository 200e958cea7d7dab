package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"prioritizer/internal/daemon"
	"prioritizer/internal/di"
	"prioritizer/internal/infrastructure/config"
	"prioritizer/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "prioritizerd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("failed to create config loader: %w", err)
	}
	if len(os.Args) > 1 {
		loader, err = config.LoadFrom(os.Args[1])
		if err != nil {
			return fmt.Errorf("failed to create config loader: %w", err)
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := logging.Setup(cfg.Logging)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	container, cleanup, err := di.InitializeContainer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer cleanup()

	// Handle shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.WithFields(log.Fields{
		"backend": cfg.Storage.Backend,
		"socket":  cfg.SocketPath(),
	}).Info("prioritizer daemon starting")

	server := daemon.NewServer(container)
	if err := server.Start(ctx); err != nil {
		return err
	}

	logger.Info("prioritizer daemon stopped")
	return os.RemoveAll(cfg.SocketPath())
}
