package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ideabox/internal/config"
	"github.com/rpggio/ideabox/internal/logging"
	"github.com/rpggio/ideabox/internal/mcp"
	"github.com/rpggio/ideabox/internal/persistence"
)

var version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ideabox: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Logs go to stderr so stdout stays clean for JSON-RPC.
	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := persistence.Open(ctx, persistence.Options{
		Path:               cfg.DB.Path,
		MaxAttachmentBytes: cfg.Content.MaxAttachmentBytes,
		RecentWindowDays:   cfg.Content.RecentWindowDays,
	}, logger)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.DB.Path, "error", err)
		return err
	}
	defer store.Close()

	server := mcp.NewServer(mcp.Config{
		Store:   store,
		Logger:  logger,
		Version: version,
	})

	logger.Info("starting stdio transport", "db", cfg.DB.Path, "version", version)

	// Run blocks until stdin closes or a signal cancels ctx
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}
