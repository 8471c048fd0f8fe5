package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/mlb-gif-service/internal/config"
	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/server"
)

const (
	appName    = "mlb-gif-service"
	appVersion = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logger := logging.NewLogger(logging.Config{Service: appName, Version: appVersion})
		logging.Error(logger, "invalid configuration", err)
		os.Exit(1)
	}
	logger := newLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}

func newLogger(cfg config.Config, out io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: appName,
		Version: appVersion,
		Output:  out,
	})
}
