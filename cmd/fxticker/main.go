package main

import (
	"context"
	"os/signal"
	"syscall"

	"fxticker/config"
	"fxticker/internal/app"
	"fxticker/logger"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// Ctrl+C / SIGTERM ends the run
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, log); err != nil {
		log.Fatal("fxticker failed", zap.Error(err))
	}
}
