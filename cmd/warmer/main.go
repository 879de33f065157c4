package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bluetec-catalog/internal/bootstrap"
	"bluetec-catalog/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w, cleanup, err := bootstrap.InitWarmer(ctx)
	if err != nil {
		log.Fatal("init warmer", zap.Error(err))
	}
	defer cleanup()

	w.Start(ctx)
}
