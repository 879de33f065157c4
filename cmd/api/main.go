package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bluetec-catalog/internal/bootstrap"
	infraconfig "bluetec-catalog/internal/infrastructure/config"
	httpserver "bluetec-catalog/internal/infrastructure/http"
	"bluetec-catalog/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	api, cleanup, err := bootstrap.InitAPI(ctx)
	if err != nil {
		logger.Fatal("init api", zap.Error(err))
	}
	defer cleanup()

	if api.Config.WarmOnAPI {
		go api.Warmer.Start(ctx)
	}

	addr := ":" + api.Config.Port
	server := &http.Server{
		Addr:    addr,
		Handler: httpserver.NewRouter(api.Server),
	}

	go func() {
		logger.Info("server started", zap.String("addr", addr), zap.String("session_backend", api.Config.SessionBackend))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
