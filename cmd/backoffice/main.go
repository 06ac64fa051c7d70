package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/config"
	"github.com/fekuna/omnipos-backoffice/internal/container"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/server/grpcserver"
	"github.com/fekuna/omnipos-backoffice/internal/server/httpserver"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		FilePath:          cfg.Logger.FilePath,
		MaxSizeMB:         cfg.Logger.MaxSizeMB,
		MaxBackups:        cfg.Logger.MaxBackups,
		MaxAgeDays:        cfg.Logger.MaxAgeDays,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Wire dependencies
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, err := container.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Could not build dependencies", zap.Error(err))
	}
	defer func() {
		if err := c.Close(); err != nil {
			appLogger.Error("failed to close dependencies", zap.Error(err))
		}
	}()
	appLogger.Info("Backend configured", zap.String("base_url", cfg.Backend.BaseURL), zap.Bool("redis", c.Redis != nil))

	// 4. Background jobs
	go func() {
		refreshCtx, done := context.WithTimeout(ctx, cfg.Backend.Timeout)
		defer done()
		if err := c.RefreshTrashCounts(refreshCtx); err != nil {
			appLogger.Warn("initial trash counts incomplete", zap.Error(err))
		}
	}()
	go c.RunSweeper(ctx)

	// 5. Start servers
	httpServer := httpserver.New(cfg.Server.HTTPPort, httpserver.NewRouter(c), appLogger)
	grpcServer := grpcserver.New(cfg.Server.GRPCPort, appLogger)

	errs := make(chan error, 2)
	go func() { errs <- httpServer.Start() }()
	go func() { errs <- grpcServer.Start() }()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-quit:
		appLogger.Info("Shutting down server...", zap.String("signal", sig.String()))
	case err := <-errs:
		if err != nil {
			appLogger.Error("server failed", zap.Error(err))
		}
	}
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer done()
	if err := httpServer.Stop(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown incomplete", zap.Error(err))
	}
	grpcServer.Stop(shutdownCtx)
	appLogger.Info("Server stopped")
}
