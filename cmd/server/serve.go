package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamhub/video-catalog-go/internal/config"
	"github.com/streamhub/video-catalog-go/internal/db"
	"github.com/streamhub/video-catalog-go/internal/db/repository"
	"github.com/streamhub/video-catalog-go/internal/handler"
	"github.com/streamhub/video-catalog-go/internal/metrics"
	"github.com/streamhub/video-catalog-go/internal/router"
	"github.com/streamhub/video-catalog-go/internal/service"
	"github.com/streamhub/video-catalog-go/pkg/logger"
)

func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, db.ConfigFrom(cfg.Database))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close(pool)

	logger.Log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
		zap.Int32("maxConns", pool.Config().MaxConns),
	)

	var publisher service.EventPublisher = service.NoopPublisher{}
	var publisherHealth handler.HealthChecker
	if cfg.RabbitMQ.Enabled {
		mp, err := service.NewMessagePublisher(&cfg.RabbitMQ)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		publisher = mp
		publisherHealth = mp
	} else {
		logger.Log.Info("RabbitMQ disabled, domain events will not be published")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Log.Warn("Failed to close publisher", zap.Error(err))
		}
	}()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	videoRepo := repository.NewVideoRepository(pool)
	statsRepo := repository.NewEngagementRepository(pool)

	videoService := service.NewVideoService(videoRepo, statsRepo, publisher, m)
	engagementService := service.NewEngagementService(statsRepo, publisher, m)

	gin.SetMode(cfg.Server.Mode)
	engine := router.New(router.Options{
		Videos:      handler.NewVideoHandler(videoService),
		Engagement:  handler.NewEngagementHandler(engagementService),
		Health:      handler.NewHealthHandler(pool, publisherHealth),
		Metrics:     m,
		MetricsPath: cfg.Metrics.Path,
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("mode", cfg.Server.Mode),
			zap.Bool("rabbitmq", cfg.RabbitMQ.Enabled),
			zap.Bool("metrics", cfg.Metrics.Enabled),
		)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Graceful shutdown failed", zap.Error(err))
		if err := server.Close(); err != nil {
			logger.Log.Error("Failed to close server", zap.Error(err))
		}
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Log.Info("Server stopped gracefully")
	return nil
}
