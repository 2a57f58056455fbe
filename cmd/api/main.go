package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/auth"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/config"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/database"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/handler"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/metrics"
	middlewarepkg "github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/middleware"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/repository"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/router"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	logger := zap.L()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	m := metrics.New(prometheus.DefaultRegisterer)

	analyzer, err := service.BuildAnalyzer(ctx, cfg, m, logger)
	if err != nil {
		logger.Fatal("failed to build analyzer", zap.Error(err))
	}

	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	} else {
		logger.Warn("JWT_SECRET not set, authentication and history are disabled")
	}

	var analysesRepo repository.AnalysesRepository
	if cfg.DatabaseURL != "" && jwtManager != nil {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect database", zap.Error(err))
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
		analysesRepo = repository.NewPGXAnalysesRepository(pool)
	} else {
		logger.Info("analysis history disabled")
	}

	historyService := service.NewHistoryService(analysesRepo)

	handlers := router.Handlers{
		Analyze: handler.NewAnalyzeHandler(analyzer, historyService),
	}
	if historyService.Enabled() {
		handlers.History = handler.NewHistoryHandler(historyService)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
