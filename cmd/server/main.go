package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SAP-F-2025/question-authoring-service/internal/auth"
	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/cache"
	"github.com/SAP-F-2025/question-authoring-service/internal/config"
	"github.com/SAP-F-2025/question-authoring-service/internal/handlers"
	"github.com/SAP-F-2025/question-authoring-service/internal/monitoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories/memory"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/question-authoring-service/internal/services"
	"github.com/SAP-F-2025/question-authoring-service/internal/utils"
	"github.com/SAP-F-2025/question-authoring-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	if err := run(cfg, logger); err != nil {
		slogger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	slogger := utils.ToSlogLogger(logger)

	// Storage
	repo, err := newDraftRepository(cfg)
	if err != nil {
		return err
	}
	logger.Info("Draft storage ready", "driver", cfg.StorageDriver)

	// Cache
	draftCache, closeCache, err := newDraftCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	categories, err := loadCategories(cfg.CategoryTreeFile)
	if err != nil {
		return err
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}
	defer publisher.Close()

	metrics := monitoring.NewMetrics()

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:       repo,
		Cache:      draftCache,
		CacheTTL:   cfg.DraftCacheTTL,
		Publisher:  publisher,
		Categories: categories,
		Logger:     slogger,
		Observer:   metrics,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ContextLogger(logger))
	router.Use(utils.LoggerMiddleware(logger, "/health", "/metrics"))
	router.Use(metrics.Middleware())

	handlers.NewHandlerManager(serviceManager, logger).SetupRoutes(router, auth.New(cfg.Auth))
	router.GET("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "HTTP server failed")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func newDraftRepository(cfg *config.Config) (repositories.DraftRepository, error) {
	if cfg.StorageDriver == config.StorageMemory {
		return memory.NewDraftMemory(), nil
	}
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return postgres.NewDraftPostgreSQL(db), nil
}

func newDraftCache(cfg *config.Config) (cache.CacheService, func(), error) {
	client, err := pkg.NewRedisClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return cache.NewNoopCache(), func() {}, nil
	}

	var zl *zap.Logger
	if cfg.IsProduction() {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to create cache logger: %w", err)
	}

	return cache.NewRedisCache(client, zl.Named("draft-cache")), func() {
		_ = zl.Sync()
		client.Close()
	}, nil
}

func loadCategories(path string) (*authoring.CategoryTree, error) {
	if path == "" {
		return authoring.DefaultCategoryTree(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open category tree: %w", err)
	}
	defer f.Close()
	return authoring.LoadCategoryTree(f)
}
