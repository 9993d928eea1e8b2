package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agristack/farmdash/internal/access"
	"github.com/agristack/farmdash/internal/api"
	"github.com/agristack/farmdash/internal/bus"
	"github.com/agristack/farmdash/internal/cache"
	"github.com/agristack/farmdash/internal/config"
	"github.com/agristack/farmdash/internal/notify"
	"github.com/agristack/farmdash/internal/repository/postgres"
	"github.com/agristack/farmdash/internal/service"
	"github.com/agristack/farmdash/internal/storage"
	"github.com/agristack/farmdash/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Repositories
	projectRepo := postgres.NewProjectRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	salesRepo := postgres.NewSalesRepository(db)
	purchaseRepo := postgres.NewPurchaseRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	financeRepo := postgres.NewFinanceRepository(db)
	kpiRepo := postgres.NewKPIRepository(db)
	accessRepo := postgres.NewAccessRepository(db)
	groupRepo := postgres.NewGroupRepository(db)
	configRepo := postgres.NewConfigRepository(db)

	// Infrastructure
	dashboardCache := cache.NewDashboardCache(&cfg.Cache)
	defer dashboardCache.Close()

	publisher := bus.NewPublisher(&cfg.Bus)
	defer publisher.Close()
	subscriber := bus.NewSubscriber(&cfg.Bus)

	forwarder := notify.NewForwarder(publisher, dashboardCache)

	var exportStore storage.ObjectStorage
	if cfg.Storage.Enabled {
		store, err := storage.NewMinioClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize export storage: %v", err)
		}
		exportStore = store
	}

	// Services
	resolver := access.NewResolver(groupRepo, accessRepo, cfg.Access.Policy)
	kpiService := service.NewKPIService(kpiRepo)
	dashboardService := service.NewDashboardService(
		projectRepo, reportRepo, salesRepo, purchaseRepo,
		inventoryRepo, financeRepo, kpiService, resolver, dashboardCache)
	projectService := service.NewProjectService(projectRepo, catalogRepo, reportRepo, forwarder)
	configService := service.NewConfigService(configRepo, groupRepo, cfg.Access.Policy)
	exportService := service.NewExportService(projectRepo, resolver, exportStore)

	// Initialize HTTP servers
	router := api.NewRouter(&api.Services{
		Dashboard:  dashboardService,
		Projects:   projectService,
		Configs:    configService,
		Exports:    exportService,
		Resolver:   resolver,
		Subscriber: subscriber,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	opsSrv := &http.Server{
		Addr:    ":" + cfg.Server.OpsPort,
		Handler: api.NewOpsRouter(db),
	}

	// Start servers in goroutines
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()
	go func() {
		logger.Log.Info().Str("port", cfg.Server.OpsPort).Msg("Starting ops listener")
		if err := opsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start ops listener")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := opsSrv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Ops listener forced to shutdown")
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
