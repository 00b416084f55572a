package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aquatrack/backend-go/internal/api"
	"github.com/aquatrack/backend-go/internal/cache"
	"github.com/aquatrack/backend-go/internal/config"
	"github.com/aquatrack/backend-go/internal/repository/postgres"
	"github.com/aquatrack/backend-go/internal/service"
	"github.com/aquatrack/backend-go/internal/storage"
	"github.com/aquatrack/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Auth.JWTSecret == "" {
		logger.Log.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to apply database schema")
	}

	profitCache, err := cache.NewProfitCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Profit cache unavailable, continuing without it")
		profitCache = cache.NewNoopProfitCache()
	}

	images, err := storage.NewMinioStore(ctx, cfg.Images)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to image store")
	}

	saleRepo := postgres.NewSaleRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	deliveryRepo := postgres.NewDeliveryRepository(db)
	userRepo := postgres.NewUserRepository(db)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	services := &api.Services{
		Users:      service.NewUserService(userRepo, cfg.Auth.JWTSecret, tokenTTL),
		Sales:      service.NewSaleService(saleRepo, profitCache),
		Inventory:  service.NewInventoryService(inventoryRepo, profitCache),
		Expenses:   service.NewExpenseService(expenseRepo),
		Profits:    service.NewProfitService(saleRepo, inventoryRepo, profitCache),
		Deliveries: service.NewDeliveryService(deliveryRepo, images),
		JWTSecret:  cfg.Auth.JWTSecret,
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
