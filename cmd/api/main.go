package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"offer-form-backend/config"
	_ "offer-form-backend/docs" // Important for Swagger
	v1 "offer-form-backend/internal/delivery/http/v1"
	"offer-form-backend/internal/usecase"
	"offer-form-backend/pkg/email"
	"offer-form-backend/pkg/logger"
	"offer-form-backend/pkg/redis"
	"offer-form-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title           Offer Form Backend API
// @version         1.0
// @description     Backend for the embeddable door mat offer request form.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting offer form backend", "port", cfg.Port)

	// 3. Setup Redis (optional, rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	}
	defer redis.Close()

	// 4. Setup Logo Storage
	logoStore, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL+"/uploads", cfg.MaxLogoSizeBytes)
	if err != nil {
		logger.Log.Error("Failed to initialize logo storage", "error", err)
		os.Exit(1)
	}

	// 5. Setup Email Service
	emailService := email.NewService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - offer submissions will fail")
	}

	// 6. Setup UseCases
	validate := validator.New()
	offerUC := usecase.NewOfferUsecase(emailService, logoStore, validate, cfg.PricePerSqm, cfg.SpecialShapeSurcharge)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		OfferUC: offerUC,
		Config:  cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
