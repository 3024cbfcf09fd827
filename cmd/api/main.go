package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-contact-backend/config"
	_ "go-contact-backend/docs" // Important for Swagger
	v1 "go-contact-backend/internal/delivery/http/v1"
	"go-contact-backend/internal/usecase"
	"go-contact-backend/pkg/email"
	"go-contact-backend/pkg/logger"
	"go-contact-backend/pkg/redis"
	"go-contact-backend/pkg/security"
	"go-contact-backend/pkg/validation"
)

// @title           Contact Backend API
// @version         1.0
// @description     Contact form submission service: notifies the site owner and auto-replies to the visitor.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.Log)
	defer logger.Close()
	logger.Log.Info("Starting contact backend", "port", cfg.Port)

	audit := security.InitSecurityLogger("contact-backend", "")
	defer func() { _ = audit.Sync() }()

	// 3. Setup Redis (optional, rate limiting only)
	var redisCheck usecase.StoreChecker
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable - rate limiting will use in-memory fallback", "error", err)
		} else {
			logger.Log.Info("Connected to Redis")
			redisCheck = redis.HealthCheck
			defer func() { _ = redis.Close() }()
		}
	}

	// 4. Setup Email Service
	emailService := email.NewEmailService(cfg.Email, nil)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable", "missing", cfg.Email.Missing())
	}
	renderer, err := email.NewAutoReplyRenderer(cfg.SiteName)
	if err != nil {
		logger.Log.Error("Failed to parse auto-reply template", "error", err)
		os.Exit(1)
	}

	// 5. Setup UseCases
	validate := validation.New()
	contactUC := usecase.NewContactUsecase(emailService, renderer, cfg.Email, validate, audit)
	healthUC := usecase.NewHealthUsecase(cfg.Email, redisCheck)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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
