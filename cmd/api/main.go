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

	"solar-quote-backend/config"
	_ "solar-quote-backend/docs" // Important for Swagger
	"solar-quote-backend/internal/delivery/http/middleware"
	v1 "solar-quote-backend/internal/delivery/http/v1"
	"solar-quote-backend/internal/usecase"
	"solar-quote-backend/pkg/email"
	"solar-quote-backend/pkg/logger"
	"solar-quote-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Solar Quote Backend API
// @version         1.0
// @description     Receives website quote requests and emails them to the business and the customer.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// 3. Validate email configuration. Nothing works without it.
	if err := cfg.Validate(); err != nil {
		logger.Log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	logger.Log.Info("Starting solar quote backend",
		"port", cfg.Port,
		"email_provider", cfg.EmailProvider,
	)

	// 4. Setup Email Service
	sender, err := email.NewSender(cfg)
	if err != nil {
		logger.Log.Error("Failed to create email sender", "error", err)
		os.Exit(1)
	}
	emailService := email.NewService(cfg, sender, email.NewRendererFromConfig(cfg))

	// 5. Setup Redis (optional)
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(context.Background(), redis.Config{
			URL:      cfg.RedisURL,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting will use in-memory fallback", "error", err)
		} else {
			defer redisClient.Close()
		}
	}

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Limit:  cfg.QuoteRateLimit,
		Window: cfg.RateWindow(),
	})

	// 6. Setup UseCases
	var pingRedis func(ctx context.Context) error
	if redisClient != nil {
		pingRedis = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	healthUC := usecase.NewHealthUsecase(rateLimiter.Store(), pingRedis)
	quoteUC := usecase.NewQuoteUsecase(emailService)
	diagnosticsUC := usecase.NewDiagnosticsUsecase(cfg, emailService)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		QuoteUC:       quoteUC,
		HealthUC:      healthUC,
		DiagnosticsUC: diagnosticsUC,
		RateLimiter:   rateLimiter,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
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
