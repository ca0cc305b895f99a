package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ericli5683/food-recipes/config"
	"github.com/ericli5683/food-recipes/internal/api"
	"github.com/ericli5683/food-recipes/internal/database"
	"github.com/ericli5683/food-recipes/internal/middleware"
	"github.com/ericli5683/food-recipes/internal/server"
	"github.com/ericli5683/food-recipes/internal/service"
)

func main() {
	// A missing .env file is fine; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx := context.Background()
	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize S3", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    cfg.RateLimitWindow,
		Limit:     cfg.RateLimitRequests,
		KeyPrefix: "ratelimit:discover-image",
	})

	recipeService := service.NewRecipeService(db, logger)
	mealdbService := service.NewMealDBService(cfg.MealDBBaseURL, logger)
	visionService := service.NewVisionService(cfg, logger)
	uploadService := service.NewUploadService(s3Config, logger)
	searchService := service.NewSearchService(recipeService, mealdbService, visionService, uploadService, logger)

	recipeHandler := api.NewRecipeHandler(recipeService, uploadService, logger)
	discoverHandler := api.NewDiscoverHandler(mealdbService, searchService, logger)

	srv := server.NewServer(recipeHandler, discoverHandler, limiter, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(cfg.ServerHost + ":" + cfg.ServerPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}
