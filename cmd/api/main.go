package main

// @title Arcade Locator API
// @version 1.0.0
// @description Поиск залов игровых автоматов рядом с точкой или токеном локации.
// @description
// @description Основные возможности:
// @description - Кодирование и декодирование токенов локации
// @description - Поиск магазинов в радиусе от точки или токена
// @description - Поиск магазинов по названию и управление каталогом

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/arcade-locator/docs"
	"github.com/arcade-locator/internal/config"
	httpDelivery "github.com/arcade-locator/internal/delivery/http"
	"github.com/arcade-locator/internal/delivery/http/handler"
	"github.com/arcade-locator/internal/pkg/logger"
	"github.com/arcade-locator/internal/repository/cache"
	"github.com/arcade-locator/internal/repository/postgres"
	redisRepo "github.com/arcade-locator/internal/repository/redis"
	"github.com/arcade-locator/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Arcade Locator API",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL/PostGIS
	db, err := postgres.New(context.Background(), &cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis (кеш и стрим событий)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Repositories
	shopRepo := postgres.NewShopRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Use cases
	tokenUC := usecase.NewLocationTokenUseCase(log)
	shopUC := usecase.NewShopUseCase(shopRepo, cacheRepo, streamRepo, log, cfg.Search, cfg.Cache)

	// 7. HTTP
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewTokenHandler(tokenUC, log),
		handler.NewShopHandler(shopUC, log),
		map[string]httpDelivery.HealthCheck{
			"postgres": db.Health,
			"redis":    redisClient.Health,
		},
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}
