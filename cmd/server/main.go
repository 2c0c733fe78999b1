package main

import (
	"context"
	"log"
	"time"

	"watchmatch/backend/internal/cache"
	"watchmatch/backend/internal/config"
	"watchmatch/backend/internal/database"
	"watchmatch/backend/internal/handler"
	"watchmatch/backend/internal/logger"
	"watchmatch/backend/internal/store"
	"watchmatch/backend/internal/tmdb"

	"github.com/gin-gonic/gin"

	// Required for swag to find the generated docs.
	_ "watchmatch/backend/docs"
)

func init() {
	config.LoadConfig()
}

// @title           WatchMatch API
// @version         1.0
// @description     Movie swiping and partner matching for paired users.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}
	if cfg.TMDBAPIKey == "" {
		log.Fatal("TMDB_API_KEY environment variable is required")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}
	logger.Info("database ready", "postgres", cfg.DatabaseURL != "")

	var redisCache *cache.RedisCache
	if cfg.RedisAddr != "" {
		redisCache = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, catalog cache disabled", "addr", cfg.RedisAddr, "err", err)
			redisCache = nil
		}
		cancel()
	}

	catalog := tmdb.NewClient(cfg.TMDBAPIKey,
		tmdb.WithBaseURL(cfg.TMDBBaseURL),
		tmdb.WithCache(redisCache),
	)

	h := handler.New(store.New(db), catalog)

	router := gin.Default()
	h.RegisterRoutes(router)

	logger.Info("server starting", "port", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
