package main

import (
	"context" // context package is needed for Redis operations

	"progress_tracker/internal/api"      // Custom package for API handlers
	"progress_tracker/internal/config"   // Custom package for configuration
	"progress_tracker/internal/db"       // Database connection and migration
	"progress_tracker/internal/progress" // Progress orchestration
	"progress_tracker/internal/store"    // GORM repositories

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	setupLogger(cfg)

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client, caching is optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, read caching disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	users := store.NewUserStore(gdb)
	r := api.NewRouter(cfg, api.Deps{
		Users:    users,                                                 // User repository
		Progress: progress.NewService(store.NewProgressStore(gdb), nil), // Streak-aware progress updates
		Redis:    redisClient,                                           // Optional cache
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":   cfg.AppPort,  // Listening port
		"driver": cfg.DBDriver, // Database driver
	}).Info("API listening")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}

// setupLogger configures the global logrus logger from config
func setupLogger(cfg *config.Config) {
	if cfg.IsProd() {
		logrus.SetFormatter(&logrus.JSONFormatter{}) // Machine-readable logs in production
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
