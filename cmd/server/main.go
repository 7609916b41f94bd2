package main

import (
	"context"                     // context package is needed for Redis operations
	"islands/internal/api"        // Custom package for API handlers
	"islands/internal/config"     // Custom package for configuration
	"islands/internal/db"         // Custom package for database setup
	"islands/internal/middleware" // Custom package for middleware
	"islands/internal/utils"      // Session lifetime

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.CookiePassword == "" {
		logrus.Fatal("COOKIE_PASSWORD must be set") // Sessions cannot be signed without it
	}

	// Connect to the database
	database, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client when configured, the dashboard cache is optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	session := &middleware.Session{
		CookieName: cfg.CookieName,     // Session cookie name
		Secret:     cfg.CookiePassword, // Token signing secret
		TTL:        utils.SessionTTL,   // One day
		Secure:     cfg.IsProd,         // HTTPS only in production
	}

	r, err := api.NewRouter(api.Deps{
		Config:  cfg,         // Application configuration
		DB:      database,    // Database handle
		Redis:   redisClient, // Optional cache
		Session: session,     // Session cookie handling
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
	// Start the server on port cfg.AppPort
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
