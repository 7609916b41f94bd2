package main

import (
	"context"                  // Context for the restore run
	"flag"                     // Command line flags
	"islands/internal/config"  // Custom import path (Config)
	"islands/internal/db"      // Custom import path (Database)
	"islands/internal/service" // Island operations
	"islands/internal/storage" // Image file store

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	restore := flag.Bool("restore-images", false, "rewrite image files missing from the public directory")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	database, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	if err := db.SeedRegions(database); err != nil {
		logrus.Fatalf("seeding regions failed: %v", err)
	}
	logrus.Info("Regions seeded")

	if !*restore {
		return
	}
	islands := service.NewIslands(database, storage.NewImages(cfg.PublicDir))
	n, err := islands.RestoreImages(context.Background())
	if err != nil {
		logrus.Fatalf("restoring images failed: %v", err)
	}
	logrus.WithField("restored", n).Info("Image files restored")
}
