package main

import (
	"context"
	"os"
	"time"

	"client_tracker_backend/internal/config"
	"client_tracker_backend/internal/database"
	"client_tracker_backend/internal/repositories"
	"client_tracker_backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("development", "info")
		utils.LogError(err, "Invalid configuration")
		os.Exit(1)
	}
	utils.InitLogger(cfg.Environment, cfg.LogLevel)

	if err := run(cfg); err != nil {
		utils.LogError(err, "Error seeding database")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	utils.LogInfo("Seeding database...")
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	removed, created, err := repositories.Seed(ctx, repositories.NewClientRepository(db))
	if err != nil {
		return err
	}
	utils.LogInfo("Cleared existing clients", map[string]interface{}{"removed": removed})
	utils.LogInfo("Database seeded successfully", map[string]interface{}{"created": created})
	return nil
}
