package main

import (
	"log"

	"github.com/nutrisnap/nutrisnap/backend/config"
	"github.com/nutrisnap/nutrisnap/backend/internal/database"
)

// Runs the schema migrations and exits. The API server migrates on
// boot too; this exists for CI and for migrating without starting it.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}

	log.Println("Migrations applied")
}
