package main

import (
	"log"

	"github.com/hireachef/backend/config"
	"github.com/hireachef/backend/internal/database"
)

// Seeds the demo accounts (user@example.com, chef@example.com,
// admin@example.com, password "password") plus a few sample chefs.
// Mock mode seeds automatically at API startup; this tool does the
// same against a real database.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDemoData(db); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("Seeding complete")
}
