package main

import (
	"log"

	"github.com/joho/godotenv"

	"fileservice/internal/config"
	"fileservice/internal/database"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	log.Println("migrations applied")
}
