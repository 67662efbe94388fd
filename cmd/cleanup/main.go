package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"fileservice/internal/config"
	"fileservice/internal/database"
	"fileservice/internal/modules/cleanup"
	"fileservice/internal/modules/file"
	"fileservice/internal/storage"
)

// One-shot reclamation pass, for ops use and external schedulers.
func main() {
	dryRun := flag.Bool("dry-run", false, "preview without deleting anything")
	flag.Parse()

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
		log.Fatalf("db migrate failed: %v", err)
	}

	backend, err := storage.NewBackendFromEnv(context.Background())
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	fileRepo := file.NewRepository(db)
	cleanupRepo := cleanup.NewRepository(db)
	service := cleanup.NewService(fileRepo, cleanupRepo, backend)

	summary, err := service.Run(context.Background(), cleanup.Params{
		ThresholdDays: cfg.Cleanup.ThresholdDays,
		BatchSize:     cfg.Cleanup.BatchSize,
		DryRun:        *dryRun,
	})
	if err != nil {
		log.Fatalf("cleanup failed: %v", err)
	}

	log.Printf("cleanup completed: files_deleted=%d space_freed=%s duration_ms=%d status=%s dry_run=%t",
		summary.FilesDeleted, summary.SpaceFreedPretty, summary.DurationMs, summary.Status, summary.DryRun)
	for _, e := range summary.Errors {
		log.Printf("cleanup error: %s", e)
	}
}
