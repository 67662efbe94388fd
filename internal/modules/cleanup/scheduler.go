package cleanup

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"fileservice/internal/config"
)

// StartScheduler wires the recurring cleanup trigger. The job calls the same
// Run as the on-demand endpoint; the caller owns the returned cron and stops
// it on shutdown. Returns nil when the schedule is disabled.
func StartScheduler(service *Service, cfg config.CleanupConfig) (*cron.Cron, error) {
	if !cfg.Enabled {
		log.Println("cleanup schedule disabled")
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.CronSpec, func() {
		log.Println("scheduled cleanup starting")

		summary, err := service.Run(context.Background(), Params{
			ThresholdDays: cfg.ThresholdDays,
			BatchSize:     cfg.BatchSize,
			DryRun:        false,
		})
		if err != nil {
			log.Printf("scheduled cleanup failed: %v", err)
			return
		}

		log.Printf("scheduled cleanup done files_deleted=%d space_freed=%d duration_ms=%d status=%s",
			summary.FilesDeleted, summary.SpaceFreed, summary.DurationMs, summary.Status)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("cleanup scheduled cron=%q threshold_days=%d batch_size=%d",
		cfg.CronSpec, cfg.ThresholdDays, cfg.BatchSize)

	return c, nil
}
