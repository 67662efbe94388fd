package cleanup

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"fileservice/internal/modules/file"
	"fileservice/internal/pkg/pathgen"
	"fileservice/internal/storage"
)

// FileStore is the slice of the file registry the engine needs: candidate
// selection and the terminal status transition. Only this engine (and the
// admin delete path) moves files to deleted.
type FileStore interface {
	FetchCleanupCandidates(ctx context.Context, olderThan time.Time, offset, limit int) ([]*file.File, error)
	MarkDeleted(ctx context.Context, id string) error
}

type Params struct {
	ThresholdDays int
	BatchSize     int
	DryRun        bool
}

// Summary is what one invocation reports, identical for the scheduled and
// the on-demand trigger.
type Summary struct {
	FilesDeleted     int64    `json:"files_deleted"`
	SpaceFreed       int64    `json:"space_freed"`
	SpaceFreedPretty string   `json:"space_freed_pretty"`
	DurationMs       int64    `json:"duration_ms"`
	Status           string   `json:"status"`
	Errors           []string `json:"errors,omitempty"`
	DryRun           bool     `json:"dry_run"`
}

// Service reclaims storage held by files that have sat unused past the age
// threshold. Deletions are idempotent per file, so overlapping invocations
// (scheduler racing an on-demand trigger) degrade to redundant work.
type Service struct {
	files   FileStore
	runs    Repository
	storage storage.Backend
}

func NewService(files FileStore, runs Repository, backend storage.Backend) *Service {
	return &Service{files: files, runs: runs, storage: backend}
}

// Run performs one reclamation pass in bounded batches. Per-file failures are
// recorded and skipped, never aborting the batch; a dry run walks the same
// selection without touching either store and without an audit row.
func (s *Service) Run(ctx context.Context, p Params) (*Summary, error) {
	start := time.Now()
	cutoff := time.Now().UTC().Add(-time.Duration(p.ThresholdDays) * 24 * time.Hour)

	var filesDeleted, spaceFreed int64
	var errs []string

	// Files that were not deleted (dry run, or a per-file error) stay in the
	// candidate set; the offset skips past them so the loop always advances.
	offset := 0

	for {
		batch, err := s.files.FetchCleanupCandidates(ctx, cutoff, offset, p.BatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch cleanup candidates: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		log.Printf("cleanup_batch size=%d dry_run=%t", len(batch), p.DryRun)

		for _, f := range batch {
			if p.DryRun {
				log.Printf("cleanup_dry_run file_id=%s storage_key=%s size=%d", f.ID, f.StorageKey, f.FileSize)
				filesDeleted++
				spaceFreed += f.FileSize
				offset++
				continue
			}

			if err := s.storage.Delete(ctx, f.StorageKey); err != nil {
				errs = append(errs, fmt.Sprintf("failed to delete file %s from storage: %v", f.ID, err))
				log.Printf("cleanup_error file_id=%s stage=storage error=%q", f.ID, err)
				offset++
				continue
			}

			if err := s.files.MarkDeleted(ctx, f.ID); err != nil {
				// The payload is gone but the row still says unused. The next
				// run re-selects it and retries both idempotent steps; until
				// then the inconsistency is visible in the error list.
				errs = append(errs, fmt.Sprintf("failed to mark file %s as deleted: %v", f.ID, err))
				log.Printf("cleanup_error file_id=%s stage=metadata error=%q", f.ID, err)
				offset++
				continue
			}

			filesDeleted++
			spaceFreed += f.FileSize
		}

		if len(batch) < p.BatchSize {
			break
		}
	}

	status := StatusSuccess
	if len(errs) > 0 {
		if filesDeleted > 0 {
			status = StatusPartial
		} else {
			status = StatusFailed
		}
	}

	summary := &Summary{
		FilesDeleted:     filesDeleted,
		SpaceFreed:       spaceFreed,
		SpaceFreedPretty: pathgen.FormatSize(spaceFreed),
		DurationMs:       time.Since(start).Milliseconds(),
		Status:           status,
		Errors:           errs,
		DryRun:           p.DryRun,
	}

	if !p.DryRun {
		run := &CleanupRun{
			RunAt:        start.UTC(),
			FilesDeleted: summary.FilesDeleted,
			SpaceFreed:   summary.SpaceFreed,
			DurationMs:   summary.DurationMs,
			Status:       summary.Status,
			ErrorMessage: strings.Join(errs, "; "),
		}
		if err := s.runs.Record(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to record cleanup run: %w", err)
		}
	}

	return summary, nil
}

// History returns the most recent audit records, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]*CleanupRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.runs.ListRecent(ctx, limit)
}
