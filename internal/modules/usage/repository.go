package usage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"fileservice/internal/modules/file"
)

type Repository interface {
	MarkUsed(ctx context.Context, fileID, usageType string, usageID int64) (*UsageReference, error)
	MarkUnused(ctx context.Context, fileID, usageType string, usageID int64) (int64, error)
	ListByFile(ctx context.Context, fileID string) ([]*UsageReference, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// MarkUsed inserts the reference and flips the file to used inside one
// transaction. The unique index over the triple is the duplicate guard, so
// two concurrent calls for the same triple cannot both succeed.
func (r *repository) MarkUsed(ctx context.Context, fileID, usageType string, usageID int64) (*UsageReference, error) {
	ref := &UsageReference{
		FileID:    fileID,
		UsageType: usageType,
		UsageID:   usageID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var f file.File
		if err := tx.Where("id = ?", fileID).First(&f).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return file.ErrFileNotFound
			}
			return err
		}
		// deleted is terminal; the payload is gone, so the row cannot be
		// referenced again
		if f.Status == file.StatusDeleted {
			return file.ErrFileNotFound
		}

		if err := tx.Create(ref).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyMarked
			}
			return err
		}

		// idempotent when the file is already used
		return tx.Model(&file.File{}).
			Where("id = ?", fileID).
			Updates(map[string]interface{}{
				"status":     file.StatusUsed,
				"updated_at": time.Now().UTC(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// MarkUnused deletes the matching reference, recounts what is left for the
// file, and flips the file back to unused when the count reaches zero — all
// in one transaction, so the status can never drift from the true count.
func (r *repository) MarkUnused(ctx context.Context, fileID, usageType string, usageID int64) (int64, error) {
	var remaining int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("file_id = ? AND usage_type = ? AND usage_id = ?", fileID, usageType, usageID).
			Delete(&UsageReference{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUsageNotFound
		}

		if err := tx.Model(&UsageReference{}).
			Where("file_id = ?", fileID).
			Count(&remaining).Error; err != nil {
			return err
		}

		if remaining == 0 {
			return tx.Model(&file.File{}).
				Where("id = ?", fileID).
				Updates(map[string]interface{}{
					"status":     file.StatusUnused,
					"updated_at": time.Now().UTC(),
				}).Error
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *repository) ListByFile(ctx context.Context, fileID string) ([]*UsageReference, error) {
	var refs []*UsageReference
	err := r.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("created_at ASC").
		Find(&refs).Error
	return refs, err
}

// isUniqueViolation detects a duplicate-key insert on both backends:
// Postgres reports SQLSTATE 23505, SQLite a UNIQUE constraint message.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
