package file

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, f *File) error
	GetByID(ctx context.Context, id string) (*File, error)
	GetByIDs(ctx context.Context, ids []string) ([]*File, error)
	UpdateStatus(ctx context.Context, id string, status FileStatus) error
	MarkDeleted(ctx context.Context, id string) error
	FetchCleanupCandidates(ctx context.Context, olderThan time.Time, offset, limit int) ([]*File, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*File, error) {
	var f File
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrFileNotFound
	}
	return &f, err
}

// GetByIDs returns the rows that exist; missing ids are silently omitted.
func (r *repository) GetByIDs(ctx context.Context, ids []string) ([]*File, error) {
	var files []*File
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&files).Error
	return files, err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status FileStatus) error {
	return r.db.WithContext(ctx).Model(&File{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

// MarkDeleted flips the row to deleted and purges its usage references in one
// transaction. Re-marking an already-deleted row is a no-op, which keeps
// concurrent cleanup runs safe.
func (r *repository) MarkDeleted(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&File{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     StatusDeleted,
				"updated_at": time.Now().UTC(),
			}).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM file_usages WHERE file_id = ?", id).Error
	})
}

// FetchCleanupCandidates returns unused files created strictly before
// olderThan, oldest first. The offset is used by dry runs, which page through
// the backlog without mutating it.
func (r *repository) FetchCleanupCandidates(ctx context.Context, olderThan time.Time, offset, limit int) ([]*File, error) {
	var files []*File
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", StatusUnused, olderThan).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&files).Error
	return files, err
}
