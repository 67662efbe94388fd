package stats

import (
	"context"

	"gorm.io/gorm"

	"fileservice/internal/modules/file"
)

// bucket is one aggregate row of a GROUP BY query.
type bucket struct {
	Key   string
	Count int64
	Size  int64
}

type Repository interface {
	Totals(ctx context.Context) (count int64, size int64, err error)
	ByStatus(ctx context.Context) ([]bucket, error)
	ByType(ctx context.Context) ([]bucket, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Totals counts live files; deleted rows are bookkeeping, not storage.
func (r *repository) Totals(ctx context.Context) (int64, int64, error) {
	var row struct {
		Count int64
		Size  int64
	}
	err := r.db.WithContext(ctx).Model(&file.File{}).
		Select("COUNT(*) as count, COALESCE(SUM(file_size), 0) as size").
		Where("status != ?", file.StatusDeleted).
		Scan(&row).Error
	return row.Count, row.Size, err
}

func (r *repository) ByStatus(ctx context.Context) ([]bucket, error) {
	var rows []bucket
	err := r.db.WithContext(ctx).Model(&file.File{}).
		Select("status as key, COUNT(*) as count, COALESCE(SUM(file_size), 0) as size").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ByType(ctx context.Context) ([]bucket, error) {
	var rows []bucket
	err := r.db.WithContext(ctx).Model(&file.File{}).
		Select("file_type as key, COUNT(*) as count, COALESCE(SUM(file_size), 0) as size").
		Where("status != ?", file.StatusDeleted).
		Group("file_type").
		Scan(&rows).Error
	return rows, err
}
