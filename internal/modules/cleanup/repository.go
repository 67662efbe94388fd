package cleanup

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Record(ctx context.Context, run *CleanupRun) error
	ListRecent(ctx context.Context, limit int) ([]*CleanupRun, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Record(ctx context.Context, run *CleanupRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]*CleanupRun, error) {
	var runs []*CleanupRun
	err := r.db.WithContext(ctx).
		Order("run_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
