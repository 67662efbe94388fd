package cleanup

import "time"

// CleanupRun is the audit record of one reclamation pass. Rows are append
// only: the service inserts one per non-dry run and never touches it again.
type CleanupRun struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RunAt        time.Time `gorm:"column:run_at" json:"run_at"`
	FilesDeleted int64     `gorm:"column:files_deleted" json:"files_deleted"`
	SpaceFreed   int64     `gorm:"column:space_freed" json:"space_freed"`
	DurationMs   int64     `gorm:"column:duration_ms" json:"duration_ms"`
	Status       string    `gorm:"column:status" json:"status"`
	ErrorMessage string    `gorm:"column:error_message" json:"error_message,omitempty"`
}

func (CleanupRun) TableName() string { return "cleanup_runs" }

// Run outcomes.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)
