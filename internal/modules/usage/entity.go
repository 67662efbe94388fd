package usage

import "time"

// UsageReference records that one logical consumer (a post, a profile, ...)
// currently depends on a file. The (file_id, usage_type, usage_id) triple is
// unique: a consumer references a file at most once.
type UsageReference struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FileID    string    `gorm:"column:file_id;uniqueIndex:idx_file_usage" json:"file_id"`
	UsageType string    `gorm:"column:usage_type;uniqueIndex:idx_file_usage" json:"usage_type"`
	UsageID   int64     `gorm:"column:usage_id;uniqueIndex:idx_file_usage" json:"usage_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (UsageReference) TableName() string { return "file_usages" }
