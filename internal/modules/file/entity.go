package file

import (
	"fmt"
	"strings"
	"time"
)

// FileType is the declared category of an uploaded asset.
type FileType string

const (
	TypeAvatar      FileType = "avatar"
	TypePost        FileType = "post"
	TypeReply       FileType = "reply"
	TypeSectionIcon FileType = "section_icon"
)

// ParseFileType accepts the wire spellings of a category.
func ParseFileType(s string) (FileType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "avatar":
		return TypeAvatar, nil
	case "post":
		return TypePost, nil
	case "reply":
		return TypeReply, nil
	case "section_icon", "section-icon":
		return TypeSectionIcon, nil
	default:
		return "", fmt.Errorf("invalid file type: %s", s)
	}
}

// FileStatus tracks where a file is in its lifecycle.
// Transitions: unused -> used (first reference), used -> unused (last
// reference removed), unused/used -> deleted (cleanup or admin delete).
// Deleted is terminal.
type FileStatus string

const (
	StatusUnused  FileStatus = "unused"
	StatusUsed    FileStatus = "used"
	StatusDeleted FileStatus = "deleted"
)

// File is the metadata record for one uploaded binary asset. The payload
// itself lives in the object store under StorageKey. Rows are never removed;
// deletion is a terminal status so the audit history survives.
type File struct {
	ID         string     `gorm:"column:id;primaryKey" json:"id"`
	Filename   string     `gorm:"column:filename" json:"filename"`
	StorageKey string     `gorm:"column:storage_key;uniqueIndex" json:"storage_key"`
	FileType   FileType   `gorm:"column:file_type;index" json:"file_type"`
	MimeType   string     `gorm:"column:mime_type" json:"mime_type"`
	FileSize   int64      `gorm:"column:file_size" json:"file_size"`
	UploaderID int64      `gorm:"column:uploader_id" json:"uploader_id"`
	Status     FileStatus `gorm:"column:status;index:idx_files_status_created" json:"status"`
	CreatedAt  time.Time  `gorm:"column:created_at;index:idx_files_status_created" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (File) TableName() string { return "files" }
