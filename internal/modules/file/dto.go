package file

import "time"

// FileResponse is the wire representation of a file record.
type FileResponse struct {
	FileID     string    `json:"file_id"`
	Filename   string    `json:"filename"`
	StorageKey string    `json:"storage_key"`
	FileType   string    `json:"file_type"`
	MimeType   string    `json:"mime_type"`
	FileSize   int64     `json:"file_size"`
	URL        string    `json:"url"`
	Status     string    `json:"status"`
	UploaderID int64     `json:"uploader_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewFileResponse(f *File, url string) FileResponse {
	return FileResponse{
		FileID:     f.ID,
		Filename:   f.Filename,
		StorageKey: f.StorageKey,
		FileType:   string(f.FileType),
		MimeType:   f.MimeType,
		FileSize:   f.FileSize,
		URL:        url,
		Status:     string(f.Status),
		UploaderID: f.UploaderID,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

type BatchInfoRequest struct {
	FileIDs []string `json:"file_ids" binding:"required"`
}

type BatchInfoResponse struct {
	Files []FileResponse `json:"files"`
	Total int            `json:"total"`
}
