package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"

	"fileservice/internal/config"
	"fileservice/internal/pkg/pathgen"
	"fileservice/internal/pkg/validator"
	"fileservice/internal/storage"
)

// Service is the file registry: it owns File rows and their status
// transitions. The usage ledger and the cleanup engine mutate status only
// through UpdateStatus and MarkDeleted.
type Service struct {
	repo    Repository
	storage storage.Backend
	limits  config.FileLimits
}

func NewService(repo Repository, backend storage.Backend, limits config.FileLimits) *Service {
	return &Service{repo: repo, storage: backend, limits: limits}
}

// Upload validates the payload, stores it in the object store, and records
// the file with status unused. The record is only created after the payload
// is safely stored; a failed insert orphans the object, not the metadata.
func (s *Service) Upload(ctx context.Context, uploaderID int64, fileHeader *multipart.FileHeader, fileTypeStr string) (*File, string, error) {
	fileType, err := ParseFileType(fileTypeStr)
	if err != nil {
		return nil, "", ErrInvalidFileType
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}

	if err := validator.CheckSize(int64(len(data)), s.sizeLimit(fileType)); err != nil {
		return nil, "", err
	}
	mimeType, err := validator.DetectMimeType(data)
	if err != nil {
		return nil, "", err
	}

	storageKey, err := pathgen.GenerateStorageKey(fileHeader.Filename)
	if err != nil {
		return nil, "", err
	}

	url, err := s.storage.Upload(ctx, storageKey, data, mimeType)
	if err != nil {
		return nil, "", fmt.Errorf("failed to store upload: %w", err)
	}

	f := &File{
		ID:         uuid.New().String(),
		Filename:   pathgen.SanitizeFilename(fileHeader.Filename),
		StorageKey: storageKey,
		FileType:   fileType,
		MimeType:   mimeType,
		FileSize:   int64(len(data)),
		UploaderID: uploaderID,
		Status:     StatusUnused,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		// best effort: do not leave an unreachable object behind
		_ = s.storage.Delete(ctx, storageKey)
		return nil, "", fmt.Errorf("failed to save file record: %w", err)
	}

	return f, url, nil
}

// GetByID returns the row regardless of status; deleted files stay queryable
// so their metadata survives for audit purposes.
func (s *Service) GetByID(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByIDs is best effort: ids without a row are omitted from the result.
func (s *Service) GetByIDs(ctx context.Context, ids []string) ([]*File, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyIDList
	}
	return s.repo.GetByIDs(ctx, ids)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status FileStatus) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) MarkDeleted(ctx context.Context, id string) error {
	return s.repo.MarkDeleted(ctx, id)
}

// Delete removes the payload from the object store and marks the row deleted.
// Used by the admin delete endpoint; the cleanup engine runs the same two
// steps per file.
func (s *Service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, f.StorageKey); err != nil {
		return fmt.Errorf("failed to delete payload: %w", err)
	}
	return s.repo.MarkDeleted(ctx, id)
}

// URL resolves the public URL for a file's payload.
func (s *Service) URL(f *File) string {
	return s.storage.URL(f.StorageKey)
}

func (s *Service) sizeLimit(t FileType) int64 {
	switch t {
	case TypeAvatar:
		return s.limits.Avatar
	case TypePost:
		return s.limits.Post
	case TypeReply:
		return s.limits.Reply
	case TypeSectionIcon:
		return s.limits.SectionIcon
	default:
		return s.limits.Post
	}
}
