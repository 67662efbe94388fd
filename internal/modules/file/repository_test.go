package file_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fileservice/internal/database"
	"fileservice/internal/modules/file"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedAt(t *testing.T, db *gorm.DB, id string, status file.FileStatus, createdAt time.Time) {
	t.Helper()

	require.NoError(t, db.Create(&file.File{
		ID:         id,
		Filename:   id + ".png",
		StorageKey: "2026/07/01/" + id + ".png",
		FileType:   file.TypePost,
		MimeType:   "image/png",
		FileSize:   1024,
		UploaderID: 1,
		Status:     status,
		CreatedAt:  createdAt,
	}).Error)
}

func candidateIDs(files []*file.File) []string {
	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestFetchCleanupCandidates_StrictBoundary(t *testing.T) {
	db := newTestDB(t)
	repo := file.NewRepository(db)

	cutoff := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	seedAt(t, db, "at-cutoff", file.StatusUnused, cutoff)
	seedAt(t, db, "just-before", file.StatusUnused, cutoff.Add(-time.Millisecond))

	got, err := repo.FetchCleanupCandidates(context.Background(), cutoff, 0, 10)

	require.NoError(t, err)
	// created_at must be strictly older than the cutoff
	assert.Equal(t, []string{"just-before"}, candidateIDs(got))
}

func TestFetchCleanupCandidates_OnlyUnused(t *testing.T) {
	db := newTestDB(t)
	repo := file.NewRepository(db)

	old := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	seedAt(t, db, "f-unused", file.StatusUnused, old)
	seedAt(t, db, "f-used", file.StatusUsed, old)
	seedAt(t, db, "f-deleted", file.StatusDeleted, old)

	got, err := repo.FetchCleanupCandidates(context.Background(), old.Add(24*time.Hour), 0, 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"f-unused"}, candidateIDs(got))
}

func TestFetchCleanupCandidates_OrderAndOffset(t *testing.T) {
	db := newTestDB(t)
	repo := file.NewRepository(db)

	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	seedAt(t, db, "newest", file.StatusUnused, base.Add(48*time.Hour))
	seedAt(t, db, "oldest", file.StatusUnused, base)
	seedAt(t, db, "middle", file.StatusUnused, base.Add(24*time.Hour))

	cutoff := base.Add(30 * 24 * time.Hour)

	got, err := repo.FetchCleanupCandidates(context.Background(), cutoff, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"oldest", "middle"}, candidateIDs(got))

	got, err = repo.FetchCleanupCandidates(context.Background(), cutoff, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"newest"}, candidateIDs(got))

	got, err = repo.FetchCleanupCandidates(context.Background(), cutoff, 3, 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}
