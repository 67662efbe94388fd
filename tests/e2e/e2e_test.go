package e2e

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fileservice/internal/config"
	"fileservice/internal/database"
	"fileservice/internal/middleware"
	"fileservice/internal/modules/cleanup"
	"fileservice/internal/modules/file"
	"fileservice/internal/modules/stats"
	"fileservice/internal/modules/usage"
	jwtsvc "fileservice/internal/pkg/jwt"
	"fileservice/internal/storage"
)

type TestSuite struct {
	router  *gin.Engine
	db      *gorm.DB
	backend storage.Backend
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var pngPayload = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0, 1, 2, 3, 4}

func setupTestSuite(t *testing.T) *TestSuite {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	backend, err := storage.NewLocalBackend(t.TempDir(), "/static/files")
	require.NoError(t, err)

	limits := config.FileLimits{
		Avatar:      2 * 1024 * 1024,
		Post:        5 * 1024 * 1024,
		Reply:       5 * 1024 * 1024,
		SectionIcon: 500 * 1024,
	}
	cleanupCfg := config.CleanupConfig{
		Enabled:       false,
		CronSpec:      "0 2 * * *",
		ThresholdDays: 30,
		BatchSize:     100,
	}

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	fileRepo := file.NewRepository(db)
	fileHandler := file.NewHandler(file.NewService(fileRepo, backend, limits))

	usageHandler := usage.NewHandler(usage.NewService(usage.NewRepository(db)))

	cleanupService := cleanup.NewService(fileRepo, cleanup.NewRepository(db), backend)
	cleanupHandler := cleanup.NewHandler(cleanupService, cleanupCfg)

	statsHandler := stats.NewHandler(stats.NewService(stats.NewRepository(db)))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	files := v1.Group("/files")
	file.RegisterPublicRoutes(files, fileHandler)

	protected := files.Group("")
	protected.Use(middleware.Auth(j))
	{
		file.RegisterRoutes(protected, fileHandler)
		usage.RegisterRoutes(protected, usageHandler)
		cleanup.RegisterRoutes(protected, cleanupHandler)
		stats.RegisterRoutes(protected, statsHandler)
	}

	return &TestSuite{router: r, db: db, backend: backend}
}

func (s *TestSuite) do(t *testing.T, method, path string, body []byte, contentType, userID, role string) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
		req.Header.Set("X-User-Role", role)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func (s *TestSuite) upload(t *testing.T, fileType string) string {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "picture.png")
	require.NoError(t, err)
	_, err = part.Write(pngPayload)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("file_type", fileType))
	require.NoError(t, mw.Close())

	w, resp := s.do(t, http.MethodPost, "/api/v1/files/upload", buf.Bytes(), mw.FormDataContentType(), "1", "user")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.True(t, resp.Success)
	return resp.Data["file_id"].(string)
}

func jsonBody(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestFileLifecycle(t *testing.T) {
	s := setupTestSuite(t)

	fileID := s.upload(t, "avatar")

	// freshly uploaded files start unused and are publicly readable
	w, resp := s.do(t, http.MethodGet, "/api/v1/files/"+fileID, nil, "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unused", resp.Data["status"])
	assert.Equal(t, "avatar", resp.Data["file_type"])
	assert.Equal(t, "image/png", resp.Data["mime_type"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/files/"+fileID+"/url", nil, "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp.Data["url"])

	// first consumer flips the file to used
	body := jsonBody(t, map[string]interface{}{"usage_type": "post", "usage_id": 10})
	w, resp = s.do(t, http.MethodPost, "/api/v1/files/"+fileID+"/mark-used", body, "application/json", "1", "user")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "used", resp.Data["status"])

	// the same consumer cannot register twice
	w, resp = s.do(t, http.MethodPost, "/api/v1/files/"+fileID+"/mark-used", body, "application/json", "1", "user")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_MARKED", resp.Error.Code)

	// a second consumer is fine
	body2 := jsonBody(t, map[string]interface{}{"usage_type": "reply", "usage_id": 4})
	w, _ = s.do(t, http.MethodPost, "/api/v1/files/"+fileID+"/mark-used", body2, "application/json", "1", "user")
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/files/"+fileID+"/usages", nil, "", "1", "user")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp.Data["total"])

	// removing one reference keeps the file used
	w, resp = s.do(t, http.MethodPost, "/api/v1/files/"+fileID+"/mark-unused", body, "application/json", "1", "user")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "used", resp.Data["status"])
	assert.Equal(t, float64(1), resp.Data["remaining_usages"])

	// removing the last reference reverts it to unused
	w, resp = s.do(t, http.MethodPost, "/api/v1/files/"+fileID+"/mark-unused", body2, "application/json", "1", "user")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unused", resp.Data["status"])
	assert.Equal(t, float64(0), resp.Data["remaining_usages"])
}

func TestCleanupFlow(t *testing.T) {
	s := setupTestSuite(t)

	oldID := s.upload(t, "post")
	freshID := s.upload(t, "post")

	// age one file past the threshold
	backdated := time.Now().UTC().Add(-40 * 24 * time.Hour)
	require.NoError(t, s.db.Model(&file.File{}).
		Where("id = ?", oldID).
		Update("created_at", backdated).Error)

	// dry run reports the candidate without touching it
	body := jsonBody(t, map[string]bool{"dry_run": true})
	w, resp := s.do(t, http.MethodPost, "/api/v1/files/cleanup", body, "application/json", "9", "admin")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), resp.Data["files_deleted"])
	assert.Equal(t, true, resp.Data["dry_run"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/files/"+oldID, nil, "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unused", resp.Data["status"])

	// dry runs leave no audit trail
	w, resp = s.do(t, http.MethodGet, "/api/v1/files/cleanup/history", nil, "", "9", "admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp.Data["total"])

	// the real run deletes only the aged file
	body = jsonBody(t, map[string]bool{"dry_run": false})
	w, resp = s.do(t, http.MethodPost, "/api/v1/files/cleanup", body, "application/json", "9", "admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp.Data["files_deleted"])
	assert.Equal(t, "success", resp.Data["status"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/files/"+oldID, nil, "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deleted", resp.Data["status"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/files/"+freshID, nil, "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unused", resp.Data["status"])

	// a second run finds nothing left
	w, resp = s.do(t, http.MethodPost, "/api/v1/files/cleanup", body, "application/json", "9", "admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp.Data["files_deleted"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/files/cleanup/history", nil, "", "9", "admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp.Data["total"])
}

func TestUsedFilesSurviveCleanup(t *testing.T) {
	s := setupTestSuite(t)

	fileID := s.upload(t, "post")

	body := jsonBody(t, map[string]interface{}{"usage_type": "post", "usage_id": 1})
	w, _ := s.do(t, http.MethodPost, "/api/v1/files/"+fileID+"/mark-used", body, "application/json", "1", "user")
	require.Equal(t, http.StatusOK, w.Code)

	backdated := time.Now().UTC().Add(-100 * 24 * time.Hour)
	require.NoError(t, s.db.Model(&file.File{}).
		Where("id = ?", fileID).
		Update("created_at", backdated).Error)

	runBody := jsonBody(t, map[string]bool{"dry_run": false})
	w, resp := s.do(t, http.MethodPost, "/api/v1/files/cleanup", runBody, "application/json", "9", "admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp.Data["files_deleted"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/files/"+fileID, nil, "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "used", resp.Data["status"])
}

func TestBatchInfo(t *testing.T) {
	s := setupTestSuite(t)

	id1 := s.upload(t, "avatar")
	id2 := s.upload(t, "post")

	body := jsonBody(t, map[string][]string{"file_ids": {id1, id2}})
	w, resp := s.do(t, http.MethodPost, "/api/v1/files/batch", body, "application/json", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp.Data["total"])

	// unknown ids are omitted, not an error
	body = jsonBody(t, map[string][]string{"file_ids": {id1, "00000000-0000-0000-0000-000000000000"}})
	w, resp = s.do(t, http.MethodPost, "/api/v1/files/batch", body, "application/json", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp.Data["total"])

	// malformed ids are rejected
	body = jsonBody(t, map[string][]string{"file_ids": {"not-a-uuid"}})
	w, resp = s.do(t, http.MethodPost, "/api/v1/files/batch", body, "application/json", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_UUID", resp.Error.Code)
}

func TestStatistics(t *testing.T) {
	s := setupTestSuite(t)

	s.upload(t, "avatar")
	s.upload(t, "post")

	w, resp := s.do(t, http.MethodGet, "/api/v1/files/statistics", nil, "", "9", "admin")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(2), resp.Data["total_files"])

	byType := resp.Data["by_type"].(map[string]interface{})
	avatar := byType["avatar"].(map[string]interface{})
	assert.Equal(t, float64(1), avatar["count"])
}

func TestAuthorization(t *testing.T) {
	s := setupTestSuite(t)

	// upload requires an identity
	w, resp := s.do(t, http.MethodPost, "/api/v1/files/upload", nil, "", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)

	// cleanup and statistics are admin only
	body := jsonBody(t, map[string]bool{"dry_run": true})
	w, resp = s.do(t, http.MethodPost, "/api/v1/files/cleanup", body, "application/json", "1", "user")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/files/statistics", nil, "", "1", "user")
	require.Equal(t, http.StatusForbidden, w.Code)

	fileID := s.upload(t, "avatar")
	w, _ = s.do(t, http.MethodDelete, "/api/v1/files/"+fileID, nil, "", "1", "user")
	require.Equal(t, http.StatusForbidden, w.Code)

	// admins can delete directly
	w, resp = s.do(t, http.MethodDelete, "/api/v1/files/"+fileID, nil, "", "9", "admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fileID, resp.Data["file_id"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/files/"+fileID, nil, "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deleted", resp.Data["status"])
}
