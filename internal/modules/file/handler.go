package file

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fileservice/internal/pkg/pathgen"
	"fileservice/internal/pkg/response"
	"fileservice/internal/pkg/validator"
)

// maxBatchSize caps how many ids one batch lookup may request.
const maxBatchSize = 100

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload a file
// @Description Upload an image (jpeg/png/gif/svg) for one of the fixed categories.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param file_type formData string true "avatar | post | reply | section_icon"
// @Success 201 {object} map[string]interface{}
// @Failure 400,401,413,500 {object} map[string]interface{}
// @Router /files/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	userID := mustUserID(c)
	if userID == 0 {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "no file provided")
		return
	}
	fileType := c.PostForm("file_type")
	if fileType == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "file_type is required")
		return
	}

	f, url, err := h.service.Upload(c.Request.Context(), userID, fileHeader, fileType)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidFileType):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", err.Error())
		case errors.Is(err, validator.ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", err.Error())
		case errors.Is(err, validator.ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		case errors.Is(err, validator.ErrUnsupportedType):
			response.Error(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", err.Error())
		case errors.Is(err, pathgen.ErrNoExtension), errors.Is(err, pathgen.ErrUnsupportedExtension):
			response.Error(c, http.StatusBadRequest, "INVALID_FILENAME", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "upload failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, NewFileResponse(f, url))
}

// GetByID godoc
// @Summary Get file metadata by ID
// @Tags Files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]interface{}
// @Router /files/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := fileIDParam(c)
	if !ok {
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			response.Error(c, http.StatusNotFound, "FILE_NOT_FOUND", "file not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load file")
		return
	}

	response.Success(c, http.StatusOK, NewFileResponse(f, h.service.URL(f)))
}

// GetURL godoc
// @Summary Get the public URL for a file
// @Tags Files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]interface{}
// @Router /files/{id}/url [get]
func (h *Handler) GetURL(c *gin.Context) {
	id, ok := fileIDParam(c)
	if !ok {
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			response.Error(c, http.StatusNotFound, "FILE_NOT_FOUND", "file not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load file")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"file_id": f.ID,
		"url":     h.service.URL(f),
	})
}

// BatchInfo godoc
// @Summary Get metadata for up to 100 files
// @Tags Files
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /files/batch [post]
func (h *Handler) BatchInfo(c *gin.Context) {
	var req BatchInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "file_ids is required")
		return
	}
	if len(req.FileIDs) == 0 {
		response.Error(c, http.StatusBadRequest, "EMPTY_ID_LIST", ErrEmptyIDList.Error())
		return
	}
	if len(req.FileIDs) > maxBatchSize {
		response.Error(c, http.StatusBadRequest, "TOO_MANY_IDS", ErrTooManyIDs.Error())
		return
	}
	for _, id := range req.FileIDs {
		if _, err := uuid.Parse(id); err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_UUID", "invalid file id: "+id)
			return
		}
	}

	files, err := h.service.GetByIDs(c.Request.Context(), req.FileIDs)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load files")
		return
	}

	resp := BatchInfoResponse{Files: make([]FileResponse, 0, len(files))}
	for _, f := range files {
		resp.Files = append(resp.Files, NewFileResponse(f, h.service.URL(f)))
	}
	resp.Total = len(resp.Files)

	response.Success(c, http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete a file (admin)
// @Description Removes the payload from storage and marks the record deleted.
// @Tags Files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,403,404,500 {object} map[string]interface{}
// @Router /files/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := fileIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			response.Error(c, http.StatusNotFound, "FILE_NOT_FOUND", "file not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "delete failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"file_id":    id,
		"deleted_at": time.Now().UTC(),
	})
}

func fileIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_UUID", "invalid file id")
		return "", false
	}
	return id, true
}

func mustUserID(c *gin.Context) int64 {
	id, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return 0
	}
	switch v := id.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user id")
	return 0
}
