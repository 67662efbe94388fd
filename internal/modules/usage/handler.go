package usage

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fileservice/internal/modules/file"
	"fileservice/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MarkUsed godoc
// @Summary Register a consumer of a file
// @Description Inserts a usage reference and flips the file to used.
// @Tags Usage
// @Accept json
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,409 {object} map[string]interface{}
// @Router /files/{id}/mark-used [post]
func (h *Handler) MarkUsed(c *gin.Context) {
	fileID, ok := fileIDParam(c)
	if !ok {
		return
	}

	var req MarkUsedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "usage_type and usage_id are required")
		return
	}

	ref, err := h.service.MarkUsed(c.Request.Context(), fileID, req.UsageType, req.UsageID)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyMarked):
			response.Error(c, http.StatusConflict, "ALREADY_MARKED", err.Error())
		case errors.Is(err, file.ErrFileNotFound):
			response.Error(c, http.StatusNotFound, "FILE_NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to mark file used")
		}
		return
	}

	response.Success(c, http.StatusOK, MarkUsedResponse{
		FileID: fileID,
		Status: string(file.StatusUsed),
		Usage: UsageData{
			UsageType: ref.UsageType,
			UsageID:   ref.UsageID,
			CreatedAt: ref.CreatedAt,
		},
	})
}

// MarkUnused godoc
// @Summary Remove a consumer of a file
// @Description Deletes the matching usage reference; the file reverts to unused when none remain.
// @Tags Usage
// @Accept json
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]interface{}
// @Router /files/{id}/mark-unused [post]
func (h *Handler) MarkUnused(c *gin.Context) {
	fileID, ok := fileIDParam(c)
	if !ok {
		return
	}

	var req MarkUnusedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "usage_type and usage_id are required")
		return
	}

	remaining, err := h.service.MarkUnused(c.Request.Context(), fileID, req.UsageType, req.UsageID)
	if err != nil {
		if errors.Is(err, ErrUsageNotFound) {
			response.Error(c, http.StatusNotFound, "USAGE_NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to mark file unused")
		return
	}

	status := file.StatusUnused
	if remaining > 0 {
		status = file.StatusUsed
	}

	response.Success(c, http.StatusOK, MarkUnusedResponse{
		FileID:          fileID,
		Status:          string(status),
		RemainingUsages: remaining,
	})
}

// ListByFile godoc
// @Summary List the active usage references of a file
// @Tags Usage
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /files/{id}/usages [get]
func (h *Handler) ListByFile(c *gin.Context) {
	fileID, ok := fileIDParam(c)
	if !ok {
		return
	}

	refs, err := h.service.ListByFile(c.Request.Context(), fileID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list usages")
		return
	}

	items := make([]UsageData, 0, len(refs))
	for _, ref := range refs {
		items = append(items, UsageData{
			UsageType: ref.UsageType,
			UsageID:   ref.UsageID,
			CreatedAt: ref.CreatedAt,
		})
	}

	response.Success(c, http.StatusOK, gin.H{
		"file_id": fileID,
		"usages":  items,
		"total":   len(items),
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
