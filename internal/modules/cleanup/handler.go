package cleanup

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fileservice/internal/config"
	"fileservice/internal/pkg/response"
)

type TriggerRequest struct {
	DryRun bool `json:"dry_run"`
}

type Handler struct {
	service *Service
	cfg     config.CleanupConfig
}

func NewHandler(service *Service, cfg config.CleanupConfig) *Handler {
	return &Handler{service: service, cfg: cfg}
}

// Trigger godoc
// @Summary Run cleanup now (admin)
// @Description Runs the reclamation pass on demand; dry_run previews without deleting.
// @Tags Cleanup
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,403,500 {object} map[string]interface{}
// @Router /files/cleanup [post]
func (h *Handler) Trigger(c *gin.Context) {
	var req TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	summary, err := h.service.Run(c.Request.Context(), Params{
		ThresholdDays: h.cfg.ThresholdDays,
		BatchSize:     h.cfg.BatchSize,
		DryRun:        req.DryRun,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CLEANUP_FAILED", "cleanup failed")
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// History godoc
// @Summary List recent cleanup runs (admin)
// @Tags Cleanup
// @Produce json
// @Param limit query int false "Max rows (default 20, cap 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 401,403,500 {object} map[string]interface{}
// @Router /files/cleanup/history [get]
func (h *Handler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load cleanup history")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"runs":  runs,
		"total": len(runs),
	})
}
