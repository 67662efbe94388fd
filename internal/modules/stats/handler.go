package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fileservice/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Overview godoc
// @Summary Storage statistics (admin)
// @Description Aggregate file counts and sizes grouped by status and category.
// @Tags Statistics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401,403,500 {object} map[string]interface{}
// @Router /files/statistics [get]
func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to compute statistics")
		return
	}

	response.Success(c, http.StatusOK, overview)
}
