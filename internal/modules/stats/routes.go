package stats

import (
	"github.com/gin-gonic/gin"

	"fileservice/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/statistics", middleware.AdminOnly(), h.Overview)
}
