package cleanup

import (
	"github.com/gin-gonic/gin"

	"fileservice/internal/middleware"
)

// RegisterRoutes registers the admin cleanup endpoints.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/cleanup", middleware.AdminOnly(), h.Trigger)
	r.GET("/cleanup/history", middleware.AdminOnly(), h.History)
}
