package file

import (
	"github.com/gin-gonic/gin"

	"fileservice/internal/middleware"
)

// RegisterPublicRoutes registers the read-only lookups. They carry no auth:
// URLs and metadata are public once a file is referenced from content.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/:id", h.GetByID)
	r.GET("/:id/url", h.GetURL)
	r.POST("/batch", h.BatchInfo)
}

// RegisterRoutes registers the mutating endpoints under the authenticated
// group. Delete additionally requires the admin role.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/upload", h.Upload)
	r.DELETE("/:id", middleware.AdminOnly(), h.Delete)
}
