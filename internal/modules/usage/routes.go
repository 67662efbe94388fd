package usage

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the ledger endpoints. Callers are other services
// (post creation, profile updates) acting through the gateway.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/:id/mark-used", h.MarkUsed)
	r.POST("/:id/mark-unused", h.MarkUnused)
	r.GET("/:id/usages", h.ListByFile)
}
