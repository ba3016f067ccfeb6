package stats

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts under /groups/:group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	stats := r.Group("/stats")
	{
		stats.GET("", h.Panel)
		stats.POST("", h.Compute)
		stats.GET("/export", h.ExportXLSX)
	}
}
