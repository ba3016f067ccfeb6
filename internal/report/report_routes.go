package report

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts under /groups/:group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	reports := r.Group("/reports")
	{
		reports.GET("/grid", h.Grid)
		reports.GET("/cards", h.Cards)
	}
}
