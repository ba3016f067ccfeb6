package attendance

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts under /groups/:group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendance := r.Group("/attendance")
	{
		attendance.GET("", h.GetGrid)
		attendance.PUT("", h.SaveGrid)
		attendance.POST("/cell", h.SetCell)
		attendance.GET("/export", h.ExportCSV)
		attendance.POST("/import", h.ImportCSV)
	}
}
