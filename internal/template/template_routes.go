package template

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts under /groups/:group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	templates := r.Group("/templates")
	{
		templates.GET("", h.List)
		templates.POST("", h.Upsert)
		templates.GET("/:name", h.Get)
		templates.PUT("/:name", h.Update)
		templates.DELETE("/:name", h.Delete)
	}
}
