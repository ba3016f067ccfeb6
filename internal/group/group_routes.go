package group

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	groups := r.Group("/groups")
	{
		groups.GET("", h.GetAll)
		groups.POST("", h.Create)
		groups.GET("/:group", h.Get)
		groups.PUT("/:group", h.Rename)
		groups.DELETE("/:group", h.Delete)
	}
}
