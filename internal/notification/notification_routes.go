package notification

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts under /groups/:group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/notify-email", h.Notify)
}
