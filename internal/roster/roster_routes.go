package roster

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts under /groups/:group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("", h.List)
		employees.POST("", h.Add)
		employees.GET("/options", h.Options)
		employees.GET("/export", h.ExportCSV)
		employees.POST("/import", h.ImportCSV)
		employees.PUT("/:name", h.Edit)
		employees.DELETE("/:name", h.Remove)
		employees.POST("/:name/move-up", h.MoveUp)
		employees.POST("/:name/move-down", h.MoveDown)
		employees.POST("/:name/transfer", h.Transfer)
		employees.GET("/:name/profile", h.GetProfile)
		employees.PUT("/:name/profile", h.UpdateProfile)
	}
}

func RegisterSkillRoutes(r *gin.RouterGroup, h *Handler) {
	skills := r.Group("/skills")
	{
		skills.GET("", h.ListSkills)
		skills.POST("", h.AddSkill)
		skills.DELETE("/:name", h.DeleteSkill)
	}
}
