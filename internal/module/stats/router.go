package stats

import (
	"idea-incubation-system/internal/global/middleware"
	"idea-incubation-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (p *ModuleStats) InitRouter(r *gin.RouterGroup) {
	statsRouter := r.Group("/stats", middleware.Auth(model.RoleAdminFaculty))
	{
		statsRouter.GET("/dashboard", Dashboard)
		statsRouter.GET("/export/marks", ExportMarks)
		statsRouter.GET("/export/funding", ExportFunding)
	}
}
