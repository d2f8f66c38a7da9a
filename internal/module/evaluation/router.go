package evaluation

import (
	"idea-incubation-system/internal/global/middleware"
	"idea-incubation-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleEvaluation) InitRouter(r *gin.RouterGroup) {
	evalGroup := r.Group("/evaluation")

	evalGroup.Use(middleware.Auth(model.RoleAdminFaculty))
	{
		// 评分汇总，可见性按身份过滤
		evalGroup.GET("/summary/:id", GetSummary)
	}
}
