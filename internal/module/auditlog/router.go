package auditlog

import (
	"idea-incubation-system/internal/global/middleware"
	"idea-incubation-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleAuditLog) InitRouter(r *gin.RouterGroup) {
	logGroup := r.Group("/auditlog")

	logGroup.Use(middleware.Auth(model.RoleAdminFaculty))
	{
		logGroup.GET("/list", List)
	}
}
