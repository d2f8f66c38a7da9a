package assignment

import (
	"idea-incubation-system/internal/global/middleware"
	"idea-incubation-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleAssignment) InitRouter(r *gin.RouterGroup) {
	// 批次信息管理员可读
	readGroup := r.Group("/assignment")
	readGroup.Use(middleware.Auth(model.RoleAdminFaculty))
	{
		readGroup.GET("/cohort/list", ListCohorts)
		readGroup.GET("/cohort/get/:id", GetCohort)
	}

	// 分配操作全部要求超级管理员
	adminGroup := r.Group("/assignment")
	adminGroup.Use(middleware.Auth(model.RoleAdminFaculty), middleware.SuperAdmin())
	{
		// 导师分配
		adminGroup.PUT("/mentor/:id", AssignMentor)

		// 批次管理
		adminGroup.POST("/cohort/create", CreateCohort)
		adminGroup.PUT("/cohort/schedule/:id", UpdateSchedule)

		// 批次分配
		adminGroup.PUT("/cohort/assign/:id", AssignCohort)
		adminGroup.PUT("/cohort/batch-assign", BatchAssignCohort)
	}
}
