package idea

import (
	"idea-incubation-system/internal/global/middleware"
	"idea-incubation-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleIdea) InitRouter(r *gin.RouterGroup) {
	// 申报人端点，所有创意相关端点以 /idea 为前缀
	ideaGroup := r.Group("/idea")

	ideaGroup.Use(middleware.Auth(model.RoleStudent))
	{
		// 提交创意
		ideaGroup.POST("/submit", SubmitIdea)

		// 修改并重新提交
		ideaGroup.PUT("/update/:id", UpdateIdea)

		// 我的申报列表
		ideaGroup.GET("/mine", ListMyIdeas)

		// 创意详情（本人或管理员）
		ideaGroup.GET("/get/:id", GetIdea)

		// 路演材料直传 URL
		ideaGroup.POST("/presentation/upload-url", PresentationUploadURL)
	}

	adminGroup := r.Group("/idea")
	adminGroup.Use(middleware.Auth(model.RoleAdminFaculty))
	{
		// 管理端列表
		adminGroup.GET("/list", ListIdeas)

		// 状态/阶段流转
		adminGroup.PUT("/status/:id", SetStatus)

		// 批量流转
		adminGroup.PUT("/batch-status", BatchSetStatus)

		// 退回修改
		adminGroup.PUT("/archive/:id", ArchiveIdea)

		// 第二阶段评分
		adminGroup.PUT("/mark/:id", SubmitMark)
	}
}
