package funding

import (
	"idea-incubation-system/internal/global/middleware"
	"idea-incubation-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleFunding) InitRouter(r *gin.RouterGroup) {
	// 申报人端点
	applicantGroup := r.Group("/funding")
	applicantGroup.Use(middleware.Auth(model.RoleStudent))
	{
		// 提交报销明细
		applicantGroup.POST("/expenses/:id", SubmitExpenses)

		// 维护收款银行信息
		applicantGroup.PUT("/bank/:id", UpdateBankDetails)

		// 报销凭证直传 URL
		applicantGroup.POST("/proof/upload-url", ProofUploadURL)
	}

	// 资金操作全部要求超级管理员
	adminGroup := r.Group("/funding")
	adminGroup.Use(middleware.Auth(model.RoleAdminFaculty), middleware.SuperAdmin())
	{
		// 资金分配
		adminGroup.POST("/allocate/:id", Allocate)

		// 放款
		adminGroup.POST("/disburse/:id", Disburse)

		// 资金使用审核
		adminGroup.POST("/review/:id", Review)
	}
}
