package user

import (
	"idea-incubation-system/internal/global/middleware"
	"idea-incubation-system/internal/model"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化用户模块的路由
func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/user")
	{
		userGroup.POST("/login", Login)
		userGroup.POST("/register", Register)
	}

	authGroup := r.Group("/user", middleware.Auth(model.RoleStudent))
	{
		authGroup.GET("/me", GetProfile)
		authGroup.PUT("/profile", UpdateProfile)
		authGroup.PUT("/password", ChangePassword)
	}

	adminGroup := r.Group("/user", middleware.Auth(model.RoleAdminFaculty), middleware.SuperAdmin())
	{
		adminGroup.PUT("/role/:uid", ChangeRole)
	}
}
