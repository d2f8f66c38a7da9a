package middleware

import (
	"idea-incubation-system/internal/global/jwt"
	"idea-incubation-system/internal/global/response"
	"strings"

	"github.com/gin-gonic/gin"
)

// Auth 校验登录态并要求最低角色等级
// 角色：0 学生 1 校外用户 2 管理员
func Auth(minRole int) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取 Authorization 头
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}

		// 检查 Bearer 前缀并提取 token
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		// 解析 token
		if payload, valid := jwt.ParseToken(token); !valid {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		} else if payload.Role < minRole {
			response.Fail(c, response.ErrForbidden)
			c.Abort()
			return
		} else {
			c.Set("payload", payload)
		}
		c.Next()
	}
}

// SuperAdmin 在 Auth 之后使用，要求超级管理员身份
func SuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, exist := jwt.GetUserPayload(c)
		if !exist || !payload.IsSuperAdmin {
			response.Fail(c, response.ErrForbidden.WithTips("需要超级管理员权限"))
			c.Abort()
			return
		}
		c.Next()
	}
}
