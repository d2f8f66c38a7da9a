package user

import (
	"idea-incubation-system/config"
	"idea-incubation-system/internal/global/audit"
	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/guard"
	"idea-incubation-system/internal/global/jwt"
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"
	"idea-incubation-system/tools"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// User 定义登录和注册请求的结构体
type User struct {
	UID      string `json:"uid" binding:"required"` // 学号或工号，唯一标识用户
	Password string `json:"password" binding:"required"`
}

// Login 处理用户登录请求
func Login(c *gin.Context) {
	var req User
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err, "uid", req.UID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 查询用户是否存在
	var user model.User
	err := database.DB.Where("uid = ?", req.UID).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "uid", req.UID)
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "uid", req.UID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 验证密码
	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("密码错误", "uid", req.UID)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	log.Info("用户登录成功",
		"uid", user.UID,
		"role", user.Role)

	// 生成 JWT 令牌并返回用户信息
	response.Success(c, map[string]interface{}{
		"token": jwt.CreateToken(jwt.Payload{
			UID:          user.UID,
			Role:         user.Role,
			IsSuperAdmin: user.IsSuperAdmin,
			NickName:     user.NickName,
		}),
		"uid":            user.UID,
		"role":           user.Role,
		"is_super_admin": user.IsSuperAdmin,
	})
}

// validatePasswordStrength 验证密码强度
func validatePasswordStrength(password string) error {
	if password == "" {
		return errors.New("密码不能为空")
	}
	if len(password) < 8 {
		return errors.New("密码长度必须至少8字符")
	}

	hasLetter := false
	hasDigit := false
	hasSpecial := false
	specialChars := "!@#$%^&*-"

	for _, char := range password {
		switch {
		case strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ", char):
			hasLetter = true
		case strings.ContainsRune("0123456789", char):
			hasDigit = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	if !hasLetter {
		return errors.New("密码必须包含至少一个字母")
	}
	if !hasDigit {
		return errors.New("密码必须包含至少一个数字")
	}
	if !hasSpecial {
		return errors.New("密码必须包含至少一个特殊字符（!@#$%^&*-）")
	}

	return nil
}

type registerReq struct {
	User
	NickName string `json:"nick_name" binding:"required"`
	Email    string `json:"email"`
	External bool   `json:"external"` // 校外用户注册
}

// Register 处理用户注册请求
// 注册只产生学生或校外用户，管理员角色由超级管理员授予
func Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定注册请求失败", "error", err, "uid", req.UID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 验证密码强度
	if err := validatePasswordStrength(req.Password); err != nil {
		log.Warn("密码强度验证失败", "error", err, "uid", req.UID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err).WithTips(err.Error()))
		return
	}

	// 检查 UID 是否已存在
	var existingUser model.User
	err := database.DB.Where("uid = ?", req.UID).First(&existingUser).Error
	if err == nil {
		log.Warn("用户已存在", "uid", req.UID)
		response.Fail(c, response.ErrAlreadyExists)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("数据库查询失败", "error", err, "uid", req.UID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	role := model.RoleStudent
	if req.External {
		role = model.RoleExternalUser
	}

	user := model.User{
		UID:      req.UID,
		Password: tools.PasswordEncrypt(req.Password),
		NickName: req.NickName,
		Email:    req.Email,
		Role:     role,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Error("创建用户失败", "error", err, "uid", req.UID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户注册成功",
		"uid", user.UID,
		"nick_name", user.NickName,
		"role", user.Role)

	response.Success(c)
}

// ChangePasswordReq 定义修改密码请求的结构体
type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"` // 旧密码，用于验证
	NewPassword string `json:"new_password" binding:"required"` // 新密码，需加密后保存
}

// ChangePassword 处理用户修改密码请求
// 验证旧密码正确性后更新新密码，要求用户已通过认证
func ChangePassword(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定修改密码请求失败", "error", err, "uid", payload.UID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if err := validatePasswordStrength(req.NewPassword); err != nil {
		log.Warn("新密码强度验证失败", "error", err, "uid", payload.UID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err).WithTips(err.Error()))
		return
	}

	var user model.User
	if err := database.DB.Where("uid = ?", payload.UID).First(&user).Error; err != nil {
		log.Error("查询用户失败", "error", err, "uid", payload.UID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.OldPassword, user.Password) {
		log.Warn("旧密码错误", "uid", payload.UID)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	newEncryptedPassword := tools.PasswordEncrypt(req.NewPassword)
	if err := database.DB.Model(&user).Update("password", newEncryptedPassword).Error; err != nil {
		log.Error("更新密码失败", "error", err, "uid", payload.UID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户修改密码成功", "uid", user.UID)
	response.Success(c)
}

// GetProfile 获取当前登录用户信息
func GetProfile(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var user model.User
	if err := database.DB.Where("uid = ?", payload.UID).First(&user).Error; err != nil {
		log.Error("查询用户失败", "error", err, "uid", payload.UID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, user)
}

// UpdateProfileReq 修改个人信息请求
type UpdateProfileReq struct {
	NickName string `json:"nick_name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// UpdateProfile 修改当前登录用户的昵称、邮箱和头像
func UpdateProfile(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	updates := map[string]any{}
	if req.NickName != "" {
		updates["nick_name"] = req.NickName
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}
	if len(updates) == 0 {
		response.Success(c)
		return
	}

	if err := database.DB.Model(&model.User{}).
		Where("uid = ?", payload.UID).
		Updates(updates).Error; err != nil {
		log.Error("更新用户信息失败", "error", err, "uid", payload.UID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户信息更新成功", "uid", payload.UID)
	response.Success(c)
}

// ChangeRoleReq 修改用户角色请求
type ChangeRoleReq struct {
	Role         int  `json:"role" binding:"min=0,max=2"` // 目标角色
	IsSuperAdmin bool `json:"is_super_admin"`             // 是否授予超级管理员
}

// ChangeRole 超级管理员修改指定用户的角色
// 主超级管理员账号不可被任何人改动
func ChangeRole(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	actor := guard.FromClaims(payload)

	targetUID := c.Param("uid")
	if targetUID == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("用户UID不能为空"))
		return
	}

	if d := guard.CanModifyUser(actor, targetUID, config.Get().Incubation.PrimarySuperAdmin); !d.Allowed {
		log.Warn("修改角色被拒绝", "uid", payload.UID, "target_uid", targetUID, "reason", d.Reason)
		response.Fail(c, response.ErrForbidden.WithTips(d.Reason))
		return
	}

	var req ChangeRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	// 超级管理员标记只对管理员角色有意义
	if req.IsSuperAdmin && req.Role != model.RoleAdminFaculty {
		response.Fail(c, response.ErrInvalidRequest.WithTips("超级管理员必须为管理员角色"))
		return
	}

	var user model.User
	err := database.DB.Where("uid = ?", targetUID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	oldRole := user.Role
	updates := map[string]any{
		"role":           req.Role,
		"is_super_admin": req.IsSuperAdmin,
	}
	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Error("更新用户角色失败", "error", err, "target_uid", targetUID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户角色修改成功",
		"operator_uid", payload.UID,
		"target_uid", targetUID,
		"old_role", oldRole,
		"new_role", req.Role,
		"is_super_admin", req.IsSuperAdmin)

	audit.Record(actor, model.ActionRoleChanged, audit.Target{Type: "user", ID: user.ID, Name: user.UID}, map[string]any{
		"old_role":       oldRole,
		"new_role":       req.Role,
		"is_super_admin": req.IsSuperAdmin,
	})

	response.Success(c)
}
