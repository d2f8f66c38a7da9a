package model

// 用户角色
const (
	RoleStudent      = 0 // 在校学生
	RoleExternalUser = 1 // 校外用户
	RoleAdminFaculty = 2 // 管理员（教职工）
)

type User struct {
	Model
	UID          string `gorm:"type:varchar(32);uniqueIndex;not null" json:"uid"` // 用户唯一标识
	Password     string `gorm:"type:varchar(255);not null" json:"-"`
	Role         int    `gorm:"default:0;not null" json:"role"`            // 0 学生 1 校外用户 2 管理员
	IsSuperAdmin bool   `gorm:"default:false" json:"is_super_admin"`       // 超级管理员标记
	NickName     string `gorm:"type:varchar(50);not null" json:"nick_name"`
	Email        string `gorm:"type:varchar(100);" json:"email"`
	Avatar       string `gorm:"type:varchar(255);" json:"avatar"`
}
