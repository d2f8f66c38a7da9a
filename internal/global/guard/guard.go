package guard

import (
	"idea-incubation-system/internal/global/jwt"
	"idea-incubation-system/internal/model"
)

// Action 需要鉴权的工作流操作
type Action string

const (
	ActionSetStatus         Action = "SET_STATUS"         // 状态/阶段流转
	ActionArchiveIdea       Action = "ARCHIVE_IDEA"       // 退回修改
	ActionSubmitMark        Action = "SUBMIT_MARK"        // 第二阶段评分
	ActionAssignMentor      Action = "ASSIGN_MENTOR"      // 分配导师
	ActionAssignCohort      Action = "ASSIGN_COHORT"      // 分配批次
	ActionAllocateFunding   Action = "ALLOCATE_FUNDING"   // 资金分配
	ActionDisburseSanction  Action = "DISBURSE_SANCTION"  // 放款
	ActionReviewUtilization Action = "REVIEW_UTILIZATION" // 资金使用审核
	ActionChangeUserRole    Action = "CHANGE_USER_ROLE"   // 修改用户角色
)

// superAdminActions 除管理员角色外还需要超级管理员标记的操作
var superAdminActions = map[Action]bool{
	ActionAssignMentor:      true,
	ActionAssignCohort:      true,
	ActionAllocateFunding:   true,
	ActionDisburseSanction:  true,
	ActionReviewUtilization: true,
	ActionChangeUserRole:    true,
}

// Actor 执行操作的用户身份，由调用方从登录态显式传入
type Actor struct {
	UID          string
	Name         string
	Role         int
	IsSuperAdmin bool
}

// FromClaims 从 JWT 载荷构造 Actor
func FromClaims(claims *jwt.Claims) Actor {
	return Actor{
		UID:          claims.UID,
		Name:         claims.NickName,
		Role:         claims.Role,
		IsSuperAdmin: claims.IsSuperAdmin,
	}
}

// Decision 鉴权结果，拒绝时带可展示的原因
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize 判断 actor 是否可以执行 action，纯函数，无副作用
func Authorize(actor Actor, action Action) Decision {
	if actor.Role != model.RoleAdminFaculty {
		return deny("仅管理员可执行该操作")
	}
	if superAdminActions[action] && !actor.IsSuperAdmin {
		return deny("该操作需要超级管理员权限")
	}
	return allow()
}

// CanModifyUser 判断能否修改目标用户的角色
// 主超级管理员账号任何人（包括其本人走普通流程）都不能改动
func CanModifyUser(actor Actor, targetUID, primarySuperAdminUID string) Decision {
	if d := Authorize(actor, ActionChangeUserRole); !d.Allowed {
		return d
	}
	if primarySuperAdminUID != "" && targetUID == primarySuperAdminUID {
		return deny("主超级管理员账号不可被修改")
	}
	return allow()
}
