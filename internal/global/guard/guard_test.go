package guard

import (
	"idea-incubation-system/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorizeRequiresAdminRole(t *testing.T) {
	for _, role := range []int{model.RoleStudent, model.RoleExternalUser} {
		actor := Actor{UID: "u1", Role: role}
		d := Authorize(actor, ActionSetStatus)
		require.False(t, d.Allowed, "role %d", role)
		require.NotEmpty(t, d.Reason)
	}
}

func TestAuthorizeAdminActions(t *testing.T) {
	admin := Actor{UID: "a1", Role: model.RoleAdminFaculty}
	for _, action := range []Action{ActionSetStatus, ActionArchiveIdea, ActionSubmitMark} {
		require.True(t, Authorize(admin, action).Allowed, "action %s", action)
	}
}

func TestAuthorizeSuperAdminActions(t *testing.T) {
	admin := Actor{UID: "a1", Role: model.RoleAdminFaculty}
	super := Actor{UID: "a2", Role: model.RoleAdminFaculty, IsSuperAdmin: true}

	superOnly := []Action{
		ActionAssignMentor,
		ActionAssignCohort,
		ActionAllocateFunding,
		ActionDisburseSanction,
		ActionReviewUtilization,
		ActionChangeUserRole,
	}
	for _, action := range superOnly {
		require.False(t, Authorize(admin, action).Allowed, "action %s", action)
		require.True(t, Authorize(super, action).Allowed, "action %s", action)
	}
}

func TestSuperAdminFlagAloneIsNotEnough(t *testing.T) {
	// 超级管理员标记只对管理员角色生效
	actor := Actor{UID: "u1", Role: model.RoleStudent, IsSuperAdmin: true}
	require.False(t, Authorize(actor, ActionAllocateFunding).Allowed)
}

func TestCanModifyUserProtectsPrimarySuperAdmin(t *testing.T) {
	super := Actor{UID: "root", Role: model.RoleAdminFaculty, IsSuperAdmin: true}

	require.True(t, CanModifyUser(super, "someone", "root").Allowed)

	// 主超级管理员自己也不能改动自己的角色
	d := CanModifyUser(super, "root", "root")
	require.False(t, d.Allowed)
	require.NotEmpty(t, d.Reason)

	// 未配置主超级管理员时不做保护
	require.True(t, CanModifyUser(super, "root", "").Allowed)
}

func TestCanModifyUserRequiresSuperAdmin(t *testing.T) {
	admin := Actor{UID: "a1", Role: model.RoleAdminFaculty}
	require.False(t, CanModifyUser(admin, "someone", "root").Allowed)
}
