package model

import "time"

// 操作日志动作类型（封闭集合）
const (
	ActionStatusChange        = "STATUS_CHANGE"
	ActionPhaseChange         = "PHASE_CHANGE"
	ActionMentorAssigned      = "MENTOR_ASSIGNED"
	ActionCohortAssigned      = "COHORT_ASSIGNED"
	ActionFundingAllocated    = "FUNDING_ALLOCATED"
	ActionSanctionDisbursed   = "SANCTION_DISBURSED"
	ActionUtilizationReviewed = "UTILIZATION_REVIEWED"
	ActionMarkSubmitted       = "MARK_SUBMITTED"
	ActionIdeaArchived        = "IDEA_ARCHIVED"
	ActionRoleChanged         = "ROLE_CHANGED"
)

// ActivityLog 操作日志，只追加，任何代码不得更新或删除
type ActivityLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorUID   string    `gorm:"type:varchar(32);not null;index" json:"actor_uid"`
	ActorName  string    `gorm:"type:varchar(50);not null" json:"actor_name"`
	Action     string    `gorm:"type:varchar(30);not null;index" json:"action"`
	TargetType string    `gorm:"type:varchar(30);not null" json:"target_type"`
	TargetID   uint      `gorm:"not null;index" json:"target_id"`
	TargetName string    `gorm:"type:varchar(200)" json:"target_name"`
	Details    string    `gorm:"type:text" json:"details"` // JSON 键值对
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
