package model

import "time"

// UtilizationStatus 资金使用审核状态
type UtilizationStatus string

const (
	UtilizationPending  UtilizationStatus = "PENDING"
	UtilizationApproved UtilizationStatus = "APPROVED"
	UtilizationRejected UtilizationStatus = "REJECTED"
)

// Sanction 一期拨款，每个创意最多两期，按 Number 区分
// 第二期放款以第一期使用审核通过为前置条件
type Sanction struct {
	Model
	IdeaID uint  `gorm:"not null;index:idx_idea_number,unique" json:"idea_id"`
	Number int   `gorm:"not null;index:idx_idea_number,unique" json:"number"` // 1 或 2
	Amount int64 `gorm:"not null" json:"amount"`

	DisbursedAt    *time.Time `json:"disbursed_at"`                          // 放款时间，nil 表示未放款
	AppliedForNext bool       `gorm:"default:false" json:"applied_for_next"` // 申报人申请进入下一期

	UtilizationStatus  UtilizationStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"utilization_status"`
	UtilizationRemarks string            `gorm:"type:text" json:"utilization_remarks"`
	ReviewedBy         string            `gorm:"type:varchar(32)" json:"reviewed_by"`
	ReviewedAt         *time.Time        `json:"reviewed_at"`

	Expenses []Expense `gorm:"foreignKey:SanctionID" json:"expenses,omitempty"`
}

// Expense 资金使用明细，只增不改
type Expense struct {
	Model
	SanctionID  uint   `gorm:"not null;index" json:"-"`
	Description string `gorm:"type:varchar(255);not null" json:"description"`
	Amount      int64  `gorm:"not null" json:"amount"`
	ProofRef    string `gorm:"type:varchar(255);not null" json:"proof_ref"` // 凭证链接，由外部上传服务生成
}

// Disbursed 该期是否已放款
func (s *Sanction) Disbursed() bool {
	return s.DisbursedAt != nil
}
