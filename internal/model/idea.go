package model

import "time"

// IdeaStatus 创意申报的生命周期状态
type IdeaStatus string

const (
	StatusSubmitted       IdeaStatus = "SUBMITTED"         // 已提交
	StatusUnderReview     IdeaStatus = "UNDER_REVIEW"      // 初审中
	StatusInEvaluation    IdeaStatus = "IN_EVALUATION"     // 评审中
	StatusSelected        IdeaStatus = "SELECTED"          // 已入选
	StatusNotSelected     IdeaStatus = "NOT_SELECTED"      // 未入选
	StatusArchivedByAdmin IdeaStatus = "ARCHIVED_BY_ADMIN" // 管理员退回修改
)

// ProgramPhase 入选后的孵化阶段，空字符串表示未进入任何阶段
type ProgramPhase string

const (
	PhaseNone      ProgramPhase = ""
	Phase1         ProgramPhase = "PHASE_1"
	Phase2         ProgramPhase = "PHASE_2"
	PhaseCohort    ProgramPhase = "COHORT"
	PhaseIncubated ProgramPhase = "INCUBATED"
)

// Idea 创意申报，核心实体
// 约束：ProgramPhase 非空时 Status 必须为 SELECTED
type Idea struct {
	Model
	ApplicantUID   string `gorm:"type:varchar(32);not null;index" json:"applicant_uid"` // 申报人 UID
	ApplicantName  string `gorm:"type:varchar(50);not null" json:"applicant_name"`
	ApplicantEmail string `gorm:"type:varchar(100);" json:"applicant_email"`

	Title            string `gorm:"type:varchar(200);not null" json:"title"`   // 创意名称
	Problem          string `gorm:"type:text" json:"problem"`                  // 要解决的问题
	Solution         string `gorm:"type:text" json:"solution"`                 // 解决方案
	Uniqueness       string `gorm:"type:text" json:"uniqueness"`               // 独特性
	DevelopmentStage string `gorm:"type:varchar(100)" json:"development_stage"` // 当前发展阶段
	TeamMembersText  string `gorm:"type:text" json:"team_members_text"`        // 团队成员（自由文本）
	PresentationURL  string `gorm:"type:varchar(255)" json:"presentation_url"` // 路演材料链接

	Status       IdeaStatus   `gorm:"type:varchar(20);not null;default:'SUBMITTED';index" json:"status"`
	ProgramPhase ProgramPhase `gorm:"type:varchar(20);default:'';index" json:"program_phase"`

	// 阶段会议信息，进入 PHASE_1 / PHASE_2 时设置
	NextPhaseDate       string `gorm:"type:varchar(20)" json:"next_phase_date"`
	NextPhaseStartTime  string `gorm:"type:varchar(20)" json:"next_phase_start_time"`
	NextPhaseEndTime    string `gorm:"type:varchar(20)" json:"next_phase_end_time"`
	NextPhaseVenue      string `gorm:"type:varchar(200)" json:"next_phase_venue"`
	NextPhaseGuidelines string `gorm:"type:text" json:"next_phase_guidelines"`

	// 驳回信息，Status = NOT_SELECTED 时设置
	RejectionRemarks string     `gorm:"type:text" json:"rejection_remarks"`
	RejectedByUID    string     `gorm:"type:varchar(32)" json:"rejected_by_uid"`
	RejectedAt       *time.Time `json:"rejected_at"`

	// 分配信息
	Mentor   string `gorm:"type:varchar(50)" json:"mentor"` // 导师姓名，空表示未分配
	CohortID *uint  `gorm:"index" json:"cohort_id"`         // 所属批次

	// 资金总账，INCUBATED 阶段有效，分期明细见 Sanction
	FundingSource string `gorm:"type:varchar(100)" json:"funding_source"`
	TotalFunding  int64  `gorm:"default:0" json:"total_funding"`

	// 受益人银行信息，仅透传存储
	BankAccountName   string `gorm:"type:varchar(100)" json:"bank_account_name"`
	BankAccountNumber string `gorm:"type:varchar(50)" json:"bank_account_number"`
	BankIFSC          string `gorm:"type:varchar(20)" json:"bank_ifsc"`
	BankBranch        string `gorm:"type:varchar(100)" json:"bank_branch"`

	// 乐观锁版本号，写入时带版本条件，防止并发丢失更新
	Version uint `gorm:"default:0;not null" json:"-"`

	TeamMembers []TeamMember `gorm:"foreignKey:IdeaID" json:"team_members,omitempty"`
	Sanctions   []Sanction   `gorm:"foreignKey:IdeaID" json:"sanctions,omitempty"`
	Marks       []PhaseMark  `gorm:"foreignKey:IdeaID" json:"marks,omitempty"`
}

// TeamMember 结构化团队成员
type TeamMember struct {
	Model
	IdeaID           uint   `gorm:"not null;index" json:"-"`
	Name             string `gorm:"type:varchar(50);not null" json:"name"`
	Email            string `gorm:"type:varchar(100)" json:"email"`
	Phone            string `gorm:"type:varchar(20)" json:"phone"`
	Institute        string `gorm:"type:varchar(100)" json:"institute"`
	Department       string `gorm:"type:varchar(100)" json:"department"`
	EnrollmentNumber string `gorm:"type:varchar(50)" json:"enrollment_number"`
	Position         int    `gorm:"default:0" json:"position"` // 成员排序
}

// PhaseMark 第二阶段评分，每个管理员一条记录，只能改自己的
type PhaseMark struct {
	Model
	IdeaID    uint      `gorm:"not null;index:idx_idea_admin,unique" json:"idea_id"`
	AdminUID  string    `gorm:"type:varchar(32);not null;index:idx_idea_admin,unique" json:"admin_uid"`
	AdminName string    `gorm:"type:varchar(50);not null" json:"admin_name"`
	Mark      *int      `json:"mark"` // 0-100，nil 表示未评分
	MarkedAt  time.Time `json:"marked_at"`
}

// Editable 申报人是否可编辑并重新提交
func (i *Idea) Editable() bool {
	return i.Status == StatusSubmitted || i.Status == StatusArchivedByAdmin
}
