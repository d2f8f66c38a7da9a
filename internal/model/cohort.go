package model

// Cohort 孵化批次，固定容量，满员后不可再分配
type Cohort struct {
	Model
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	StartDate   int64  `gorm:"" json:"start_date"` // 批次开始时间（毫秒时间戳）
	EndDate     int64  `gorm:"" json:"end_date"`   // 批次结束时间（毫秒时间戳）
	BatchSize   int    `gorm:"not null" json:"batch_size"`             // 最大团队数
	MemberCount int    `gorm:"not null;default:0" json:"member_count"` // 当前团队数，条件更新保证不超容量

	Schedule []CohortScheduleEntry `gorm:"foreignKey:CohortID" json:"schedule,omitempty"`
}

// CohortScheduleEntry 批次日程条目
type CohortScheduleEntry struct {
	Model
	CohortID uint   `gorm:"not null;index" json:"-"`
	Date     string `gorm:"type:varchar(20)" json:"date"`
	Day      string `gorm:"type:varchar(20)" json:"day"`
	Time     string `gorm:"type:varchar(20)" json:"time"`
	Category string `gorm:"type:varchar(50)" json:"category"`
	Topic    string `gorm:"type:varchar(200)" json:"topic"`
	Content  string `gorm:"type:text" json:"content"`
	Venue    string `gorm:"type:varchar(200)" json:"venue"`
	Position int    `gorm:"default:0" json:"position"` // 条目排序
}

// HasCapacity 是否还有剩余名额
func (c *Cohort) HasCapacity() bool {
	return c.MemberCount < c.BatchSize
}
