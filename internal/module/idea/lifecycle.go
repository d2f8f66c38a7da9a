package idea

import (
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"
	"strings"
	"time"
)

// PhaseMeeting 进入 PHASE_1 / PHASE_2 时的会议安排
type PhaseMeeting struct {
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	Venue      string `json:"venue" binding:"required"`
	Guidelines string `json:"guidelines" binding:"required"`
}

// Complete 所有字段均已填写
func (m *PhaseMeeting) Complete() bool {
	if m == nil {
		return false
	}
	return strings.TrimSpace(m.Date) != "" &&
		strings.TrimSpace(m.StartTime) != "" &&
		strings.TrimSpace(m.EndTime) != "" &&
		strings.TrimSpace(m.Venue) != "" &&
		strings.TrimSpace(m.Guidelines) != ""
}

// TransitionInput 一次状态/阶段流转的全部输入
type TransitionInput struct {
	Status           model.IdeaStatus
	Phase            model.ProgramPhase
	RejectionRemarks string
	Meeting          *PhaseMeeting
}

var validStatuses = map[model.IdeaStatus]bool{
	model.StatusSubmitted:    true,
	model.StatusUnderReview:  true,
	model.StatusInEvaluation: true,
	model.StatusSelected:     true,
	model.StatusNotSelected:  true,
}

var validPhases = map[model.ProgramPhase]bool{
	model.PhaseNone:      true,
	model.Phase1:         true,
	model.Phase2:         true,
	model.PhaseCohort:    true,
	model.PhaseIncubated: true,
}

// meetingPhase 该阶段是否需要完整的会议安排
func meetingPhase(p model.ProgramPhase) bool {
	return p == model.Phase1 || p == model.Phase2
}

// FundingRecordsValid 分期拨款与报销记录是否在该阶段有效
// 离开 INCUBATED 时记录一并清除，重新进入须重新分配
func FundingRecordsValid(p model.ProgramPhase) bool {
	return p == model.PhaseIncubated
}

// ApplyTransition 在内存中校验并应用一次状态流转，不做任何持久化
// 返回应记录的操作日志类型；校验失败时 idea 保持原样
// 阶段允许跳跃设置（如 PHASE_1 直接到 INCUBATED），不强制顺序推进
func ApplyTransition(idea *model.Idea, in TransitionInput, actorUID string, now time.Time) (string, *response.Error) {
	if !validStatuses[in.Status] {
		return "", response.ErrInvalidTransition.WithTips("未知状态")
	}
	if !validPhases[in.Phase] {
		return "", response.ErrInvalidTransition.WithTips("未知阶段")
	}
	// 阶段只能挂在已入选的创意上
	if in.Phase != model.PhaseNone && in.Status != model.StatusSelected {
		return "", response.ErrInvalidTransition.WithTips("仅已入选的创意可设置孵化阶段")
	}
	// 驳回必须填写驳回意见
	if in.Status == model.StatusNotSelected && strings.TrimSpace(in.RejectionRemarks) == "" {
		return "", response.ErrInvalidTransition.WithTips("驳回必须填写驳回意见")
	}
	// 进入第一/第二阶段必须给出完整的会议安排
	if in.Status == model.StatusSelected && meetingPhase(in.Phase) && !in.Meeting.Complete() {
		return "", response.ErrIncompletePhaseDetails
	}

	prevStatus := idea.Status
	prevPhase := idea.ProgramPhase

	idea.Status = in.Status
	idea.ProgramPhase = in.Phase

	// 驳回信息只在 NOT_SELECTED 下有效，其余状态一律清除
	if in.Status == model.StatusNotSelected {
		idea.RejectionRemarks = strings.TrimSpace(in.RejectionRemarks)
		idea.RejectedByUID = actorUID
		t := now
		idea.RejectedAt = &t
	} else {
		idea.RejectionRemarks = ""
		idea.RejectedByUID = ""
		idea.RejectedAt = nil
	}

	// 会议信息只在 PHASE_1 / PHASE_2 下有效
	if meetingPhase(in.Phase) {
		idea.NextPhaseDate = in.Meeting.Date
		idea.NextPhaseStartTime = in.Meeting.StartTime
		idea.NextPhaseEndTime = in.Meeting.EndTime
		idea.NextPhaseVenue = in.Meeting.Venue
		idea.NextPhaseGuidelines = in.Meeting.Guidelines
	} else {
		clearMeeting(idea)
	}

	// 资金总账只在 INCUBATED 下有效
	if !FundingRecordsValid(in.Phase) {
		idea.FundingSource = ""
		idea.TotalFunding = 0
	}

	if prevStatus == in.Status && prevPhase != in.Phase {
		return model.ActionPhaseChange, nil
	}
	return model.ActionStatusChange, nil
}

// ApplyArchive 退回修改：清空阶段与全部附属信息，申报人可重新编辑提交
func ApplyArchive(idea *model.Idea) {
	idea.Status = model.StatusArchivedByAdmin
	idea.ProgramPhase = model.PhaseNone
	clearMeeting(idea)
	idea.RejectionRemarks = ""
	idea.RejectedByUID = ""
	idea.RejectedAt = nil
	idea.Mentor = ""
	idea.FundingSource = ""
	idea.TotalFunding = 0
}

func clearMeeting(idea *model.Idea) {
	idea.NextPhaseDate = ""
	idea.NextPhaseStartTime = ""
	idea.NextPhaseEndTime = ""
	idea.NextPhaseVenue = ""
	idea.NextPhaseGuidelines = ""
}
