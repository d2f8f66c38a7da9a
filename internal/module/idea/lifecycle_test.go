package idea

import (
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func completeMeeting() *PhaseMeeting {
	return &PhaseMeeting{
		Date:       "2026-09-15",
		StartTime:  "10:00",
		EndTime:    "12:00",
		Venue:      "创新创业中心 301",
		Guidelines: "准备 10 分钟路演",
	}
}

func TestApplyTransitionRejectsUnknownStatus(t *testing.T) {
	idea := &model.Idea{Status: model.StatusSubmitted}
	_, err := ApplyTransition(idea, TransitionInput{Status: "DELETED"}, "admin1", time.Now())
	require.NotNil(t, err)
	require.Equal(t, response.ErrInvalidTransition.Code, err.Code)
	require.Equal(t, model.StatusSubmitted, idea.Status)
}

func TestApplyTransitionPhaseRequiresSelected(t *testing.T) {
	for _, status := range []model.IdeaStatus{
		model.StatusSubmitted,
		model.StatusUnderReview,
		model.StatusInEvaluation,
		model.StatusNotSelected,
	} {
		idea := &model.Idea{Status: model.StatusSubmitted}
		in := TransitionInput{Status: status, Phase: model.Phase1, RejectionRemarks: "不符合要求", Meeting: completeMeeting()}
		_, err := ApplyTransition(idea, in, "admin1", time.Now())
		require.NotNil(t, err, "status %s", status)
		require.Equal(t, response.ErrInvalidTransition.Code, err.Code)
	}
}

func TestApplyTransitionRejectionNeedsRemarks(t *testing.T) {
	idea := &model.Idea{Status: model.StatusInEvaluation}
	_, err := ApplyTransition(idea, TransitionInput{Status: model.StatusNotSelected, RejectionRemarks: "   "}, "admin1", time.Now())
	require.NotNil(t, err)
	require.Equal(t, response.ErrInvalidTransition.Code, err.Code)
	require.Equal(t, model.StatusInEvaluation, idea.Status)
}

func TestApplyTransitionRejectionSetsFields(t *testing.T) {
	now := time.Now()
	idea := &model.Idea{Status: model.StatusInEvaluation}
	action, err := ApplyTransition(idea, TransitionInput{
		Status:           model.StatusNotSelected,
		RejectionRemarks: " 方案可行性不足 ",
	}, "admin1", now)
	require.Nil(t, err)
	require.Equal(t, model.ActionStatusChange, action)
	require.Equal(t, model.StatusNotSelected, idea.Status)
	require.Equal(t, "方案可行性不足", idea.RejectionRemarks)
	require.Equal(t, "admin1", idea.RejectedByUID)
	require.NotNil(t, idea.RejectedAt)
	require.Equal(t, now, *idea.RejectedAt)
}

func TestApplyTransitionMeetingRequiredForEarlyPhases(t *testing.T) {
	incomplete := completeMeeting()
	incomplete.Venue = " "

	for _, phase := range []model.ProgramPhase{model.Phase1, model.Phase2} {
		for _, meeting := range []*PhaseMeeting{nil, incomplete} {
			idea := &model.Idea{Status: model.StatusSelected}
			_, err := ApplyTransition(idea, TransitionInput{
				Status:  model.StatusSelected,
				Phase:   phase,
				Meeting: meeting,
			}, "admin1", time.Now())
			require.NotNil(t, err, "phase %s", phase)
			require.Equal(t, response.ErrIncompletePhaseDetails.Code, err.Code)
		}
	}
}

func TestApplyTransitionPhaseChangeAction(t *testing.T) {
	idea := &model.Idea{Status: model.StatusSelected, ProgramPhase: model.Phase1}
	action, err := ApplyTransition(idea, TransitionInput{
		Status:  model.StatusSelected,
		Phase:   model.Phase2,
		Meeting: completeMeeting(),
	}, "admin1", time.Now())
	require.Nil(t, err)
	require.Equal(t, model.ActionPhaseChange, action)
	require.Equal(t, model.Phase2, idea.ProgramPhase)
	require.Equal(t, "2026-09-15", idea.NextPhaseDate)
}

func TestApplyTransitionPhasesMaySkip(t *testing.T) {
	// 阶段不要求顺序推进，PHASE_1 可以直接进入 INCUBATED
	idea := &model.Idea{Status: model.StatusSelected, ProgramPhase: model.Phase1}
	action, err := ApplyTransition(idea, TransitionInput{
		Status: model.StatusSelected,
		Phase:  model.PhaseIncubated,
	}, "admin1", time.Now())
	require.Nil(t, err)
	require.Equal(t, model.ActionPhaseChange, action)
	require.Equal(t, model.PhaseIncubated, idea.ProgramPhase)
}

func TestApplyTransitionClearsStaleFields(t *testing.T) {
	rejectedAt := time.Now()
	idea := &model.Idea{
		Status:           model.StatusNotSelected,
		RejectionRemarks: "旧驳回意见",
		RejectedByUID:    "admin0",
		RejectedAt:       &rejectedAt,
		NextPhaseDate:    "2026-01-01",
		NextPhaseVenue:   "旧会议室",
	}
	_, err := ApplyTransition(idea, TransitionInput{Status: model.StatusSelected, Phase: model.PhaseCohort}, "admin1", time.Now())
	require.Nil(t, err)
	require.Empty(t, idea.RejectionRemarks)
	require.Empty(t, idea.RejectedByUID)
	require.Nil(t, idea.RejectedAt)
	require.Empty(t, idea.NextPhaseDate)
	require.Empty(t, idea.NextPhaseVenue)
}

func TestApplyTransitionFundingOnlyInIncubated(t *testing.T) {
	idea := &model.Idea{
		Status:        model.StatusSelected,
		ProgramPhase:  model.PhaseIncubated,
		FundingSource: "校创新基金",
		TotalFunding:  100000,
	}
	_, err := ApplyTransition(idea, TransitionInput{Status: model.StatusSelected, Phase: model.PhaseCohort}, "admin1", time.Now())
	require.Nil(t, err)
	require.Empty(t, idea.FundingSource)
	require.Zero(t, idea.TotalFunding)

	// 进入 INCUBATED 不会自动生成资金总账，由资金分配操作写入
	idea2 := &model.Idea{Status: model.StatusSelected, ProgramPhase: model.PhaseCohort}
	_, err = ApplyTransition(idea2, TransitionInput{Status: model.StatusSelected, Phase: model.PhaseIncubated}, "admin1", time.Now())
	require.Nil(t, err)
	require.Empty(t, idea2.FundingSource)
	require.Zero(t, idea2.TotalFunding)
}

func TestFundingRecordsValidOnlyInIncubated(t *testing.T) {
	require.True(t, FundingRecordsValid(model.PhaseIncubated))
	for _, p := range []model.ProgramPhase{
		model.PhaseNone,
		model.Phase1,
		model.Phase2,
		model.PhaseCohort,
	} {
		require.False(t, FundingRecordsValid(p), "phase %s", p)
	}
}

func TestEditableStates(t *testing.T) {
	cases := map[model.IdeaStatus]bool{
		model.StatusSubmitted:       true,
		model.StatusArchivedByAdmin: true,
		model.StatusUnderReview:     false,
		model.StatusInEvaluation:    false,
		model.StatusSelected:        false,
		model.StatusNotSelected:     false,
	}
	for status, want := range cases {
		idea := &model.Idea{Status: status}
		require.Equal(t, want, idea.Editable(), "status %s", status)
	}
}

func TestApplyArchiveResetsIdea(t *testing.T) {
	rejectedAt := time.Now()
	cohortID := uint(3)
	idea := &model.Idea{
		Status:           model.StatusSelected,
		ProgramPhase:     model.PhaseIncubated,
		Mentor:           "王教授",
		CohortID:         &cohortID,
		FundingSource:    "校创新基金",
		TotalFunding:     100000,
		RejectionRemarks: "意见",
		RejectedAt:       &rejectedAt,
		NextPhaseDate:    "2026-01-01",
	}
	ApplyArchive(idea)
	require.Equal(t, model.StatusArchivedByAdmin, idea.Status)
	require.Equal(t, model.PhaseNone, idea.ProgramPhase)
	require.Empty(t, idea.Mentor)
	require.Empty(t, idea.FundingSource)
	require.Zero(t, idea.TotalFunding)
	require.Empty(t, idea.RejectionRemarks)
	require.Nil(t, idea.RejectedAt)
	require.Empty(t, idea.NextPhaseDate)
	require.True(t, idea.Editable())
}

func TestPhaseMeetingComplete(t *testing.T) {
	require.False(t, (*PhaseMeeting)(nil).Complete())
	require.True(t, completeMeeting().Complete())

	m := completeMeeting()
	m.Guidelines = ""
	require.False(t, m.Complete())
}
