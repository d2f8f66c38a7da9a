package evaluation

import (
	"idea-incubation-system/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, "a1", false)
	require.Zero(t, s.Count)
	require.Nil(t, s.Mean)
	require.Empty(t, s.Marks)
}

func TestSummarizeMeanIgnoresUnmarked(t *testing.T) {
	marks := []model.PhaseMark{
		{AdminUID: "a1", Mark: intPtr(80)},
		{AdminUID: "a2", Mark: intPtr(90)},
		{AdminUID: "a3", Mark: nil},
	}
	s := Summarize(marks, "a1", true)
	require.Equal(t, 2, s.Count)
	require.NotNil(t, s.Mean)
	require.InDelta(t, 85.0, *s.Mean, 1e-9)
}

func TestSummarizeVisibility(t *testing.T) {
	marks := []model.PhaseMark{
		{AdminUID: "a1", Mark: intPtr(80)},
		{AdminUID: "a2", Mark: intPtr(90)},
		{AdminUID: "a3", Mark: intPtr(70)},
	}

	// 普通管理员只能看到自己的明细，但汇总覆盖所有评分
	s := Summarize(marks, "a2", false)
	require.Equal(t, 3, s.Count)
	require.InDelta(t, 80.0, *s.Mean, 1e-9)
	require.Len(t, s.Marks, 1)
	require.Equal(t, "a2", s.Marks[0].AdminUID)

	// 超级管理员可见全部
	s = Summarize(marks, "a2", true)
	require.Len(t, s.Marks, 3)
}

func TestSummarizeViewerWithoutOwnMark(t *testing.T) {
	marks := []model.PhaseMark{
		{AdminUID: "a1", Mark: intPtr(60)},
	}
	s := Summarize(marks, "a9", false)
	require.Equal(t, 1, s.Count)
	require.Empty(t, s.Marks)
}
