package audit

import (
	"idea-incubation-system/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdeaTarget(t *testing.T) {
	idea := &model.Idea{Title: "校园二手书交易平台"}
	idea.ID = 7

	target := IdeaTarget(idea)
	require.Equal(t, "idea", target.Type)
	require.Equal(t, uint(7), target.ID)
	require.Equal(t, "校园二手书交易平台", target.Name)
}
