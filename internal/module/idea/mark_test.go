package idea

import (
	"idea-incubation-system/internal/global/response"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateMark(t *testing.T) {
	require.Nil(t, ValidateMark(nil))

	for _, v := range []int{0, 50, 100} {
		mark := v
		require.Nil(t, ValidateMark(&mark), "mark %d", v)
	}

	for _, v := range []int{-1, 101, 1000} {
		mark := v
		err := ValidateMark(&mark)
		require.NotNil(t, err, "mark %d", v)
		require.Equal(t, response.ErrInvalidMark.Code, err.Code)
	}
}
