package funding

import (
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateAllocation(t *testing.T) {
	cases := []struct {
		name          string
		total, s1, s2 int64
		source        string
		wantCode      int32
	}{
		{"正常分配", 100000, 60000, 40000, "校创新基金", 0},
		{"总额不符", 100000, 60000, 50000, "校创新基金", response.ErrAmountMismatch.Code},
		{"第一期为零", 100000, 0, 100000, "校创新基金", response.ErrAmountMismatch.Code},
		{"第二期为负", 100000, 110000, -10000, "校创新基金", response.ErrAmountMismatch.Code},
		{"总额为零", 0, 0, 0, "校创新基金", response.ErrAmountMismatch.Code},
		{"来源为空", 100000, 60000, 40000, "  ", response.ErrMissingSource.Code},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateAllocation(c.total, c.s1, c.s2, c.source)
			if c.wantCode == 0 {
				require.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			require.Equal(t, c.wantCode, err.Code)
		})
	}
}

func allocated(number int, amount int64, status model.UtilizationStatus, disbursed bool) *model.Sanction {
	s := &model.Sanction{Number: number, Amount: amount, UtilizationStatus: status}
	if disbursed {
		now := time.Now()
		s.DisbursedAt = &now
	}
	return s
}

func TestCanReallocate(t *testing.T) {
	// 未分配或未放款时允许整表覆盖
	require.Nil(t, CanReallocate(nil))
	require.Nil(t, CanReallocate(map[int]*model.Sanction{
		1: allocated(1, 60000, model.UtilizationPending, false),
		2: allocated(2, 40000, model.UtilizationPending, false),
	}))

	// 任何一期放款后分配冻结
	e := CanReallocate(map[int]*model.Sanction{
		1: allocated(1, 60000, model.UtilizationApproved, true),
		2: allocated(2, 40000, model.UtilizationPending, false),
	})
	require.NotNil(t, e)
	require.Equal(t, response.ErrInvalidRequest.Code, e.Code)

	e = CanReallocate(map[int]*model.Sanction{
		1: allocated(1, 60000, model.UtilizationApproved, true),
		2: allocated(2, 40000, model.UtilizationPending, true),
	})
	require.NotNil(t, e)
	require.Equal(t, response.ErrInvalidRequest.Code, e.Code)
}

func TestCanDisburseFirstSanction(t *testing.T) {
	sanctions := map[int]*model.Sanction{
		1: allocated(1, 60000, model.UtilizationPending, false),
		2: allocated(2, 40000, model.UtilizationPending, false),
	}
	require.Nil(t, CanDisburse(sanctions, 1))
}

func TestCanDisburseUnallocated(t *testing.T) {
	err := CanDisburse(map[int]*model.Sanction{}, 1)
	require.NotNil(t, err)
	require.Equal(t, response.ErrInvalidRequest.Code, err.Code)
}

func TestCanDisburseInvalidNumber(t *testing.T) {
	for _, n := range []int{0, 3, -1} {
		err := CanDisburse(map[int]*model.Sanction{}, n)
		require.NotNil(t, err)
		require.Equal(t, response.ErrInvalidRequest.Code, err.Code)
	}
}

func TestCanDisburseAlreadyDisbursed(t *testing.T) {
	sanctions := map[int]*model.Sanction{
		1: allocated(1, 60000, model.UtilizationPending, true),
	}
	err := CanDisburse(sanctions, 1)
	require.NotNil(t, err)
	require.Equal(t, response.ErrInvalidRequest.Code, err.Code)
}

func TestCanDisburseSecondNeedsFirstApproved(t *testing.T) {
	for _, status := range []model.UtilizationStatus{model.UtilizationPending, model.UtilizationRejected} {
		sanctions := map[int]*model.Sanction{
			1: allocated(1, 60000, status, true),
			2: allocated(2, 40000, model.UtilizationPending, false),
		}
		err := CanDisburse(sanctions, 2)
		require.NotNil(t, err, "status %s", status)
		require.Equal(t, response.ErrPriorSanctionNotApproved.Code, err.Code)
	}

	sanctions := map[int]*model.Sanction{
		1: allocated(1, 60000, model.UtilizationApproved, true),
		2: allocated(2, 40000, model.UtilizationPending, false),
	}
	require.Nil(t, CanDisburse(sanctions, 2))
}

func TestValidateReview(t *testing.T) {
	require.Nil(t, ValidateReview(model.UtilizationApproved, ""))
	require.Nil(t, ValidateReview(model.UtilizationPending, ""))
	require.Nil(t, ValidateReview(model.UtilizationRejected, "凭证与金额不符"))

	err := ValidateReview(model.UtilizationRejected, "  ")
	require.NotNil(t, err)
	require.Equal(t, response.ErrRemarksRequired.Code, err.Code)

	err = ValidateReview("UNKNOWN", "")
	require.NotNil(t, err)
	require.Equal(t, response.ErrInvalidRequest.Code, err.Code)
}

func TestValidateExpense(t *testing.T) {
	require.Nil(t, ValidateExpense("购置开发板", 1500, "https://proof.example.com/a.jpg"))

	cases := []struct {
		name        string
		description string
		amount      int64
		proofRef    string
	}{
		{"说明为空", " ", 1500, "https://proof.example.com/a.jpg"},
		{"金额为零", "购置开发板", 0, "https://proof.example.com/a.jpg"},
		{"金额为负", "购置开发板", -100, "https://proof.example.com/a.jpg"},
		{"凭证为空", "购置开发板", 1500, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateExpense(c.description, c.amount, c.proofRef)
			require.NotNil(t, err)
			require.Equal(t, response.ErrInvalidRequest.Code, err.Code)
		})
	}
}
