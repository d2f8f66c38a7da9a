package funding

import (
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"
	"strings"
)

// ValidateAllocation 资金分配校验：两期之和等于总额且均为正数，来源必填
func ValidateAllocation(total, sanction1, sanction2 int64, source string) *response.Error {
	if total <= 0 || sanction1 <= 0 || sanction2 <= 0 {
		return response.ErrAmountMismatch
	}
	if sanction1+sanction2 != total {
		return response.ErrAmountMismatch
	}
	if strings.TrimSpace(source) == "" {
		return response.ErrMissingSource
	}
	return nil
}

// CanReallocate 重新分配校验
// 放款前分配可以整表覆盖；任何一期放款后 DisbursedAt 与使用记录即为事实，分配冻结
func CanReallocate(sanctions map[int]*model.Sanction) *response.Error {
	for _, s := range sanctions {
		if s != nil && s.Disbursed() {
			return response.ErrInvalidRequest.WithTips("已放款后不可重新分配资金")
		}
	}
	return nil
}

// CanDisburse 放款前置校验
// 第一期只要求已分配；第二期必须第一期资金使用审核通过
// 放款是单向操作，已放款的一期不允许重复放款
func CanDisburse(sanctions map[int]*model.Sanction, number int) *response.Error {
	if number != 1 && number != 2 {
		return response.ErrInvalidRequest.WithTips("期数只能为 1 或 2")
	}
	target := sanctions[number]
	if target == nil || target.Amount <= 0 {
		return response.ErrInvalidRequest.WithTips("该期资金尚未分配")
	}
	if target.Disbursed() {
		return response.ErrInvalidRequest.WithTips("该期资金已放款")
	}
	if number == 2 {
		first := sanctions[1]
		if first == nil || first.UtilizationStatus != model.UtilizationApproved {
			return response.ErrPriorSanctionNotApproved
		}
	}
	return nil
}

// ValidateReview 资金使用审核校验：驳回必须填写意见
func ValidateReview(decision model.UtilizationStatus, remarks string) *response.Error {
	switch decision {
	case model.UtilizationApproved, model.UtilizationPending:
		return nil
	case model.UtilizationRejected:
		if strings.TrimSpace(remarks) == "" {
			return response.ErrRemarksRequired
		}
		return nil
	default:
		return response.ErrInvalidRequest.WithTips("未知的审核结论")
	}
}

// ValidateExpense 报销明细校验：说明、正数金额、凭证缺一不可
func ValidateExpense(description string, amount int64, proofRef string) *response.Error {
	if strings.TrimSpace(description) == "" {
		return response.ErrInvalidRequest.WithTips("费用说明不能为空")
	}
	if amount <= 0 {
		return response.ErrInvalidRequest.WithTips("费用金额必须为正数")
	}
	if strings.TrimSpace(proofRef) == "" {
		return response.ErrInvalidRequest.WithTips("费用凭证不能为空")
	}
	return nil
}
