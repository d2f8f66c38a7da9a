package funding

import (
	"idea-incubation-system/internal/global/audit"
	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/guard"
	"idea-incubation-system/internal/global/jwt"
	"idea-incubation-system/internal/global/notify"
	"idea-incubation-system/internal/global/proofstore"
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"
	"idea-incubation-system/internal/module/idea"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loadSanctions 在事务内加锁读取某创意的两期拨款，按期数索引
func loadSanctions(tx *gorm.DB, ideaID uint) (map[int]*model.Sanction, *response.Error) {
	var rows []model.Sanction
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("idea_id = ?", ideaID).Find(&rows).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	sanctions := make(map[int]*model.Sanction, len(rows))
	for i := range rows {
		sanctions[rows[i].Number] = &rows[i]
	}
	return sanctions, nil
}

// requireIncubated 资金操作仅对 INCUBATED 阶段开放
func requireIncubated(fresh *model.Idea) *response.Error {
	if fresh.ProgramPhase != model.PhaseIncubated {
		return response.ErrWrongPhase.WithTips("仅孵化中的创意可进行资金操作")
	}
	return nil
}

// AllocateReq 资金分配请求
type AllocateReq struct {
	Total     int64  `json:"total" binding:"required"`     // 总额
	Sanction1 int64  `json:"sanction1" binding:"required"` // 第一期金额
	Sanction2 int64  `json:"sanction2" binding:"required"` // 第二期金额
	Source    string `json:"source" binding:"required"`    // 资金来源
}

// Allocate 超级管理员为孵化中的创意分配资金
// 幂等：放款前重复调用整体覆盖上一次分配，不做部分合并；任何一期放款后分配冻结
func Allocate(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	actor := guard.FromClaims(payload)

	if d := guard.Authorize(actor, guard.ActionAllocateFunding); !d.Allowed {
		response.Fail(c, response.ErrForbidden.WithTips(d.Reason))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID格式错误"))
		return
	}

	var req AllocateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	updated, bizErr := idea.Mutate(database.DB, uint(id), func(tx *gorm.DB, fresh *model.Idea) *response.Error {
		if e := requireIncubated(fresh); e != nil {
			return e
		}
		if e := ValidateAllocation(req.Total, req.Sanction1, req.Sanction2, req.Source); e != nil {
			return e
		}

		// 放款后覆盖会抹掉放款时间与使用记录，直接拒绝
		existing, e := loadSanctions(tx, fresh.ID)
		if e != nil {
			return e
		}
		if e := CanReallocate(existing); e != nil {
			return e
		}

		// 整体覆盖：旧的分期与明细全部清掉重建
		if len(existing) > 0 {
			sanctionIDs := make([]uint, 0, len(existing))
			for _, s := range existing {
				sanctionIDs = append(sanctionIDs, s.ID)
			}
			if err := tx.Where("sanction_id IN ?", sanctionIDs).Delete(&model.Expense{}).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
			if err := tx.Where("idea_id = ?", fresh.ID).Delete(&model.Sanction{}).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}

		for number, amount := range map[int]int64{1: req.Sanction1, 2: req.Sanction2} {
			s := model.Sanction{
				IdeaID:            fresh.ID,
				Number:            number,
				Amount:            amount,
				UtilizationStatus: model.UtilizationPending,
			}
			if err := tx.Create(&s).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}

		fresh.FundingSource = req.Source
		fresh.TotalFunding = req.Total
		return nil
	})
	if bizErr != nil {
		log.Warn("资金分配失败", "id", id, "error", bizErr.Error())
		response.Fail(c, bizErr)
		return
	}

	audit.Record(actor, model.ActionFundingAllocated, audit.IdeaTarget(updated), map[string]any{
		"total":     req.Total,
		"sanction1": req.Sanction1,
		"sanction2": req.Sanction2,
		"source":    req.Source,
	})

	log.Info("资金分配成功", "id", updated.ID, "total", req.Total, "actor_uid", actor.UID)
	response.Success(c, updated)
}

// DisburseReq 放款请求
type DisburseReq struct {
	Number int `json:"number" binding:"required"` // 期数，1 或 2
}

// Disburse 超级管理员放款
// 第二期放款的唯一前置条件是第一期资金使用审核通过
func Disburse(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	actor := guard.FromClaims(payload)

	if d := guard.Authorize(actor, guard.ActionDisburseSanction); !d.Allowed {
		response.Fail(c, response.ErrForbidden.WithTips(d.Reason))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID格式错误"))
		return
	}

	var req DisburseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	updated, bizErr := idea.Mutate(database.DB, uint(id), func(tx *gorm.DB, fresh *model.Idea) *response.Error {
		if e := requireIncubated(fresh); e != nil {
			return e
		}
		sanctions, e := loadSanctions(tx, fresh.ID)
		if e != nil {
			return e
		}
		if e := CanDisburse(sanctions, req.Number); e != nil {
			return e
		}

		now := time.Now()
		if err := tx.Model(&model.Sanction{}).
			Where("idea_id = ? AND number = ?", fresh.ID, req.Number).
			Update("disbursed_at", now).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
	if bizErr != nil {
		log.Warn("放款失败", "id", id, "number", req.Number, "error", bizErr.Error())
		response.Fail(c, bizErr)
		return
	}

	audit.Record(actor, model.ActionSanctionDisbursed, audit.IdeaTarget(updated), map[string]any{
		"number": req.Number,
	})
	notify.Send(updated.ApplicantUID, notify.KindSanctionDisbursed, map[string]any{
		"idea_id": updated.ID,
		"title":   updated.Title,
		"number":  req.Number,
	})

	log.Info("放款成功", "id", updated.ID, "number", req.Number, "actor_uid", actor.UID)
	response.Success(c)
}

// ExpenseReq 单条报销明细
type ExpenseReq struct {
	Description string `json:"description" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	ProofRef    string `json:"proof_ref" binding:"required"` // 凭证链接
}

// SubmitExpensesReq 报销明细提交请求
type SubmitExpensesReq struct {
	Number       int          `json:"number" binding:"required"` // 期数
	Expenses     []ExpenseReq `json:"expenses" binding:"required"`
	ApplyForNext bool         `json:"apply_for_next"` // 申请进入下一期
}

// SubmitExpenses 申报人提交资金使用明细，只追加不修改
func SubmitExpenses(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID格式错误"))
		return
	}

	var req SubmitExpensesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Number != 1 && req.Number != 2 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("期数只能为 1 或 2"))
		return
	}
	for _, e := range req.Expenses {
		if bizErr := ValidateExpense(e.Description, e.Amount, e.ProofRef); bizErr != nil {
			response.Fail(c, bizErr)
			return
		}
	}

	_, bizErr := idea.Mutate(database.DB, uint(id), func(tx *gorm.DB, fresh *model.Idea) *response.Error {
		if fresh.ApplicantUID != payload.UID {
			return response.ErrForbidden.WithTips("只有申报人本人可以提交报销明细")
		}
		if e := requireIncubated(fresh); e != nil {
			return e
		}

		sanctions, e := loadSanctions(tx, fresh.ID)
		if e != nil {
			return e
		}
		target := sanctions[req.Number]
		if target == nil {
			return response.ErrInvalidRequest.WithTips("该期资金尚未分配")
		}
		if !target.Disbursed() {
			return response.ErrInvalidRequest.WithTips("该期资金尚未放款")
		}

		for _, item := range req.Expenses {
			expense := model.Expense{
				SanctionID:  target.ID,
				Description: item.Description,
				Amount:      item.Amount,
				ProofRef:    item.ProofRef,
			}
			if err := tx.Create(&expense).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}

		if req.ApplyForNext {
			if err := tx.Model(&model.Sanction{}).
				Where("id = ?", target.ID).
				Update("applied_for_next", true).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}
		return nil
	})
	if bizErr != nil {
		log.Warn("提交报销明细失败", "id", id, "number", req.Number, "error", bizErr.Error())
		response.Fail(c, bizErr)
		return
	}

	log.Info("报销明细提交成功", "id", id, "number", req.Number, "count", len(req.Expenses))
	response.Success(c)
}

// ReviewReq 资金使用审核请求
type ReviewReq struct {
	Number   int    `json:"number" binding:"required"`   // 期数
	Decision string `json:"decision" binding:"required"` // APPROVED / REJECTED / PENDING
	Remarks  string `json:"remarks"`                     // 审核意见，驳回必填
}

// Review 超级管理员审核资金使用
// 第一期审核通过是第二期放款的唯一解锁条件
func Review(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	actor := guard.FromClaims(payload)

	if d := guard.Authorize(actor, guard.ActionReviewUtilization); !d.Allowed {
		response.Fail(c, response.ErrForbidden.WithTips(d.Reason))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID格式错误"))
		return
	}

	var req ReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Number != 1 && req.Number != 2 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("期数只能为 1 或 2"))
		return
	}

	decision := model.UtilizationStatus(req.Decision)
	if e := ValidateReview(decision, req.Remarks); e != nil {
		response.Fail(c, e)
		return
	}

	updated, bizErr := idea.Mutate(database.DB, uint(id), func(tx *gorm.DB, fresh *model.Idea) *response.Error {
		if e := requireIncubated(fresh); e != nil {
			return e
		}
		sanctions, e := loadSanctions(tx, fresh.ID)
		if e != nil {
			return e
		}
		target := sanctions[req.Number]
		if target == nil {
			return response.ErrInvalidRequest.WithTips("该期资金尚未分配")
		}
		if !target.Disbursed() {
			return response.ErrInvalidRequest.WithTips("该期资金尚未放款，无法审核使用情况")
		}

		now := time.Now()
		if err := tx.Model(&model.Sanction{}).
			Where("id = ?", target.ID).
			Updates(map[string]any{
				"utilization_status":  string(decision),
				"utilization_remarks": req.Remarks,
				"reviewed_by":         actor.UID,
				"reviewed_at":         now,
			}).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
	if bizErr != nil {
		log.Warn("资金使用审核失败", "id", id, "number", req.Number, "error", bizErr.Error())
		response.Fail(c, bizErr)
		return
	}

	audit.Record(actor, model.ActionUtilizationReviewed, audit.IdeaTarget(updated), map[string]any{
		"number":   req.Number,
		"decision": req.Decision,
	})

	log.Info("资金使用审核完成",
		"id", updated.ID,
		"number", req.Number,
		"decision", req.Decision,
		"actor_uid", actor.UID,
	)
	response.Success(c)
}

// BankDetailsReq 受益人银行信息，仅透传存储
type BankDetailsReq struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	Branch        string `json:"branch"`
}

// UpdateBankDetails 申报人维护收款银行信息
func UpdateBankDetails(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID格式错误"))
		return
	}

	var req BankDetailsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	_, bizErr := idea.Mutate(database.DB, uint(id), func(tx *gorm.DB, fresh *model.Idea) *response.Error {
		if fresh.ApplicantUID != payload.UID {
			return response.ErrForbidden.WithTips("只有申报人本人可以维护银行信息")
		}
		fresh.BankAccountName = req.AccountName
		fresh.BankAccountNumber = req.AccountNumber
		fresh.BankIFSC = req.IFSC
		fresh.BankBranch = req.Branch
		return nil
	})
	if bizErr != nil {
		response.Fail(c, bizErr)
		return
	}

	response.Success(c)
}

// ProofUploadURLReq 报销凭证上传请求
type ProofUploadURLReq struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
}

// ProofUploadURL 生成报销凭证的预签名直传 URL
func ProofUploadURL(c *gin.Context) {
	var req ProofUploadURLReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	store := proofstore.New("expense-proof")
	resp, err := store.GeneratePresignedUploadURL(c.Request.Context(), proofstore.PresignedUploadRequest{
		Filename:    req.Filename,
		ContentType: req.ContentType,
	})
	if err != nil {
		log.Error("生成凭证上传 URL 失败", "error", err)
		response.Fail(c, response.ErrServer.WithOrigin(err))
		return
	}

	response.Success(c, resp)
}
