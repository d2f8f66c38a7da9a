package idea

import (
	"idea-incubation-system/internal/global/audit"
	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/guard"
	"idea-incubation-system/internal/global/jwt"
	"idea-incubation-system/internal/global/notify"
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetStatusReq 状态/阶段流转请求
type SetStatusReq struct {
	Status           string        `json:"status" binding:"required"` // 目标状态
	Phase            string        `json:"phase"`                     // 目标阶段，仅 SELECTED 下有效
	RejectionRemarks string        `json:"rejection_remarks"`         // 驳回意见，NOT_SELECTED 必填
	Meeting          *PhaseMeeting `json:"meeting"`                   // 阶段会议安排，PHASE_1/PHASE_2 必填
}

// SetStatus 管理员流转创意状态与孵化阶段
func SetStatus(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	actor := guard.FromClaims(payload)

	if d := guard.Authorize(actor, guard.ActionSetStatus); !d.Allowed {
		response.Fail(c, response.ErrForbidden.WithTips(d.Reason))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID格式错误"))
		return
	}

	var req SetStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定状态流转请求失败", "error", err, "id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	updated, action, bizErr := setStatusOne(uint(id), req, actor)
	if bizErr != nil {
		log.Warn("状态流转失败", "id", id, "status", req.Status, "error", bizErr.Error())
		response.Fail(c, bizErr)
		return
	}

	log.Info("状态流转成功",
		"id", updated.ID,
		"status", updated.Status,
		"phase", updated.ProgramPhase,
		"action", action,
		"actor_uid", actor.UID,
	)
	response.Success(c, updated)
}

// purgeFundingRecords 删除创意的全部分期拨款与报销明细
func purgeFundingRecords(tx *gorm.DB, ideaID uint) *response.Error {
	var sanctionIDs []uint
	if err := tx.Model(&model.Sanction{}).Where("idea_id = ?", ideaID).Pluck("id", &sanctionIDs).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	if len(sanctionIDs) == 0 {
		return nil
	}
	if err := tx.Where("sanction_id IN ?", sanctionIDs).Delete(&model.Expense{}).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	if err := tx.Where("idea_id = ?", ideaID).Delete(&model.Sanction{}).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

// setStatusOne 单个创意的状态流转：CAS 写入、记录操作日志、触发通知
func setStatusOne(id uint, req SetStatusReq, actor guard.Actor) (*model.Idea, string, *response.Error) {
	var action string
	in := TransitionInput{
		Status:           model.IdeaStatus(req.Status),
		Phase:            model.ProgramPhase(req.Phase),
		RejectionRemarks: req.RejectionRemarks,
		Meeting:          req.Meeting,
	}

	updated, bizErr := Mutate(database.DB, id, func(tx *gorm.DB, fresh *model.Idea) *response.Error {
		var e *response.Error
		action, e = ApplyTransition(fresh, in, actor.UID, time.Now())
		if e != nil {
			return e
		}
		// 离开 INCUBATED 后分期与报销记录失效，随流转一并清除，
		// 避免重新进入孵化阶段时旧分期直接可放款
		if !FundingRecordsValid(fresh.ProgramPhase) {
			return purgeFundingRecords(tx, fresh.ID)
		}
		return nil
	})
	if bizErr != nil {
		return nil, "", bizErr
	}

	audit.Record(actor, action, audit.IdeaTarget(updated), map[string]any{
		"status": string(updated.Status),
		"phase":  string(updated.ProgramPhase),
	})

	switch updated.Status {
	case model.StatusSelected:
		notify.Send(updated.ApplicantUID, notify.KindIdeaSelected, map[string]any{
			"idea_id": updated.ID,
			"title":   updated.Title,
			"phase":   string(updated.ProgramPhase),
		})
	case model.StatusNotSelected:
		notify.Send(updated.ApplicantUID, notify.KindIdeaRejected, map[string]any{
			"idea_id": updated.ID,
			"title":   updated.Title,
			"remarks": updated.RejectionRemarks,
		})
	}

	return updated, action, nil
}

// BatchSetStatusReq 批量状态流转请求
type BatchSetStatusReq struct {
	IdeaIDs []uint `json:"idea_ids" binding:"required"`
	SetStatusReq
}

// BatchSetStatus 批量流转，逐条独立执行，逐条汇报成败
func BatchSetStatus(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	actor := guard.FromClaims(payload)

	if d := guard.Authorize(actor, guard.ActionSetStatus); !d.Allowed {
		response.Fail(c, response.ErrForbidden.WithTips(d.Reason))
		return
	}

	var req BatchSetStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	type itemResult struct {
		IdeaID  uint   `json:"idea_id"`
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
	}

	results := make([]itemResult, 0, len(req.IdeaIDs))
	succeeded := 0
	for _, id := range req.IdeaIDs {
		if _, _, bizErr := setStatusOne(id, req.SetStatusReq, actor); bizErr != nil {
			results = append(results, itemResult{IdeaID: id, Success: false, Message: bizErr.Message})
			continue
		}
		succeeded++
		results = append(results, itemResult{IdeaID: id, Success: true})
	}

	log.Info("批量状态流转完成",
		"total", len(req.IdeaIDs),
		"succeeded", succeeded,
		"actor_uid", actor.UID,
	)

	response.Success(c, gin.H{
		"total":     len(req.IdeaIDs),
		"succeeded": succeeded,
		"failed":    len(req.IdeaIDs) - succeeded,
		"results":   results,
	})
}

// ArchiveIdea 管理员退回创意修改
// 清空阶段、会议、资金、评分、导师与批次占用，申报人可重新编辑提交
func ArchiveIdea(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	actor := guard.FromClaims(payload)

	if d := guard.Authorize(actor, guard.ActionArchiveIdea); !d.Allowed {
		response.Fail(c, response.ErrForbidden.WithTips(d.Reason))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID格式错误"))
		return
	}

	updated, bizErr := Mutate(database.DB, uint(id), func(tx *gorm.DB, fresh *model.Idea) *response.Error {
		// 退出批次要释放名额
		if fresh.CohortID != nil {
			if err := tx.Model(&model.Cohort{}).
				Where("id = ? AND member_count > 0", *fresh.CohortID).
				UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
			fresh.CohortID = nil
		}

		// 评分与拨款记录随退回一并清除
		if err := tx.Where("idea_id = ?", fresh.ID).Delete(&model.PhaseMark{}).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if e := purgeFundingRecords(tx, fresh.ID); e != nil {
			return e
		}

		ApplyArchive(fresh)
		return nil
	})
	if bizErr != nil {
		log.Warn("退回创意失败", "id", id, "error", bizErr.Error())
		response.Fail(c, bizErr)
		return
	}

	audit.Record(actor, model.ActionIdeaArchived, audit.IdeaTarget(updated), nil)
	notify.Send(updated.ApplicantUID, notify.KindIdeaArchived, map[string]any{
		"idea_id": updated.ID,
		"title":   updated.Title,
	})

	log.Info("创意已退回修改", "id", updated.ID, "actor_uid", actor.UID)
	response.Success(c, updated)
}
