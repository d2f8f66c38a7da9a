package idea

import (
	"idea-incubation-system/internal/global/audit"
	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/guard"
	"idea-incubation-system/internal/global/jwt"
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ValidateMark 评分取值校验：nil 表示清除自己的评分，否则必须在 0-100
func ValidateMark(mark *int) *response.Error {
	if mark == nil {
		return nil
	}
	if *mark < 0 || *mark > 100 {
		return response.ErrInvalidMark
	}
	return nil
}

// SubmitMarkReq 第二阶段评分请求，mark 为 null 表示清除本人评分
type SubmitMarkReq struct {
	Mark *int `json:"mark"`
}

// SubmitMark 管理员提交/清除自己对某创意的第二阶段评分
// 每个管理员只写自己的那一条记录，互不干扰，无需加锁
func SubmitMark(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	actor := guard.FromClaims(payload)

	if d := guard.Authorize(actor, guard.ActionSubmitMark); !d.Allowed {
		response.Fail(c, response.ErrForbidden.WithTips(d.Reason))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID格式错误"))
		return
	}

	var req SubmitMarkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if e := ValidateMark(req.Mark); e != nil {
		response.Fail(c, e)
		return
	}

	var target audit.Target
	bizErr := database.DB.Transaction(func(tx *gorm.DB) error {
		// 用最新状态校验阶段，避免写入已离开 PHASE_2 的创意
		var fresh model.Idea
		if err := tx.First(&fresh, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrNotFound.WithTips("创意不存在")
			}
			return response.ErrDatabase.WithOrigin(err)
		}
		if fresh.ProgramPhase != model.Phase2 {
			return response.ErrWrongPhase.WithTips("仅第二阶段的创意可评分")
		}
		target = audit.IdeaTarget(&fresh)

		if req.Mark == nil {
			// 清除本人评分，不影响其他管理员
			if err := tx.Where("idea_id = ? AND admin_uid = ?", fresh.ID, actor.UID).
				Delete(&model.PhaseMark{}).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
			return nil
		}

		entry := model.PhaseMark{
			IdeaID:    fresh.ID,
			AdminUID:  actor.UID,
			AdminName: actor.Name,
			Mark:      req.Mark,
			MarkedAt:  time.Now(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idea_id"}, {Name: "admin_uid"}},
			DoUpdates: clause.AssignmentColumns([]string{"admin_name", "mark", "marked_at"}),
		}).Create(&entry).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
	if bizErr != nil {
		var e *response.Error
		if !errors.As(bizErr, &e) {
			e = response.ErrDatabase.WithOrigin(bizErr)
		}
		log.Warn("提交评分失败", "id", id, "admin_uid", actor.UID, "error", e.Error())
		response.Fail(c, e)
		return
	}

	details := map[string]any{"cleared": req.Mark == nil}
	if req.Mark != nil {
		details["mark"] = *req.Mark
	}
	audit.Record(actor, model.ActionMarkSubmitted, target, details)

	log.Info("评分提交成功", "id", id, "admin_uid", actor.UID, "cleared", req.Mark == nil)
	response.Success(c)
}
