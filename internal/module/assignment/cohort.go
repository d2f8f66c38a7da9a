package assignment

import (
	"idea-incubation-system/internal/global/audit"
	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/guard"
	"idea-incubation-system/internal/global/jwt"
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"
	"idea-incubation-system/internal/module/idea"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CohortCreateReq 创建孵化批次请求
type CohortCreateReq struct {
	Name      string `json:"name" binding:"required"`
	StartDate int64  `json:"start_date" binding:"required"`
	EndDate   int64  `json:"end_date" binding:"required"`
	BatchSize int    `json:"batch_size" binding:"required"` // 最大团队数
}

// CreateCohort 超级管理员创建批次
func CreateCohort(c *gin.Context) {
	var req CohortCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.BatchSize <= 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("批次容量必须为正数"))
		return
	}

	cohort := model.Cohort{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		BatchSize: req.BatchSize,
	}
	if err := database.DB.Create(&cohort).Error; err != nil {
		log.Error("创建批次失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("批次创建成功", "cohort_id", cohort.ID, "name", cohort.Name)
	response.Success(c, gin.H{"cohort_id": cohort.ID})
}

// ListCohorts 批次列表
func ListCohorts(c *gin.Context) {
	var cohorts []model.Cohort
	if err := database.DB.Order("start_date DESC").Find(&cohorts).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, cohorts)
}

// GetCohort 批次详情，含日程
func GetCohort(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("批次ID不能为空"))
		return
	}

	var cohort model.Cohort
	if err := database.DB.
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&cohort, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("批次不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, cohort)
}

// ScheduleEntryReq 日程条目
type ScheduleEntryReq struct {
	Date     string `json:"date"`
	Day      string `json:"day"`
	Time     string `json:"time"`
	Category string `json:"category"`
	Topic    string `json:"topic"`
	Content  string `json:"content"`
	Venue    string `json:"venue"`
}

// UpdateScheduleReq 日程整表替换请求
type UpdateScheduleReq struct {
	Entries []ScheduleEntryReq `json:"entries" binding:"required"`
}

// UpdateSchedule 超级管理员维护批次日程，整表替换
func UpdateSchedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("批次ID格式错误"))
		return
	}

	var req UpdateScheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var cohort model.Cohort
		if err := tx.First(&cohort, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("cohort_id = ?", cohort.ID).Delete(&model.CohortScheduleEntry{}).Error; err != nil {
			return err
		}
		for i, e := range req.Entries {
			entry := model.CohortScheduleEntry{
				CohortID: cohort.ID,
				Date:     e.Date,
				Day:      e.Day,
				Time:     e.Time,
				Category: e.Category,
				Topic:    e.Topic,
				Content:  e.Content,
				Venue:    e.Venue,
				Position: i,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("批次不存在"))
			return
		}
		log.Error("更新批次日程失败", "error", txErr, "cohort_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(txErr))
		return
	}

	log.Info("批次日程更新成功", "cohort_id", id, "entries", len(req.Entries))
	response.Success(c)
}

// AssignCohortReq 批次分配请求，cohort_id 为 null 表示移出批次
type AssignCohortReq struct {
	CohortID *uint `json:"cohort_id"`
}

// assignCohortOne 单个创意的批次变更
// 名额通过 member_count < batch_size 的条件更新保证，和创意写入同一事务：
// 目标批次满员时整个操作失败，不会出现占了名额却没挂上批次的中间态
func assignCohortOne(ideaID uint, cohortID *uint, actor guard.Actor) (*model.Idea, *response.Error) {
	updated, bizErr := idea.Mutate(database.DB, ideaID, func(tx *gorm.DB, fresh *model.Idea) *response.Error {
		// 同批次重复分配视为无操作
		if fresh.CohortID != nil && cohortID != nil && *fresh.CohortID == *cohortID {
			return nil
		}

		// 先占新批次名额，占不到就整体失败，原批次不动
		if cohortID != nil {
			res := tx.Model(&model.Cohort{}).
				Where("id = ? AND member_count < batch_size", *cohortID).
				UpdateColumn("member_count", gorm.Expr("member_count + 1"))
			if res.Error != nil {
				return response.ErrDatabase.WithOrigin(res.Error)
			}
			if res.RowsAffected == 0 {
				var cohort model.Cohort
				if err := tx.First(&cohort, "id = ?", *cohortID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return response.ErrNotFound.WithTips("批次不存在")
					}
					return response.ErrDatabase.WithOrigin(err)
				}
				return response.ErrCohortFull
			}
		}

		// 释放原批次名额
		if fresh.CohortID != nil {
			if err := tx.Model(&model.Cohort{}).
				Where("id = ? AND member_count > 0", *fresh.CohortID).
				UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}

		fresh.CohortID = cohortID
		return nil
	})
	if bizErr != nil {
		return nil, bizErr
	}

	details := map[string]any{}
	if cohortID != nil {
		details["cohort_id"] = *cohortID
	} else {
		details["unassigned"] = true
	}
	audit.Record(actor, model.ActionCohortAssigned, audit.IdeaTarget(updated), details)
	return updated, nil
}

// AssignCohort 超级管理员给创意分配/调整/移出批次
func AssignCohort(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	actor := guard.FromClaims(payload)

	if d := guard.Authorize(actor, guard.ActionAssignCohort); !d.Allowed {
		response.Fail(c, response.ErrForbidden.WithTips(d.Reason))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID格式错误"))
		return
	}

	var req AssignCohortReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	updated, bizErr := assignCohortOne(uint(id), req.CohortID, actor)
	if bizErr != nil {
		log.Warn("批次分配失败", "idea_id", id, "error", bizErr.Error())
		response.Fail(c, bizErr)
		return
	}

	log.Info("批次分配成功", "idea_id", updated.ID, "actor_uid", actor.UID)
	response.Success(c, updated)
}

// BatchAssignCohortReq 批量批次分配请求
type BatchAssignCohortReq struct {
	IdeaIDs  []uint `json:"idea_ids" binding:"required"`
	CohortID *uint  `json:"cohort_id"`
}

// BatchAssignCohort 批量批次分配，逐条独立执行，满员后剩余条目逐条失败
func BatchAssignCohort(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	actor := guard.FromClaims(payload)

	if d := guard.Authorize(actor, guard.ActionAssignCohort); !d.Allowed {
		response.Fail(c, response.ErrForbidden.WithTips(d.Reason))
		return
	}

	var req BatchAssignCohortReq
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
	for _, ideaID := range req.IdeaIDs {
		if _, bizErr := assignCohortOne(ideaID, req.CohortID, actor); bizErr != nil {
			results = append(results, itemResult{IdeaID: ideaID, Success: false, Message: bizErr.Message})
			continue
		}
		succeeded++
		results = append(results, itemResult{IdeaID: ideaID, Success: true})
	}

	log.Info("批量批次分配完成", "total", len(req.IdeaIDs), "succeeded", succeeded)
	response.Success(c, gin.H{
		"total":     len(req.IdeaIDs),
		"succeeded": succeeded,
		"failed":    len(req.IdeaIDs) - succeeded,
		"results":   results,
	})
}
