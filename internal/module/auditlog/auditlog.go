package auditlog

import (
	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"

	"github.com/gin-gonic/gin"
)

// ListReq 操作日志查询参数
type ListReq struct {
	ActorUID string `form:"actor_uid"` // 按操作人筛选
	Action   string `form:"action"`    // 按动作类型筛选
	TargetID uint   `form:"target_id"` // 按目标实体筛选
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// List 管理员查询操作日志，按时间倒序
func List(c *gin.Context) {
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	query := database.DB.Model(&model.ActivityLog{})
	if req.ActorUID != "" {
		query = query.Where("actor_uid = ?", req.ActorUID)
	}
	if req.Action != "" {
		query = query.Where("action = ?", req.Action)
	}
	if req.TargetID != 0 {
		query = query.Where("target_id = ?", req.TargetID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var entries []model.ActivityLog
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.PageSize).Find(&entries).Error; err != nil {
		log.Error("查询操作日志失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]any{
		"entries":   entries,
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
	})
}
