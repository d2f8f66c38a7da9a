package evaluation

import (
	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/jwt"
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetSummary 获取某创意的第二阶段评分汇总
func GetSummary(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID不能为空"))
		return
	}

	var idea model.Idea
	if err := database.DB.First(&idea, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("创意不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if idea.ProgramPhase != model.Phase2 {
		response.Fail(c, response.ErrWrongPhase.WithTips("仅第二阶段的创意有评分汇总"))
		return
	}

	var marks []model.PhaseMark
	if err := database.DB.Where("idea_id = ?", idea.ID).Order("marked_at").Find(&marks).Error; err != nil {
		log.Error("查询评分失败", "error", err, "idea_id", idea.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	summary := Summarize(marks, payload.UID, payload.IsSuperAdmin)
	response.Success(c, summary)
}
