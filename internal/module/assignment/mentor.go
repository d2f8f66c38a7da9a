package assignment

import (
	"idea-incubation-system/config"
	"idea-incubation-system/internal/global/audit"
	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/guard"
	"idea-incubation-system/internal/global/jwt"
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"
	"idea-incubation-system/internal/module/idea"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// mentorInRoster 校验导师是否在配置的导师名单中
func mentorInRoster(name string) bool {
	for _, m := range config.Get().Incubation.Mentors {
		if m == name {
			return true
		}
	}
	return false
}

// AssignMentorReq 导师分配请求，mentor 为空表示取消分配
type AssignMentorReq struct {
	Mentor string `json:"mentor"`
}

// AssignMentor 超级管理员为创意分配导师，导师必须出自名单
func AssignMentor(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	actor := guard.FromClaims(payload)

	if d := guard.Authorize(actor, guard.ActionAssignMentor); !d.Allowed {
		response.Fail(c, response.ErrForbidden.WithTips(d.Reason))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID格式错误"))
		return
	}

	var req AssignMentorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Mentor != "" && !mentorInRoster(req.Mentor) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("导师不在名单中"))
		return
	}

	updated, bizErr := idea.Mutate(database.DB, uint(id), func(tx *gorm.DB, fresh *model.Idea) *response.Error {
		fresh.Mentor = req.Mentor
		return nil
	})
	if bizErr != nil {
		log.Warn("分配导师失败", "id", id, "error", bizErr.Error())
		response.Fail(c, bizErr)
		return
	}

	audit.Record(actor, model.ActionMentorAssigned, audit.IdeaTarget(updated), map[string]any{
		"mentor": req.Mentor,
	})

	log.Info("导师分配成功", "id", updated.ID, "mentor", req.Mentor, "actor_uid", actor.UID)
	response.Success(c, updated)
}
