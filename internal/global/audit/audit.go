package audit

import (
	"encoding/json"
	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/guard"
	"idea-incubation-system/internal/global/logger"
	"idea-incubation-system/internal/model"
	"log/slog"
	"sync"
)

var (
	log     *slog.Logger
	logOnce sync.Once
)

// Target 被操作的实体
type Target struct {
	Type string
	ID   uint
	Name string
}

// IdeaTarget 指向创意申报的 Target
func IdeaTarget(idea *model.Idea) Target {
	return Target{Type: "idea", ID: idea.ID, Name: idea.Title}
}

// Record 追加一条操作日志
// 业务写入已提交后才调用，日志失败只记录运维日志，绝不影响触发它的操作
func Record(actor guard.Actor, action string, target Target, details map[string]any) {
	logOnce.Do(func() {
		log = logger.New("Audit")
	})

	detailsJSON := ""
	if len(details) > 0 {
		if b, err := json.Marshal(details); err == nil {
			detailsJSON = string(b)
		}
	}

	entry := model.ActivityLog{
		ActorUID:   actor.UID,
		ActorName:  actor.Name,
		Action:     action,
		TargetType: target.Type,
		TargetID:   target.ID,
		TargetName: target.Name,
		Details:    detailsJSON,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Error("操作日志写入失败",
			"error", err,
			"actor_uid", actor.UID,
			"action", action,
			"target_type", target.Type,
			"target_id", target.ID,
		)
	}
}
