package notify

import (
	"idea-incubation-system/config"
	"idea-incubation-system/internal/global/httpclient"
	"idea-incubation-system/internal/global/logger"
	"log/slog"
	"sync"
)

var (
	log     *slog.Logger
	logOnce sync.Once
)

// 通知类型
const (
	KindIdeaSelected      = "IDEA_SELECTED"
	KindIdeaRejected      = "IDEA_REJECTED"
	KindIdeaArchived      = "IDEA_ARCHIVED"
	KindSanctionDisbursed = "SANCTION_DISBURSED"
)

type message struct {
	UserUID string         `json:"user_uid"`
	Kind    string         `json:"kind"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Send 向站内信服务推送通知，异步发送，失败只记日志不影响业务
func Send(userUID, kind string, payload map[string]any) {
	logOnce.Do(func() {
		log = logger.New("Notify")
	})

	url := config.Get().Notify.WebhookURL
	if url == "" {
		return
	}

	go func() {
		_, err := httpclient.Client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(message{UserUID: userUID, Kind: kind, Payload: payload}).
			Post(url)
		if err != nil {
			log.Warn("通知推送失败", "error", err, "user_uid", userUID, "kind", kind)
		}
	}()
}
