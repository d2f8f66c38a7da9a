package auditlog

import (
	"idea-incubation-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleAuditLog struct{}

func (m *ModuleAuditLog) GetName() string {
	return "AuditLog"
}

func (m *ModuleAuditLog) Init() {
	log = logger.New("AuditLog")
}
