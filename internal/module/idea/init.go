package idea

import (
	"idea-incubation-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleIdea struct{}

func (m *ModuleIdea) GetName() string {
	return "Idea"
}

func (m *ModuleIdea) Init() {
	log = logger.New("Idea")
}
