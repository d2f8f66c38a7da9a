package evaluation

import (
	"idea-incubation-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleEvaluation struct{}

func (m *ModuleEvaluation) GetName() string {
	return "Evaluation"
}

func (m *ModuleEvaluation) Init() {
	log = logger.New("Evaluation")
}
