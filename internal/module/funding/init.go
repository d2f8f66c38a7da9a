package funding

import (
	"idea-incubation-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleFunding struct{}

func (m *ModuleFunding) GetName() string {
	return "Funding"
}

func (m *ModuleFunding) Init() {
	log = logger.New("Funding")
}
