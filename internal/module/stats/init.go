package stats

import (
	"idea-incubation-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleStats struct{}

func (p *ModuleStats) GetName() string {
	return "Stats"
}

func (p *ModuleStats) Init() {
	log = logger.New("Stats")
}
