package module

import (
	"idea-incubation-system/internal/module/assignment"
	"idea-incubation-system/internal/module/auditlog"
	"idea-incubation-system/internal/module/evaluation"
	"idea-incubation-system/internal/module/funding"
	"idea-incubation-system/internal/module/idea"
	"idea-incubation-system/internal/module/ping"
	"idea-incubation-system/internal/module/stats"
	"idea-incubation-system/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&user.ModuleUser{},
		&ping.ModulePing{},
		&idea.ModuleIdea{},
		&evaluation.ModuleEvaluation{},
		&funding.ModuleFunding{},
		&assignment.ModuleAssignment{},
		&auditlog.ModuleAuditLog{},
		&stats.ModuleStats{},
	})
}
