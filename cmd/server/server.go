package server

import (
	"fmt"
	"idea-incubation-system/config"
	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/httpclient"
	"idea-incubation-system/internal/global/logger"
	"idea-incubation-system/internal/global/middleware"
	"idea-incubation-system/internal/global/sentry"
	"idea-incubation-system/internal/module"
	"idea-incubation-system/tools"
	"log/slog"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	if err := sentry.Init(); err != nil {
		log.Warn("Sentry 初始化失败", "error", err)
	}

	database.Init()
	database.InitRedis()

	httpclient.Init()

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	defer sentry.Flush()

	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())
	r.Use(sentry.Middleware())

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}
