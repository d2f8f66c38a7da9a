package database

import (
	"context"
	"idea-incubation-system/config"
	"idea-incubation-system/tools"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// InitRedis 初始化全局 Redis 客户端，用于统计缓存
func InitRedis() {
	cfg := config.Get().Redis
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	tools.PanicOnErr(RDB.Ping(context.Background()).Err())
}
