package config

import (
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	instance *Config
	once     sync.Once
)

// Init 加载配置：先读 config.yaml，再用环境变量覆盖
func Init() {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		cfg := &Config{}

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				log.Fatalf("读取配置文件失败: %v", err)
			}
			// 没有配置文件时只依赖环境变量
		} else if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("解析配置文件失败: %v", err)
		}

		if err := envconfig.Process("", cfg); err != nil {
			log.Fatalf("读取环境变量配置失败: %v", err)
		}

		if cfg.Host == "" {
			cfg.Host = "0.0.0.0"
		}
		if cfg.Port == "" {
			cfg.Port = "8080"
		}
		if cfg.Mode == "" {
			cfg.Mode = ModeDebug
		}
		cfg.Prefix = strings.Trim(cfg.Prefix, "/")

		instance = cfg
	})
}

// Get 获取全局配置，必须先调用 Init
func Get() *Config {
	if instance == nil {
		Init()
	}
	return instance
}
