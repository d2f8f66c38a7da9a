package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host       string `envconfig:"HOST"`
	Port       string `envconfig:"PORT"`
	Domain     string `envconfig:"DOMAIN"`
	Prefix     string `envconfig:"PREFIX"`
	Mode       Mode   `envconfig:"MODE"`
	Mysql      Mysql
	Redis      Redis
	JWT        JWT
	Log        Log `mapstructure:"Log"`
	Sentry     Sentry
	S3         S3
	Notify     Notify
	Incubation Incubation
}

type Mysql struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
}

type Redis struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE"`
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string  `envconfig:"SENTRY_DSN" mapstructure:"dsn"`
	Environment string  `envconfig:"SENTRY_ENVIRONMENT" mapstructure:"environment"`
	SampleRate  float64 `envconfig:"SENTRY_SAMPLE_RATE" mapstructure:"sample_rate"`
}

type S3 struct {
	Endpoint        string `mapstructure:"endpoint"`
	BaseURL         string `mapstructure:"base_url"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKey       string `mapstructure:"access_key"`
	SecretAccessKey string `mapstructure:"secret_key"`
	Prefix          string `mapstructure:"prefix"`
	UsePathStyle    bool   `mapstructure:"path_style"`
}

// Notify 通知推送配置，选中/驳回/拨款等节点通过 webhook 推送给站内信服务
type Notify struct {
	WebhookURL string `envconfig:"NOTIFY_WEBHOOK_URL" mapstructure:"webhook_url"`
	Timeout    int64  `envconfig:"NOTIFY_TIMEOUT" mapstructure:"timeout"` // 超时时间（秒）
}

// Incubation 孵化业务配置
type Incubation struct {
	PrimarySuperAdmin string   `envconfig:"PRIMARY_SUPER_ADMIN" mapstructure:"primary_super_admin"` // 主超级管理员 UID，其角色不可被任何人修改
	Mentors           []string `mapstructure:"mentors"`                                             // 导师名单，分配导师只能从该名单中选择
}
