package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Promo     PromoConfig     `mapstructure:"promo"`
	Report    ReportConfig    `mapstructure:"report"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Plan      PlanConfig      `mapstructure:"plan"`
	Queue     QueueConfig     `mapstructure:"queue"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type PromoConfig struct {
	Code           string `mapstructure:"code"`
	MaxAttempts    int    `mapstructure:"max_attempts"`
	DurationDays   int    `mapstructure:"duration_days"`
	WeeklySessions int    `mapstructure:"weekly_sessions"`
}

type ReportConfig struct {
	RateLimitDays int `mapstructure:"rate_limit_days"`
	FollowupDays  int `mapstructure:"followup_days"`
}

type RateLimitConfig struct {
	MaxRequests int `mapstructure:"max_requests"`
	WindowMs    int `mapstructure:"window_ms"`
}

type PlanConfig struct {
	SessionsPerWeek int `mapstructure:"sessions_per_week"`
	DurationMinutes int `mapstructure:"duration_minutes"`
}

type QueueConfig struct {
	FollowupQueue string `mapstructure:"followup_queue"`
	EventChannel  string `mapstructure:"event_channel"`
	MaxWorkers    int    `mapstructure:"max_workers"`
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	// 检查 config.local.yaml 是否存在
	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults 填充未配置项的默认值
func applyDefaults(cfg *Config) {
	if cfg.Promo.Code == "" {
		cfg.Promo.Code = "ELMPARC2FREE"
	}
	if cfg.Promo.MaxAttempts == 0 {
		cfg.Promo.MaxAttempts = 3
	}
	if cfg.Promo.DurationDays == 0 {
		cfg.Promo.DurationDays = 28
	}
	if cfg.Promo.WeeklySessions == 0 {
		cfg.Promo.WeeklySessions = 3
	}
	if cfg.Report.RateLimitDays == 0 {
		cfg.Report.RateLimitDays = 7
	}
	if cfg.Report.FollowupDays == 0 {
		cfg.Report.FollowupDays = 7
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 30
	}
	if cfg.RateLimit.WindowMs == 0 {
		cfg.RateLimit.WindowMs = 60000
	}
	if cfg.Plan.SessionsPerWeek == 0 {
		cfg.Plan.SessionsPerWeek = 2
	}
	if cfg.Plan.DurationMinutes == 0 {
		cfg.Plan.DurationMinutes = 8
	}
	if cfg.Queue.FollowupQueue == "" {
		cfg.Queue.FollowupQueue = "report_followups"
	}
	if cfg.Queue.EventChannel == "" {
		cfg.Queue.EventChannel = "report_events"
	}
	if cfg.Queue.MaxWorkers == 0 {
		cfg.Queue.MaxWorkers = 2
	}
}
