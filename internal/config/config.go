package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// 主配置结构
type Config struct {
	App       App     `yaml:"app"`
	Server    Server  `yaml:"server"`
	Database  DB      `yaml:"database"`
	Cache     Cache   `yaml:"cache"`
	Admin     Admin   `yaml:"admin"`
	Tracking  Track   `yaml:"tracking"`
	RateLimit Limit   `yaml:"rate_limit"`
	Log       Logging `yaml:"log"`
}

// 应用配置
type App struct {
	Name    string `yaml:"name"`
	Mode    string `yaml:"mode"`
	Version string `yaml:"version"`
}

// 服务器配置
type Server struct {
	Port            int `yaml:"port"`
	ReadTimeout     int `yaml:"read_timeout"`
	WriteTimeout    int `yaml:"write_timeout"`
	ShutdownTimeout int `yaml:"shutdown_timeout"`
}

// 数据库配置, Driver 为 mysql 或 sqlite
type DB struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// 缓存配置（Redis）
type Cache struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// 后台 Basic Auth 凭据, 任一为空则后台全部拒绝
type Admin struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// 点击记录配置
type Track struct {
	// IPHashSalt 为空时使用 identity.DefaultSalt, 隐私保护较弱
	IPHashSalt   string `yaml:"ip_hash_salt"`
	Affiliate    string `yaml:"affiliate"`
	WriteTimeout int    `yaml:"write_timeout"` // 秒, 0 表示不额外限制
}

// 限流配置
type Limit struct {
	Enabled   bool     `yaml:"enabled"`
	Requests  int64    `yaml:"requests_per_minute"`
	Burst     int64    `yaml:"burst"`
	SkipPaths []string `yaml:"skip_paths"`
}

// 日志配置
type Logging struct {
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		App:    App{Name: "click-tracker", Mode: "debug", Version: "1.0.0"},
		Server: Server{Port: 8080, ReadTimeout: 10, WriteTimeout: 10, ShutdownTimeout: 10},
		Database: DB{
			Driver:  "sqlite",
			DSN:     "clicks.db",
			Port:    3306,
			Charset: "utf8mb4",
		},
		Tracking: Track{Affiliate: "harold", WriteTimeout: 5},
		RateLimit: Limit{
			Enabled:   false,
			Requests:  600,
			Burst:     100,
			SkipPaths: []string{"/health", "/api/health", "/swagger/"},
		},
		Log: Logging{File: "./logs/app.log", MaxSize: 10, MaxBackups: 5, MaxAge: 30},
	}
}

// 加载配置, 文件不存在时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

// 环境变量覆盖, 密钥类配置通常只通过环境变量下发
func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString("APP_MODE", &cfg.App.Mode)
	setString("ADMIN_USER", &cfg.Admin.User)
	setString("ADMIN_PASS", &cfg.Admin.Password)
	setString("IP_HASH_SALT", &cfg.Tracking.IPHashSalt)
	setString("DATABASE_DRIVER", &cfg.Database.Driver)
	setString("DATABASE_DSN", &cfg.Database.DSN)
	setString("REDIS_HOST", &cfg.Cache.Host)
	setString("REDIS_PASSWORD", &cfg.Cache.Password)

	if v, ok := os.LookupEnv("SERVER_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
