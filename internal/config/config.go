package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	AI     AIConfig     `mapstructure:"ai"`
	Engine EngineConfig `mapstructure:"engine"`
	Log    LogConfig    `mapstructure:"log"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig AI 服务配置
type AIConfig struct {
	Provider string          `mapstructure:"provider"`
	APIKey   string          `mapstructure:"api_key"`
	BaseURL  string          `mapstructure:"base_url"`
	Models   ModelsConfig    `mapstructure:"models"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// ModelsConfig 分类模型档位配置
type ModelsConfig struct {
	Primary  string                `mapstructure:"primary"`  // 默认主模型
	Fallback string                `mapstructure:"fallback"` // 默认备用模型
	Language map[string]TierConfig `mapstructure:"language"` // 语言专用档位（键为ISO 639-1语言码）
}

// TierConfig 单个语言的模型档位
type TierConfig struct {
	Primary  string `mapstructure:"primary"`
	Fallback string `mapstructure:"fallback"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// EngineConfig 分析引擎配置
type EngineConfig struct {
	MaxScenes       int           `mapstructure:"max_scenes"`       // 单篇文档最大场景数
	PacingInterval  time.Duration `mapstructure:"pacing_interval"`  // 外部分类调用之间的最小间隔
	ClassifyTimeout time.Duration `mapstructure:"classify_timeout"` // 单次外部分类调用超时
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`        // 分类结果缓存有效期
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if c.Engine.MaxScenes < 0 {
		return errors.New("engine.max_scenes must not be negative")
	}

	return nil
}
