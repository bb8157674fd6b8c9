// Package config はアプリケーション設定を設定ファイル・環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix は環境変数のプレフィックスです（例: TREASURE_SERVER_PORT）。
const EnvPrefix = "TREASURE"

// Describer providers.
const (
	ProviderGemini = "gemini"
	ProviderVision = "vision"
	ProviderOllama = "ollama"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Locale    string          `mapstructure:"locale"`
	Describer DescriberConfig `mapstructure:"describer"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	Image     ImageConfig     `mapstructure:"image"`
	Quota     QuotaConfig     `mapstructure:"quota"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DescriberConfig selects and bounds the vision model.
type DescriberConfig struct {
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// GeminiConfig holds Gemini API configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OllamaConfig holds Ollama server configuration.
type OllamaConfig struct {
	URL   string `mapstructure:"url"`
	Model string `mapstructure:"model"`
}

// ImageConfig holds upload and pre-processing limits.
type ImageConfig struct {
	MaxDimension int `mapstructure:"max_dimension"`
	JPEGQuality  int `mapstructure:"jpeg_quality"`
	MaxSizeMB    int `mapstructure:"max_size_mb"`
}

// MaxSizeBytes returns the upload limit in bytes.
func (c ImageConfig) MaxSizeBytes() int64 {
	return int64(c.MaxSizeMB) * 1024 * 1024
}

// QuotaConfig holds describer usage limits.
type QuotaConfig struct {
	RequestsPerDay    int    `mapstructure:"requests_per_day"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	Timezone          string `mapstructure:"timezone"`
}

// Location returns the timezone the daily quota resets in.
func (c QuotaConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CacheConfig holds describer cache configuration.
type CacheConfig struct {
	TTL       time.Duration `mapstructure:"ttl"`
	Namespace string        `mapstructure:"namespace"`
}

// RedisConfig holds Redis connection configuration. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
}

// DatabaseConfig holds the usage ledger database configuration.
type DatabaseConfig struct {
	Driver         string        `mapstructure:"driver"`
	DSN            string        `mapstructure:"dsn"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/treasure/")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
// Every key needs a default so that AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("locale", "en")

	v.SetDefault("describer.provider", ProviderGemini)
	v.SetDefault("describer.timeout", "30s")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")

	v.SetDefault("ollama.url", "http://localhost:11434")
	v.SetDefault("ollama.model", "llava")

	v.SetDefault("image.max_dimension", 1024)
	v.SetDefault("image.jpeg_quality", 70)
	v.SetDefault("image.max_size_mb", 10)

	// Gemini free tier
	v.SetDefault("quota.requests_per_day", 20)
	v.SetDefault("quota.requests_per_minute", 10)
	v.SetDefault("quota.timezone", "UTC")

	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.namespace", "describe")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "treasure.db")
	v.SetDefault("database.connect_timeout", 30*time.Second)
}

// validate validates the configuration.
func validate(cfg *Config) error {
	switch cfg.Describer.Provider {
	case ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			return fmt.Errorf("gemini API key is required (set %s_GEMINI_API_KEY)", EnvPrefix)
		}
	case ProviderVision, ProviderOllama:
	default:
		return fmt.Errorf("describer provider must be one of gemini, vision, ollama, got: %s", cfg.Describer.Provider)
	}

	if cfg.Locale != "en" && cfg.Locale != "es" {
		return fmt.Errorf("locale must be 'en' or 'es', got: %s", cfg.Locale)
	}

	if cfg.Describer.Timeout <= 0 {
		return fmt.Errorf("describer timeout must be positive, got: %s", cfg.Describer.Timeout)
	}

	if cfg.Image.MaxSizeMB <= 0 {
		return fmt.Errorf("image max size must be positive, got: %d", cfg.Image.MaxSizeMB)
	}

	if cfg.Database.Driver != "sqlite" && cfg.Database.Driver != "postgres" {
		return fmt.Errorf("database driver must be 'sqlite' or 'postgres', got: %s", cfg.Database.Driver)
	}
	return nil
}
