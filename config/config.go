package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Primary    PrimaryConfig    `mapstructure:"primary"`
	Secondary  SecondaryConfig  `mapstructure:"secondary"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RateLimit      float64       `mapstructure:"rate_limit"` // requests per second per client IP, 0 disables
	RateBurst      int           `mapstructure:"rate_burst"`
	ShutdownPeriod time.Duration `mapstructure:"shutdown_period"`
}

// IsProduction reports whether the server runs in production
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// PrimaryConfig configures the retail catalog provider
type PrimaryConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	BaseURL      string        `mapstructure:"base_url"`
	APIToken     string        `mapstructure:"api_token"`
	LocationHint string        `mapstructure:"location_hint"`
	PageSize     int           `mapstructure:"page_size"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RetryCount   int           `mapstructure:"retry_count"`
}

// SecondaryConfig configures the reference food database provider
type SecondaryConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	PageSize        int           `mapstructure:"page_size"`
	RequestsPerHour int           `mapstructure:"requests_per_hour"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type      string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL  string        `mapstructure:"redis_url"`
	TTL       time.Duration `mapstructure:"ttl"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// EnrichmentConfig controls background enrichment
type EnrichmentConfig struct {
	StaggerInterval time.Duration `mapstructure:"stagger_interval"`
	BatchSize       int           `mapstructure:"batch_size"`
}

// DatabaseConfig configures the item store. An empty DSN disables it.
type DatabaseConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads config.yaml, an optional .env file and LARDER_* environment
// variables. Environment values win over the file.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/larder/")

	v.SetEnvPrefix("LARDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("server.shutdown_period", "10s")

	v.SetDefault("primary.enabled", true)
	v.SetDefault("primary.base_url", "")
	v.SetDefault("primary.api_token", "")
	v.SetDefault("primary.location_hint", "")
	v.SetDefault("primary.page_size", 5)
	v.SetDefault("primary.timeout", "10s")
	v.SetDefault("primary.retry_count", 2)

	v.SetDefault("secondary.enabled", true)
	v.SetDefault("secondary.api_key", "")
	v.SetDefault("secondary.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("secondary.page_size", 5)
	v.SetDefault("secondary.requests_per_hour", 1000)
	v.SetDefault("secondary.timeout", "10s")

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.key_prefix", "larder")

	v.SetDefault("enrichment.stagger_interval", "300ms")
	v.SetDefault("enrichment.batch_size", 50)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Primary.Enabled {
		if config.Primary.BaseURL == "" {
			return errors.New("primary base URL is required when enabled (set LARDER_PRIMARY_BASE_URL)")
		}
		if config.Primary.PageSize <= 0 {
			return fmt.Errorf("primary page size must be positive, got: %d", config.Primary.PageSize)
		}
	}

	if config.Secondary.Enabled {
		if config.Secondary.APIKey == "" {
			return errors.New("secondary API key is required when enabled (set LARDER_SECONDARY_API_KEY)")
		}
		if config.Secondary.PageSize <= 0 {
			return fmt.Errorf("secondary page size must be positive, got: %d", config.Secondary.PageSize)
		}
	}

	if config.Server.RateLimit < 0 {
		return fmt.Errorf("server rate limit must not be negative, got: %v", config.Server.RateLimit)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return errors.New("redis URL is required when cache type is 'redis'")
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	if config.Enrichment.StaggerInterval <= 0 {
		return fmt.Errorf("enrichment stagger interval must be positive, got: %s", config.Enrichment.StaggerInterval)
	}

	if config.Enrichment.BatchSize <= 0 {
		return fmt.Errorf("enrichment batch size must be positive, got: %d", config.Enrichment.BatchSize)
	}

	return nil
}
