// Package config defines all configuration structures for the dealbridge
// platform.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// RedisConfig holds Redis connection parameters for the shared result cache.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// CacheConfig holds result-cache behaviour parameters.
type CacheConfig struct {
	// Backend selects the Store implementation: "memory" (single process) or
	// "redis" (shared across instances).
	Backend string `mapstructure:"backend"`

	// MatchTTL is how long a computed match score stays valid in the cache.
	MatchTTL time.Duration `mapstructure:"match_ttl"`

	// ValuationTTL is how long a valuation result stays cached.
	ValuationTTL time.Duration `mapstructure:"valuation_ttl"`
}

// KafkaConfig holds marketplace-event consumer/producer parameters.
type KafkaConfig struct {
	Brokers         []string      `mapstructure:"brokers"`
	GroupID         string        `mapstructure:"group_id"`
	EventsTopic     string        `mapstructure:"events_topic"`
	ScoresTopic     string        `mapstructure:"scores_topic"`
	AutoOffsetReset string        `mapstructure:"auto_offset_reset"` // "earliest" | "latest"
	MaxRetries      int           `mapstructure:"max_retries"`
	RetryBackoff    time.Duration `mapstructure:"retry_backoff"`
}

// MatchingConfig holds scoring-engine tunables.
type MatchingConfig struct {
	// BatchConcurrency bounds the goroutine fan-out when scoring one buyer
	// against many listings.
	BatchConcurrency int `mapstructure:"batch_concurrency"`

	// MaxBatchSize caps the number of listings accepted in one batch request.
	MaxBatchSize int `mapstructure:"max_batch_size"`

	// BudgetFlexibilityPct widens the buyer's strict budget range before a
	// listing price is considered out of budget.  Expressed as a fraction
	// (0.1 = 10%).
	BudgetFlexibilityPct float64 `mapstructure:"budget_flexibility_pct"`
}

// ValuationConfig holds valuation-engine tunables.
type ValuationConfig struct {
	// ValidityDays is how long a ValuationResult is advertised as valid.
	// Advisory metadata only; nothing expires server-side.
	ValidityDays int `mapstructure:"validity_days"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string   `mapstructure:"format"` // "json" | "console"
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Config is the root configuration structure for the entire platform.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Valuation ValuationConfig `mapstructure:"valuation"`
	Log       LogConfig       `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("config: database.port %d is out of range [1, 65535]", c.Database.Port)
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.db_name is required")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("config: database.max_open_conns must be ≥ 1, got %d", c.Database.MaxOpenConns)
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: cache.backend %q is invalid; expected memory|redis", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when cache.backend is redis")
	}
	if c.Cache.MatchTTL <= 0 {
		return fmt.Errorf("config: cache.match_ttl must be positive, got %s", c.Cache.MatchTTL)
	}

	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
	}
	if c.Kafka.GroupID == "" {
		return fmt.Errorf("config: kafka.group_id is required")
	}

	if c.Matching.BatchConcurrency < 1 {
		return fmt.Errorf("config: matching.batch_concurrency must be ≥ 1, got %d", c.Matching.BatchConcurrency)
	}
	if c.Matching.MaxBatchSize < 1 {
		return fmt.Errorf("config: matching.max_batch_size must be ≥ 1, got %d", c.Matching.MaxBatchSize)
	}
	if c.Matching.BudgetFlexibilityPct < 0 || c.Matching.BudgetFlexibilityPct > 1 {
		return fmt.Errorf("config: matching.budget_flexibility_pct %.2f is out of range [0, 1]", c.Matching.BudgetFlexibilityPct)
	}

	if c.Valuation.ValidityDays < 1 {
		return fmt.Errorf("config: valuation.validity_days must be ≥ 1, got %d", c.Valuation.ValidityDays)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
