package config

import "time"

// Default value constants
const (
	DefaultServerPort = 8080
	DefaultServerMode = "release"

	DefaultDBHost         = "localhost"
	DefaultDBPort         = 5432
	DefaultDBName         = "dealbridge"
	DefaultDBMaxOpenConns = 25
	DefaultDBMaxIdleConns = 10

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "dealbridge:"

	DefaultCacheBackend = "memory"
	DefaultMatchTTL     = time.Hour
	DefaultValuationTTL = 24 * time.Hour

	DefaultKafkaBroker      = "localhost:9092"
	DefaultKafkaGroupID     = "dealbridge-workers"
	DefaultKafkaEventsTopic = "marketplace.events"
	DefaultKafkaScoresTopic = "marketplace.scores"

	DefaultBatchConcurrency     = 8
	DefaultMaxBatchSize         = 200
	DefaultBudgetFlexibilityPct = 0.1

	DefaultValuationValidityDays = 90

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the platform
// default.  Fields already set by the caller (non-zero values) are left
// unchanged so explicit configuration always wins.  Must be called after
// unmarshalling and before Validate() so optional-but-defaulted fields are
// never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}

	// ── Database ──────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "dealbridge"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = DefaultDBMaxOpenConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = DefaultDBMaxIdleConns
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = "migrations"
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	// Redis.DB is an int; 0 is a valid explicit value and also the default, so
	// it is left as-is.

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCacheBackend
	}
	if cfg.Cache.MatchTTL == 0 {
		cfg.Cache.MatchTTL = DefaultMatchTTL
	}
	if cfg.Cache.ValuationTTL == 0 {
		cfg.Cache.ValuationTTL = DefaultValuationTTL
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.EventsTopic == "" {
		cfg.Kafka.EventsTopic = DefaultKafkaEventsTopic
	}
	if cfg.Kafka.ScoresTopic == "" {
		cfg.Kafka.ScoresTopic = DefaultKafkaScoresTopic
	}
	if cfg.Kafka.AutoOffsetReset == "" {
		cfg.Kafka.AutoOffsetReset = "earliest"
	}
	if cfg.Kafka.MaxRetries == 0 {
		cfg.Kafka.MaxRetries = 3
	}
	if cfg.Kafka.RetryBackoff == 0 {
		cfg.Kafka.RetryBackoff = time.Second
	}

	// ── Matching ──────────────────────────────────────────────────────────────
	if cfg.Matching.BatchConcurrency == 0 {
		cfg.Matching.BatchConcurrency = DefaultBatchConcurrency
	}
	if cfg.Matching.MaxBatchSize == 0 {
		cfg.Matching.MaxBatchSize = DefaultMaxBatchSize
	}
	if cfg.Matching.BudgetFlexibilityPct == 0 {
		cfg.Matching.BudgetFlexibilityPct = DefaultBudgetFlexibilityPct
	}

	// ── Valuation ─────────────────────────────────────────────────────────────
	if cfg.Valuation.ValidityDays == 0 {
		cfg.Valuation.ValidityDays = DefaultValuationValidityDays
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
