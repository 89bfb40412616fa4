package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	appmatching "github.com/dealbridge/dealbridge/internal/application/matching"
	appvaluation "github.com/dealbridge/dealbridge/internal/application/valuation"
	"github.com/dealbridge/dealbridge/internal/cache"
	"github.com/dealbridge/dealbridge/internal/config"
	"github.com/dealbridge/dealbridge/internal/domain/matching"
	"github.com/dealbridge/dealbridge/internal/domain/valuation"
	"github.com/dealbridge/dealbridge/internal/infrastructure/database/postgres"
	"github.com/dealbridge/dealbridge/internal/infrastructure/database/postgres/repositories"
	"github.com/dealbridge/dealbridge/internal/infrastructure/messaging/kafka"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/dealbridge/dealbridge/internal/interfaces/http"
	"github.com/dealbridge/dealbridge/internal/interfaces/http/handlers"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var runMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dealbridge API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(opts)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, log, runMigrations)
		},
	}

	cmd.Flags().BoolVar(&runMigrations, "migrate", false, "apply pending schema migrations before serving")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, log logging.Logger, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting dealbridge API server",
		logging.String("version", Version),
		logging.Int("port", cfg.Server.Port))

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "dealbridge",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, log)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	metrics := prometheus.NewAppMetrics(collector)

	if migrate {
		if err := postgres.RunMigrations(postgres.BuildDSN(cfg.Database), cfg.Database.MigrationPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		log.Info("schema migrations applied")
	}

	conn, err := postgres.NewConnection(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close()
	go samplePoolStats(ctx, conn, metrics)

	store, redisClient, err := buildCacheStore(cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		}, log)
		if err != nil {
			return fmt.Errorf("init kafka producer: %w", err)
		}
		defer producer.Close()
	} else {
		log.Warn("no kafka brokers configured, event publication disabled")
	}

	listings := repositories.NewListingRepo(conn, log)
	buyers := repositories.NewBuyerRepo(conn, log)
	scores := repositories.NewScoreRepo(conn, log)
	valuations := repositories.NewValuationRepo(conn, log)

	matchEngine := matching.NewEngine(
		matching.WithBudgetFlexibility(cfg.Matching.BudgetFlexibilityPct),
	)
	valuationEngine := valuation.NewEngine(
		valuation.WithValidityDays(cfg.Valuation.ValidityDays),
	)

	// The producer is passed through a nil-safe indirection: a typed-nil
	// *kafka.Producer inside a non-nil interface would bypass the services'
	// nil checks.
	var events appmatching.EventPublisher
	if producer != nil {
		events = producer
	}

	matchService := appmatching.NewService(listings, buyers, scores, matchEngine, store, events, metrics, log.Named("matching"), appmatching.Config{
		MatchTTL:         cfg.Cache.MatchTTL,
		BatchConcurrency: cfg.Matching.BatchConcurrency,
		MaxBatchSize:     cfg.Matching.MaxBatchSize,
		ScoresTopic:      cfg.Kafka.ScoresTopic,
	})

	var valuationEvents appvaluation.EventPublisher
	if producer != nil {
		valuationEvents = producer
	}
	valuationService := appvaluation.NewService(valuations, valuationEngine, store, valuationEvents, metrics, log.Named("valuation"), appvaluation.Config{
		ValuationTTL: cfg.Cache.ValuationTTL,
		EventsTopic:  cfg.Kafka.EventsTopic,
	})

	var handlerEvents handlers.EventPublisher
	if producer != nil {
		handlerEvents = producer
	}

	healthChecks := map[string]handlers.HealthChecker{
		"postgres": conn,
	}
	if redisClient != nil {
		healthChecks["redis"] = handlers.HealthCheckerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Mode:       cfg.Server.Mode,
		Logger:     log.Named("http"),
		Metrics:    metrics,
		Collector:  collector,
		Matches:    handlers.NewMatchHandler(matchService),
		Valuations: handlers.NewValuationHandler(valuationService),
		Industries: handlers.NewIndustryHandler(),
		Listings:   handlers.NewListingHandler(listings, handlerEvents, log.Named("listings"), cfg.Kafka.EventsTopic),
		Buyers:     handlers.NewBuyerHandler(buyers, handlerEvents, log.Named("buyers"), cfg.Kafka.EventsTopic),
		Health:     handlers.NewHealthHandler(healthChecks),
	})

	srv := httpserver.NewServer(cfg.Server, router, log.Named("http"))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	return srv.Stop(context.Background())
}

// buildCacheStore picks the configured cache backend.  The redis client is
// returned separately so the caller can close it and wire a health check.
func buildCacheStore(cfg *config.Config, log logging.Logger) (cache.Store, *redis.Client, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		log.Info("using in-process result cache")
		return cache.NewMemoryStore(), nil, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		log.Info("using redis result cache", logging.String("addr", cfg.Redis.Addr))
		return cache.NewRedisStore(client, cfg.Redis.KeyPrefix), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// samplePoolStats feeds the connection-pool gauge every 15s.
func samplePoolStats(ctx context.Context, conn *postgres.Connection, metrics *prometheus.AppMetrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.DBPoolActive.WithLabelValues("postgres").Set(float64(conn.DB().Stats().InUse))
		}
	}
}
