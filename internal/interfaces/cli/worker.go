package cli

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dealbridge/dealbridge/internal/application/events"
	"github.com/dealbridge/dealbridge/internal/infrastructure/database/postgres"
	"github.com/dealbridge/dealbridge/internal/infrastructure/database/postgres/repositories"
	"github.com/dealbridge/dealbridge/internal/infrastructure/messaging/kafka"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/prometheus"
)

func newWorkerCommand(opts *rootOptions) *cobra.Command {
	var metricsPort int

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the marketplace event worker",
		Long:  "The worker consumes marketplace events and keeps cached match scores\nand valuations consistent: cache invalidation plus stale-score sweeps.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info("starting dealbridge worker",
				logging.String("version", Version),
				logging.String("group", cfg.Kafka.GroupID))

			collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
				Namespace:            "dealbridge",
				Subsystem:            "worker",
				EnableProcessMetrics: true,
			}, log)
			if err != nil {
				return fmt.Errorf("init metrics: %w", err)
			}
			metrics := prometheus.NewAppMetrics(collector)

			conn, err := postgres.NewConnection(cfg.Database, log)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer conn.Close()

			store, redisClient, err := buildCacheStore(cfg, log)
			if err != nil {
				return err
			}
			if redisClient != nil {
				defer redisClient.Close()
			}

			consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
				Brokers:         cfg.Kafka.Brokers,
				GroupID:         cfg.Kafka.GroupID,
				Topics:          []string{cfg.Kafka.EventsTopic},
				AutoOffsetReset: cfg.Kafka.AutoOffsetReset,
				MaxRetries:      cfg.Kafka.MaxRetries,
				RetryBackoff:    cfg.Kafka.RetryBackoff,
			}, log)
			if err != nil {
				return fmt.Errorf("init kafka consumer: %w", err)
			}
			defer consumer.Close()

			scores := repositories.NewScoreRepo(conn, log)
			handler := events.NewHandler(store, scores, metrics, log.Named("events"))

			consumer.Subscribe(cfg.Kafka.EventsTopic, handler.Handle)
			if err := consumer.Start(ctx); err != nil {
				return fmt.Errorf("start consumer: %w", err)
			}

			// Expose /metrics on a side port; the worker has no API surface.
			if metricsPort > 0 {
				go func() {
					mux := http.NewServeMux()
					mux.Handle("/metrics", collector.Handler())
					addr := fmt.Sprintf(":%d", metricsPort)
					if err := http.ListenAndServe(addr, mux); err != nil {
						log.Warn("metrics listener stopped", logging.Err(err))
					}
				}()
			}

			<-ctx.Done()
			log.Info("shutdown signal received")
			return consumer.Close()
		},
	}

	cmd.Flags().IntVar(&metricsPort, "metrics-port", 9091, "port for the worker /metrics endpoint (0 disables)")
	return cmd
}
