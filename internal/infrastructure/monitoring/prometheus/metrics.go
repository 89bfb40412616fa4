package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric the platform emits.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Match scoring
	ScoresComputedTotal CounterVec
	ScoreDuration       HistogramVec
	ScoreDistribution   HistogramVec
	BatchScoreSize      HistogramVec
	EnrichmentsTotal    CounterVec

	// Valuation
	ValuationsTotal     CounterVec
	ValuationDuration   HistogramVec
	ValuationConfidence HistogramVec

	// Cache
	CacheHitsTotal     CounterVec
	CacheMissesTotal   CounterVec
	CacheInvalidations CounterVec

	// Infrastructure
	DBPoolActive         GaugeVec
	DBQueryDuration      HistogramVec
	ConsumerLag          GaugeVec
	EventsProcessedTotal CounterVec

	// Errors
	ErrorsTotal CounterVec
}

var (
	httpDurationBuckets    = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	computeDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}
	dbDurationBuckets      = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
	scoreBuckets           = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	batchSizeBuckets       = []float64{1, 5, 10, 25, 50, 100, 250, 500}
)

// NewAppMetrics registers the full metric set on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", httpDurationBuckets, "method", "path"),
		HTTPActiveRequests:  collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method"),

		ScoresComputedTotal: collector.RegisterCounter("match_scores_computed_total", "Match scores computed", "source", "status"),
		ScoreDuration:       collector.RegisterHistogram("match_score_duration_seconds", "Single score computation duration", computeDurationBuckets, "source"),
		ScoreDistribution:   collector.RegisterHistogram("match_score_value", "Distribution of computed total scores", scoreBuckets, "source"),
		BatchScoreSize:      collector.RegisterHistogram("match_batch_size", "Listings per batch scoring request", batchSizeBuckets, "source"),
		EnrichmentsTotal:    collector.RegisterCounter("match_enrichments_total", "Heuristic enrichments computed", "status"),

		ValuationsTotal:     collector.RegisterCounter("valuations_total", "Valuations computed", "source", "status"),
		ValuationDuration:   collector.RegisterHistogram("valuation_duration_seconds", "Valuation computation duration", computeDurationBuckets, "source"),
		ValuationConfidence: collector.RegisterHistogram("valuation_confidence", "Distribution of valuation confidence scores", scoreBuckets, "source"),

		CacheHitsTotal:     collector.RegisterCounter("cache_hits_total", "Cache hits", "cache"),
		CacheMissesTotal:   collector.RegisterCounter("cache_misses_total", "Cache misses", "cache"),
		CacheInvalidations: collector.RegisterCounter("cache_invalidations_total", "Entries invalidated", "event"),

		DBPoolActive:         collector.RegisterGauge("db_pool_active", "Active database connections", "db"),
		DBQueryDuration:      collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", dbDurationBuckets, "db", "operation"),
		ConsumerLag:          collector.RegisterGauge("consumer_lag", "Kafka consumer lag", "topic"),
		EventsProcessedTotal: collector.RegisterCounter("events_processed_total", "Marketplace events processed", "event_type", "status"),

		ErrorsTotal: collector.RegisterCounter("errors_total", "Total errors", "component", "code"),
	}
}

// RecordHTTPRequest records the standard per-request metric pair.
func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordScore records one computed match score.
func RecordScore(m *AppMetrics, source string, totalScore int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.ScoresComputedTotal.WithLabelValues(source, status).Inc()
	if err == nil {
		m.ScoreDuration.WithLabelValues(source).Observe(duration.Seconds())
		m.ScoreDistribution.WithLabelValues(source).Observe(float64(totalScore))
	}
}

// RecordValuation records one computed valuation.
func RecordValuation(m *AppMetrics, source string, confidence int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.ValuationsTotal.WithLabelValues(source, status).Inc()
	if err == nil {
		m.ValuationDuration.WithLabelValues(source).Observe(duration.Seconds())
		m.ValuationConfidence.WithLabelValues(source).Observe(float64(confidence))
	}
}

// RecordCacheAccess records a hit or miss against the named cache.
func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}
