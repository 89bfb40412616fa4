// Package matching provides the application-level service for match scoring.
// It sits between the HTTP handlers and the domain engine, adding caching,
// persistence, batching and event publication.
package matching

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dealbridge/dealbridge/internal/cache"
	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/domain/listing"
	"github.com/dealbridge/dealbridge/internal/domain/matching"
	"github.com/dealbridge/dealbridge/internal/infrastructure/messaging/kafka"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, msg *common.ProducerMessage) error
}

// Service defines match-scoring application operations.
type Service interface {
	Score(ctx context.Context, input *ScoreInput) (*matching.ScoreDetails, error)
	ScoreBatch(ctx context.Context, input *BatchScoreInput) (*BatchScoreResult, error)
	Enrich(ctx context.Context, input *EnrichInput) (*matching.Enrichment, error)
	ListScores(ctx context.Context, buyerID string, page common.Pagination) ([]*matching.Score, error)
}

// ScoreInput identifies the pair to score plus optional per-call overrides.
type ScoreInput struct {
	BuyerID     string
	ListingID   string
	Preferences *buyer.Preferences
	Weights     *matching.WeightOverrides
	BypassCache bool
}

// BatchScoreInput scores one buyer against many listings.
type BatchScoreInput struct {
	BuyerID     string
	ListingIDs  []string
	Preferences *buyer.Preferences
	Weights     *matching.WeightOverrides
}

// BatchScoreItem is one listing's outcome inside a batch.
type BatchScoreItem struct {
	ListingID string                 `json:"listingId"`
	Details   *matching.ScoreDetails `json:"details,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// BatchScoreResult is the full batch outcome, ordered by total score.
type BatchScoreResult struct {
	Items   []BatchScoreItem `json:"items"`
	Scored  int              `json:"scored"`
	Failed  int              `json:"failed"`
	Missing []string         `json:"missing,omitempty"`
}

// EnrichInput identifies the pair to enrich.
type EnrichInput struct {
	BuyerID   string
	ListingID string
}

// Config holds service tunables resolved from the application config.
type Config struct {
	MatchTTL         time.Duration
	BatchConcurrency int
	MaxBatchSize     int
	ScoresTopic      string
}

type service struct {
	listings listing.Repository
	buyers   buyer.Repository
	scores   matching.ScoreRepository
	engine   *matching.Engine
	store    cache.Store
	events   EventPublisher
	metrics  *prometheus.AppMetrics
	log      logging.Logger
	cfg      Config
}

// NewService wires the match-scoring service.  events and metrics may be nil;
// the service then skips publication and instrumentation.
func NewService(
	listings listing.Repository,
	buyers buyer.Repository,
	scores matching.ScoreRepository,
	engine *matching.Engine,
	store cache.Store,
	events EventPublisher,
	metrics *prometheus.AppMetrics,
	log logging.Logger,
	cfg Config,
) Service {
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = 8
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 100
	}
	return &service{
		listings: listings,
		buyers:   buyers,
		scores:   scores,
		engine:   engine,
		store:    store,
		events:   events,
		metrics:  metrics,
		log:      log,
		cfg:      cfg,
	}
}

// cacheable reports whether the input computes the stored-profile default
// score.  Calls with per-call preferences or weight overrides produce
// results specific to that call and never touch the cache.
func (s *service) cacheable(input *ScoreInput) bool {
	return !input.BypassCache && input.Preferences == nil && input.Weights == nil
}

func (s *service) Score(ctx context.Context, input *ScoreInput) (*matching.ScoreDetails, error) {
	start := time.Now()
	key := cache.MatchKey(input.BuyerID, input.ListingID)

	if s.cacheable(input) {
		var cached matching.ScoreDetails
		err := s.store.Get(ctx, key, &cached)
		if err == nil {
			s.recordCacheAccess("matches", true)
			return &cached, nil
		}
		if !apperrors.IsCode(err, apperrors.ErrCodeCacheMiss) {
			s.log.Warn("match cache read failed", logging.Err(err))
		}
		s.recordCacheAccess("matches", false)
	}

	profile, err := s.buyers.GetByID(ctx, common.ID(input.BuyerID))
	if err != nil {
		return nil, err
	}
	l, err := s.listings.GetByID(ctx, common.ID(input.ListingID))
	if err != nil {
		return nil, err
	}

	details := s.engine.CalculateScore(l, *profile, input.Preferences, input.Weights)
	if s.metrics != nil {
		prometheus.RecordScore(s.metrics, "api", details.TotalScore, time.Since(start), nil)
	}

	if s.cacheable(input) {
		s.persistAndCache(ctx, input.BuyerID, input.ListingID, key, details)
	}
	return details, nil
}

// persistAndCache stores the default score and publishes the computed event.
// All three are best effort: a failure is logged, never surfaced, because
// the caller already has the score.
func (s *service) persistAndCache(ctx context.Context, buyerID, listingID, key string, details *matching.ScoreDetails) {
	score := &matching.Score{
		BuyerID:   common.ID(buyerID),
		ListingID: common.ID(listingID),
		Details:   *details,
	}
	if err := s.scores.Upsert(ctx, score); err != nil {
		s.log.Warn("match score persist failed",
			logging.String("buyer_id", buyerID),
			logging.String("listing_id", listingID),
			logging.Err(err))
	}

	if err := s.store.Set(ctx, key, details, s.cfg.MatchTTL); err != nil {
		s.log.Warn("match cache write failed", logging.Err(err))
	}

	s.publishScoreComputed(ctx, buyerID, listingID, details)
}

func (s *service) publishScoreComputed(ctx context.Context, buyerID, listingID string, details *matching.ScoreDetails) {
	if s.events == nil || s.cfg.ScoresTopic == "" {
		return
	}
	env, err := kafka.NewEventEnvelope(kafka.EventTypeScoreComputed, "matching", kafka.ScoreComputedPayload{
		BuyerID:    buyerID,
		ListingID:  listingID,
		TotalScore: details.TotalScore,
		Confidence: details.Confidence,
		ComputedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("score event build failed", logging.Err(err))
		return
	}
	msg, err := env.ToMessage(s.cfg.ScoresTopic, buyerID)
	if err != nil {
		s.log.Warn("score event encode failed", logging.Err(err))
		return
	}
	if err := s.events.Publish(ctx, msg); err != nil {
		s.log.Warn("score event publish failed", logging.Err(err))
	}
}

func (s *service) ScoreBatch(ctx context.Context, input *BatchScoreInput) (*BatchScoreResult, error) {
	if len(input.ListingIDs) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "listing ids required")
	}
	if len(input.ListingIDs) > s.cfg.MaxBatchSize {
		return nil, apperrors.New(apperrors.ErrCodeMatchBatchTooLarge, "batch scoring request too large").
			WithDetail("max batch size exceeded")
	}

	profile, err := s.buyers.GetByID(ctx, common.ID(input.BuyerID))
	if err != nil {
		return nil, err
	}

	ids := make([]common.ID, len(input.ListingIDs))
	for i, id := range input.ListingIDs {
		ids[i] = common.ID(id)
	}
	listings, err := s.listings.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	found := make(map[string]*listing.Listing, len(listings))
	for _, l := range listings {
		found[l.ID.String()] = l
	}

	result := &BatchScoreResult{}
	for _, id := range input.ListingIDs {
		if _, ok := found[id]; !ok {
			result.Missing = append(result.Missing, id)
		}
	}

	if s.metrics != nil {
		s.metrics.BatchScoreSize.WithLabelValues("api").Observe(float64(len(input.ListingIDs)))
	}

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		sem   = make(chan struct{}, s.cfg.BatchConcurrency)
		items = make([]BatchScoreItem, 0, len(listings))
	)
	for _, l := range listings {
		l := l
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			details := s.engine.CalculateScore(l, *profile, input.Preferences, input.Weights)
			mu.Lock()
			items = append(items, BatchScoreItem{ListingID: l.ID.String(), Details: details})
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(items, func(i, j int) bool {
		return items[i].Details.TotalScore > items[j].Details.TotalScore
	})
	result.Items = items
	result.Scored = len(items)
	return result, nil
}

// Enrich computes the heuristic deal-fit assessment.  Enrichment output is
// advisory and derived from the live listing, so it is never cached.
func (s *service) Enrich(ctx context.Context, input *EnrichInput) (*matching.Enrichment, error) {
	profile, err := s.buyers.GetByID(ctx, common.ID(input.BuyerID))
	if err != nil {
		return nil, err
	}
	l, err := s.listings.GetByID(ctx, common.ID(input.ListingID))
	if err != nil {
		return nil, err
	}

	enrichment := s.engine.HeuristicEnrichment(l, *profile)
	if s.metrics != nil {
		s.metrics.EnrichmentsTotal.WithLabelValues("success").Inc()
	}
	return enrichment, nil
}

func (s *service) ListScores(ctx context.Context, buyerID string, page common.Pagination) ([]*matching.Score, error) {
	if page.PageSize <= 0 {
		page.PageSize = 20
	}
	return s.scores.ListByBuyer(ctx, common.ID(buyerID), page)
}

func (s *service) recordCacheAccess(name string, hit bool) {
	if s.metrics != nil {
		prometheus.RecordCacheAccess(s.metrics, name, hit)
	}
}
