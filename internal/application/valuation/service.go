// Package valuation provides the application-level service for business
// valuations: input-fingerprint caching, persistence and event publication
// around the domain engine.
package valuation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/dealbridge/dealbridge/internal/cache"
	"github.com/dealbridge/dealbridge/internal/domain/valuation"
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

// Service defines valuation application operations.
type Service interface {
	Calculate(ctx context.Context, input *CalculateInput) (*valuation.Result, error)
	Get(ctx context.Context, id string) (*valuation.Record, error)
	ListByListing(ctx context.Context, listingID string) ([]*valuation.Record, error)
	ListByUser(ctx context.Context, userID string, page common.Pagination) ([]*valuation.Record, error)
}

// CalculateInput carries the wizard data plus the requesting identity.
type CalculateInput struct {
	UserID      string
	ListingID   string // optional: valuations may be run before listing
	Data        valuation.StepData
	BypassCache bool
	Persist     bool
}

// Config holds service tunables resolved from the application config.
type Config struct {
	ValuationTTL time.Duration
	EventsTopic  string
}

type service struct {
	records valuation.Repository
	engine  *valuation.Engine
	store   cache.Store
	events  EventPublisher
	metrics *prometheus.AppMetrics
	log     logging.Logger
	cfg     Config
}

// NewService wires the valuation service.  events and metrics may be nil.
func NewService(
	records valuation.Repository,
	engine *valuation.Engine,
	store cache.Store,
	events EventPublisher,
	metrics *prometheus.AppMetrics,
	log logging.Logger,
	cfg Config,
) Service {
	return &service{
		records: records,
		engine:  engine,
		store:   store,
		events:  events,
		metrics: metrics,
		log:     log,
		cfg:     cfg,
	}
}

// fingerprint derives a stable cache key from the valuation inputs.  Two
// identical wizards produce identical JSON, so identical fingerprints.
func fingerprint(data *valuation.StepData) string {
	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func (s *service) Calculate(ctx context.Context, input *CalculateInput) (*valuation.Result, error) {
	if input.Data.Sector == "" {
		return nil, apperrors.New(apperrors.ErrCodeValuationDataInsufficient, "sector is required")
	}

	start := time.Now()
	fp := fingerprint(&input.Data)
	key := cache.ValuationKey(fp)

	if !input.BypassCache && fp != "" {
		var cached valuation.Result
		err := s.store.Get(ctx, key, &cached)
		if err == nil {
			s.recordCacheAccess(true)
			return &cached, nil
		}
		if !apperrors.IsCode(err, apperrors.ErrCodeCacheMiss) {
			s.log.Warn("valuation cache read failed", logging.Err(err))
		}
		s.recordCacheAccess(false)
	}

	result := s.engine.Calculate(&input.Data)
	if s.metrics != nil {
		prometheus.RecordValuation(s.metrics, "api", result.ValuationRange.Confidence, time.Since(start), nil)
	}

	if fp != "" {
		if err := s.store.Set(ctx, key, result, s.cfg.ValuationTTL); err != nil {
			s.log.Warn("valuation cache write failed", logging.Err(err))
		}
	}

	if input.Persist {
		rec := &valuation.Record{
			UserID: common.ID(input.UserID),
			Data:   input.Data,
			Result: *result,
		}
		if input.ListingID != "" {
			id := common.ID(input.ListingID)
			rec.ListingID = &id
		}
		if err := s.records.Create(ctx, rec); err != nil {
			s.log.Warn("valuation persist failed", logging.Err(err))
		} else {
			s.publishValuationUpdated(ctx, rec, result)
		}
	}
	return result, nil
}

func (s *service) publishValuationUpdated(ctx context.Context, rec *valuation.Record, result *valuation.Result) {
	if s.events == nil || s.cfg.EventsTopic == "" {
		return
	}
	payload := kafka.ValuationUpdatedPayload{
		ValuationID:  rec.ID.String(),
		TypicalValue: result.ValuationRange.Typical,
		Confidence:   result.ValuationRange.Confidence,
		CalculatedAt: result.CalculatedAt,
	}
	if rec.ListingID != nil {
		payload.ListingID = rec.ListingID.String()
	}

	env, err := kafka.NewEventEnvelope(kafka.EventTypeValuationUpdated, "valuation", payload)
	if err != nil {
		s.log.Warn("valuation event build failed", logging.Err(err))
		return
	}
	msg, err := env.ToMessage(s.cfg.EventsTopic, rec.ID.String())
	if err != nil {
		s.log.Warn("valuation event encode failed", logging.Err(err))
		return
	}
	if err := s.events.Publish(ctx, msg); err != nil {
		s.log.Warn("valuation event publish failed", logging.Err(err))
	}
}

func (s *service) Get(ctx context.Context, id string) (*valuation.Record, error) {
	return s.records.GetByID(ctx, common.ID(id))
}

func (s *service) ListByListing(ctx context.Context, listingID string) ([]*valuation.Record, error) {
	return s.records.ListByListing(ctx, common.ID(listingID))
}

func (s *service) ListByUser(ctx context.Context, userID string, page common.Pagination) ([]*valuation.Record, error) {
	if page.PageSize <= 0 {
		page.PageSize = 20
	}
	return s.records.ListByUser(ctx, common.ID(userID), page)
}

func (s *service) recordCacheAccess(hit bool) {
	if s.metrics != nil {
		prometheus.RecordCacheAccess(s.metrics, "valuations", hit)
	}
}
