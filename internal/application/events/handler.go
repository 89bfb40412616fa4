// Package events handles consumed marketplace events on the worker: each
// entity-change event invalidates the cache regions derived from it and, for
// deleted listings, sweeps persisted match scores.
package events

import (
	"context"

	"github.com/dealbridge/dealbridge/internal/cache"
	"github.com/dealbridge/dealbridge/internal/domain/matching"
	"github.com/dealbridge/dealbridge/internal/infrastructure/messaging/kafka"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

// Handler processes marketplace events from the bus.
type Handler struct {
	store   cache.Store
	scores  matching.ScoreRepository
	metrics *prometheus.AppMetrics
	log     logging.Logger
}

// NewHandler wires the event handler.  scores and metrics may be nil.
func NewHandler(store cache.Store, scores matching.ScoreRepository, metrics *prometheus.AppMetrics, log logging.Logger) *Handler {
	return &Handler{store: store, scores: scores, metrics: metrics, log: log}
}

// Handle is the kafka consumer callback for the marketplace events topic.
// Unknown event types are acknowledged and skipped; transient invalidation
// failures are returned so the consumer retries.
func (h *Handler) Handle(ctx context.Context, msg *common.Message) error {
	env, err := kafka.MessageToEventEnvelope(msg)
	if err != nil {
		// Malformed messages can never succeed; drop instead of retrying.
		h.log.Warn("dropping malformed marketplace event",
			logging.String("topic", msg.Topic),
			logging.Int64("offset", msg.Offset),
			logging.Err(err))
		h.record("malformed", "dropped")
		return nil
	}

	removed, err := h.store.InvalidateByEvent(ctx, env.EventType)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeCacheEventUnknown) {
			h.log.Debug("no invalidation rule for event",
				logging.String("event_type", env.EventType))
			h.record(env.EventType, "skipped")
			return nil
		}
		h.record(env.EventType, "failure")
		return err
	}

	if h.metrics != nil && removed > 0 {
		h.metrics.CacheInvalidations.WithLabelValues(env.EventType).Add(float64(removed))
	}

	if env.EventType == kafka.EventTypeListingUpdated {
		if err := h.handleListingUpdate(ctx, env); err != nil {
			h.record(env.EventType, "failure")
			return err
		}
	}

	h.log.Debug("marketplace event processed",
		logging.String("event_type", env.EventType),
		logging.Int("invalidated", removed))
	h.record(env.EventType, "success")
	return nil
}

// handleListingUpdate sweeps persisted scores when a listing leaves the
// market, so stale matches stop surfacing in buyer listings.
func (h *Handler) handleListingUpdate(ctx context.Context, env *kafka.EventEnvelope) error {
	if h.scores == nil {
		return nil
	}
	var payload kafka.ListingUpdatedPayload
	if err := env.DecodePayload(&payload); err != nil {
		h.log.Warn("listing update payload decode failed", logging.Err(err))
		return nil
	}
	if payload.ListingID == "" {
		return nil
	}

	switch common.Status(payload.Status) {
	case common.StatusSold, common.StatusWithdrawn:
		n, err := h.scores.DeleteByListing(ctx, common.ID(payload.ListingID))
		if err != nil {
			return err
		}
		h.log.Info("match scores swept for closed listing",
			logging.String("listing_id", payload.ListingID),
			logging.Int("deleted", n))
	}
	return nil
}

func (h *Handler) record(eventType, status string) {
	if h.metrics != nil {
		h.metrics.EventsProcessedTotal.WithLabelValues(eventType, status).Inc()
	}
}
