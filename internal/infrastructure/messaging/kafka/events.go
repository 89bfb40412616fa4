package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

// Event types carried on the marketplace events topic.  The names double as
// cache invalidation events, so the worker can pass them straight through.
const (
	EventTypeListingUpdated    = "listing_update"
	EventTypeBuyerPrefsUpdated = "buyer_preference_update"
	EventTypeValuationUpdated  = "valuation_update"
	EventTypeScoreComputed     = "match_score_computed"
)

// EventEnvelope standardizes event messages on the bus.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// ListingUpdatedPayload announces a listing create, update or status change.
type ListingUpdatedPayload struct {
	ListingID string    `json:"listing_id"`
	SellerID  string    `json:"seller_id,omitempty"`
	Status    string    `json:"status,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BuyerPrefsUpdatedPayload announces a buyer profile change.
type BuyerPrefsUpdatedPayload struct {
	BuyerID   string    `json:"buyer_id"`
	UserID    string    `json:"user_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValuationUpdatedPayload announces a completed valuation.
type ValuationUpdatedPayload struct {
	ValuationID  string    `json:"valuation_id"`
	ListingID    string    `json:"listing_id,omitempty"`
	TypicalValue int64     `json:"typical_value"`
	Confidence   int       `json:"confidence"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// ScoreComputedPayload announces a freshly computed match score.
type ScoreComputedPayload struct {
	BuyerID    string    `json:"buyer_id"`
	ListingID  string    `json:"listing_id"`
	TotalScore int       `json:"total_score"`
	Confidence int       `json:"confidence"`
	ComputedAt time.Time `json:"computed_at"`
}

// NewEventEnvelope wraps a payload in a versioned envelope.
func NewEventEnvelope(eventType, source string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to marshal payload")
	}
	return &EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: "v1",
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the envelope payload into target.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeEventMalformed, "failed to unmarshal payload")
	}
	return nil
}

// ToMessage renders the envelope as a producer message for topic.  The event
// key is the envelope's partition key so updates for one entity stay ordered.
func (e *EventEnvelope) ToMessage(topic string, key string) (*common.ProducerMessage, error) {
	val, err := json.Marshal(e)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to marshal envelope")
	}
	return &common.ProducerMessage{
		Topic: topic,
		Key:   []byte(key),
		Value: val,
		Headers: map[string]string{
			"event_type":     e.EventType,
			"source_service": e.Source,
			"schema_version": e.SchemaVersion,
		},
		Timestamp: e.Timestamp,
	}, nil
}

// MessageToEventEnvelope parses a consumed message back into an envelope.
func MessageToEventEnvelope(msg *common.Message) (*EventEnvelope, error) {
	if len(msg.Value) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEventMalformed, "empty message value")
	}
	var env EventEnvelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeEventMalformed, "failed to unmarshal envelope")
	}
	if env.EventType == "" {
		return nil, apperrors.New(apperrors.ErrCodeEventMalformed, "missing event type")
	}
	return &env, nil
}
