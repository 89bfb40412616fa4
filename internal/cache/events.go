package cache

import (
	"context"

	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
)

// Marketplace event names understood by InvalidateByEvent.
const (
	EventBuyerPreferenceUpdate = "buyer_preference_update"
	EventListingUpdate         = "listing_update"
	EventValuationUpdate       = "valuation_update"
)

// eventPatterns maps each event to the key prefixes it stales.
var eventPatterns = map[string][]string{
	EventBuyerPreferenceUpdate: {"recommendations:", "matches:"},
	EventListingUpdate:         {"matches:", "valuations:"},
	EventValuationUpdate:       {"valuations:"},
}

// invalidateByEvent runs Clear for each pattern registered for event using
// the supplied store.  Shared by both Store implementations.
func invalidateByEvent(ctx context.Context, s Store, event string) (int, error) {
	patterns, ok := eventPatterns[event]
	if !ok {
		return 0, apperrors.New(apperrors.ErrCodeCacheEventUnknown, "unknown invalidation event").WithDetail(event)
	}

	total := 0
	for _, pattern := range patterns {
		n, err := s.Clear(ctx, pattern)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
