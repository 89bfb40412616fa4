package valuation

import (
	"context"
	"time"

	"github.com/dealbridge/dealbridge/pkg/types/common"
)

// Record is a persisted valuation: the inputs it was computed from and the
// immutable result.
type Record struct {
	ID        common.ID  `json:"id"`
	ListingID *common.ID `json:"listingId,omitempty"`
	UserID    common.ID  `json:"userId"`
	Data      StepData   `json:"data"`
	Result    Result     `json:"result"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Repository is the persistence contract for valuations.
type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id common.ID) (*Record, error)
	ListByListing(ctx context.Context, listingID common.ID) ([]*Record, error)
	ListByUser(ctx context.Context, userID common.ID, page common.Pagination) ([]*Record, error)
}
