package matching

import (
	"context"
	"time"

	"github.com/dealbridge/dealbridge/pkg/types/common"
)

// Score is a persisted match score for one (buyer, listing) pair.
type Score struct {
	ID        common.ID    `json:"id"`
	BuyerID   common.ID    `json:"buyerId"`
	ListingID common.ID    `json:"listingId"`
	Details   ScoreDetails `json:"details"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ScoreRepository is the persistence contract for match scores.  The engine
// itself never writes; the application service persists computed scores
// through this interface.
type ScoreRepository interface {
	Upsert(ctx context.Context, s *Score) error
	Get(ctx context.Context, buyerID, listingID common.ID) (*Score, error)
	ListByBuyer(ctx context.Context, buyerID common.ID, page common.Pagination) ([]*Score, error)
	DeleteByListing(ctx context.Context, listingID common.ID) (int, error)
}
