// Package listing defines the business-listing entity and its repository
// contract.  A Listing is the seller side of the marketplace: the record both
// the matching and valuation engines read from.
package listing

import (
	"context"
	"time"

	"github.com/dealbridge/dealbridge/pkg/types/common"
)

// Listing is a business for sale.  Numeric and date fields are pointers
// because sellers fill listings in incrementally; engines treat absent fields
// as neutral rather than as errors.
type Listing struct {
	ID          common.ID `json:"id"`
	SellerID    common.ID `json:"sellerId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`

	Industry    string   `json:"industry"`
	SubIndustry string   `json:"subIndustry,omitempty"`
	Location    string   `json:"location,omitempty"`
	Locations   []string `json:"locations,omitempty"`

	AskingPrice   *float64 `json:"askingPrice,omitempty"`
	MinimumPrice  *float64 `json:"minimumPrice,omitempty"`
	AnnualRevenue *float64 `json:"annualRevenue,omitempty"`
	AnnualProfit  *float64 `json:"annualProfit,omitempty"`
	EBITDA        *float64 `json:"ebitda,omitempty"`
	GrossMargin   *float64 `json:"grossMargin,omitempty"` // percent
	Debt          *float64 `json:"debt,omitempty"`

	Employees       *int `json:"employees,omitempty"`
	YearEstablished *int `json:"yearEstablished,omitempty"`

	ManagementStaying    bool   `json:"managementStaying"`
	PropertyIncluded     bool   `json:"propertyIncluded"`
	Relocatable          bool   `json:"relocatable"`
	FranchiseOpportunity bool   `json:"franchiseOpportunity"`
	TrainingProvided     bool   `json:"trainingProvided"`
	GrowthOpportunities  string `json:"growthOpportunities,omitempty"`
	NDARequired          bool   `json:"ndaRequired"`

	Status    common.Status `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Age returns the number of years the business has been operating as of now,
// or ok=false when yearEstablished is not set.
func (l *Listing) Age(now time.Time) (int, bool) {
	if l.YearEstablished == nil || *l.YearEstablished <= 0 {
		return 0, false
	}
	return now.Year() - *l.YearEstablished, true
}

// Price returns the asking price, falling back to the minimum price, or
// ok=false when neither is set.
func (l *Listing) Price() (float64, bool) {
	if l.AskingPrice != nil {
		return *l.AskingPrice, true
	}
	if l.MinimumPrice != nil {
		return *l.MinimumPrice, true
	}
	return 0, false
}

// Filter narrows List queries.  Zero-value fields are ignored.
type Filter struct {
	Industry string
	Location string
	Status   common.Status
	MinPrice *float64
	MaxPrice *float64
}

// Repository is the persistence contract for listings.
type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id common.ID) (*Listing, error)
	GetByIDs(ctx context.Context, ids []common.ID) ([]*Listing, error)
	List(ctx context.Context, filter Filter, page common.Pagination) ([]*Listing, int, error)
	Update(ctx context.Context, l *Listing) error
	UpdateStatus(ctx context.Context, id common.ID, status common.Status) error
	Delete(ctx context.Context, id common.ID) error
}
