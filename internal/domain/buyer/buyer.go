// Package buyer defines the buyer profile entity, per-call preference
// overrides, and the buyer repository contract.
package buyer

import (
	"context"
	"time"

	"github.com/dealbridge/dealbridge/pkg/types/common"
)

// LocationFlexibility is how far from their preferred locations a buyer is
// willing to look.
type LocationFlexibility string

const (
	FlexibilityExact   LocationFlexibility = "exact"
	FlexibilityRegion  LocationFlexibility = "region"
	FlexibilityCountry LocationFlexibility = "country"
	FlexibilityAny     LocationFlexibility = "any"
)

// PreferenceLevel expresses how strongly a buyer wants a listing attribute.
type PreferenceLevel string

const (
	PreferenceNone      PreferenceLevel = ""
	PreferencePreferred PreferenceLevel = "preferred"
	PreferenceRequired  PreferenceLevel = "required"
)

// Profile is a buyer's stored acquisition profile.  Optional numeric fields
// are pointers; the matching engine scores absent fields neutrally.
type Profile struct {
	ID     common.ID `json:"id"`
	UserID common.ID `json:"userId"`

	Industries []string `json:"industries,omitempty"`

	MinBudget *float64 `json:"minBudget,omitempty"`
	MaxBudget *float64 `json:"maxBudget,omitempty"`

	PreferredLocations  []string            `json:"preferredLocations,omitempty"`
	LocationFlexibility LocationFlexibility `json:"locationFlexibility,omitempty"`

	MinRevenue *float64 `json:"minRevenue,omitempty"`
	MaxRevenue *float64 `json:"maxRevenue,omitempty"`
	MinEBITDA  *float64 `json:"minEbitda,omitempty"`
	MaxEBITDA  *float64 `json:"maxEbitda,omitempty"`

	MinEmployees *int `json:"minEmployees,omitempty"`
	MaxEmployees *int `json:"maxEmployees,omitempty"`

	ManagementStay   PreferenceLevel `json:"managementStay,omitempty"`
	PropertyIncluded PreferenceLevel `json:"propertyIncluded,omitempty"`
	Relocation       PreferenceLevel `json:"relocation,omitempty"`

	Verified          bool   `json:"verified"`
	FinancingApproved bool   `json:"financingApproved"`
	Synergies         string `json:"synergies,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Preferences is a per-call override: any non-zero field replaces the stored
// profile value for that calculation only.  The stored Profile is never
// mutated.
type Preferences struct {
	Industries []string `json:"industries,omitempty"`

	MinBudget *float64 `json:"minBudget,omitempty"`
	MaxBudget *float64 `json:"maxBudget,omitempty"`

	PreferredLocations  []string             `json:"preferredLocations,omitempty"`
	LocationFlexibility *LocationFlexibility `json:"locationFlexibility,omitempty"`

	MinRevenue *float64 `json:"minRevenue,omitempty"`
	MaxRevenue *float64 `json:"maxRevenue,omitempty"`
	MinEBITDA  *float64 `json:"minEbitda,omitempty"`
	MaxEBITDA  *float64 `json:"maxEbitda,omitempty"`

	MinEmployees *int `json:"minEmployees,omitempty"`
	MaxEmployees *int `json:"maxEmployees,omitempty"`

	ManagementStay   *PreferenceLevel `json:"managementStay,omitempty"`
	PropertyIncluded *PreferenceLevel `json:"propertyIncluded,omitempty"`
	Relocation       *PreferenceLevel `json:"relocation,omitempty"`
}

// Resolve returns a copy of the profile with any override fields from prefs
// applied.  A nil prefs returns the profile unchanged.
func (p Profile) Resolve(prefs *Preferences) Profile {
	if prefs == nil {
		return p
	}
	out := p
	if len(prefs.Industries) > 0 {
		out.Industries = prefs.Industries
	}
	if prefs.MinBudget != nil {
		out.MinBudget = prefs.MinBudget
	}
	if prefs.MaxBudget != nil {
		out.MaxBudget = prefs.MaxBudget
	}
	if len(prefs.PreferredLocations) > 0 {
		out.PreferredLocations = prefs.PreferredLocations
	}
	if prefs.LocationFlexibility != nil {
		out.LocationFlexibility = *prefs.LocationFlexibility
	}
	if prefs.MinRevenue != nil {
		out.MinRevenue = prefs.MinRevenue
	}
	if prefs.MaxRevenue != nil {
		out.MaxRevenue = prefs.MaxRevenue
	}
	if prefs.MinEBITDA != nil {
		out.MinEBITDA = prefs.MinEBITDA
	}
	if prefs.MaxEBITDA != nil {
		out.MaxEBITDA = prefs.MaxEBITDA
	}
	if prefs.MinEmployees != nil {
		out.MinEmployees = prefs.MinEmployees
	}
	if prefs.MaxEmployees != nil {
		out.MaxEmployees = prefs.MaxEmployees
	}
	if prefs.ManagementStay != nil {
		out.ManagementStay = *prefs.ManagementStay
	}
	if prefs.PropertyIncluded != nil {
		out.PropertyIncluded = *prefs.PropertyIncluded
	}
	if prefs.Relocation != nil {
		out.Relocation = *prefs.Relocation
	}
	return out
}

// Repository is the persistence contract for buyer profiles.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id common.ID) (*Profile, error)
	GetByUserID(ctx context.Context, userID common.ID) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id common.ID) error
}
