package matching

import (
	"math"
	"time"

	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/domain/listing"
)

// defaultBudgetFlexibilityPct widens the buyer's strict budget range before
// a listing price is treated as out of budget.
const defaultBudgetFlexibilityPct = 0.1

// ScoreDetails is the complete output of one match calculation: the unit
// that is cached and returned to callers.
type ScoreDetails struct {
	TotalScore      int      `json:"totalScore"`
	Confidence      int      `json:"confidence"`
	Factors         Factors  `json:"factors"`
	Strengths       []string `json:"strengths,omitempty"`
	Weaknesses      []string `json:"weaknesses,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Reasoning       string   `json:"reasoning"`
}

// Engine computes match scores.  Stateless and safe for concurrent use;
// batch scoring fans out freely because every calculation only reads its
// inputs.
type Engine struct {
	flexibilityPct float64
	regions        RegionTable
	now            func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithBudgetFlexibility overrides the budget flexibility fraction
// (0.1 = 10%).
func WithBudgetFlexibility(pct float64) Option {
	return func(e *Engine) { e.flexibilityPct = pct }
}

// WithRegionTable injects a custom region table for the same-region location
// heuristic.
func WithRegionTable(rt RegionTable) Option {
	return func(e *Engine) { e.regions = rt }
}

// WithClock injects the time source used for business-age calculations.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine builds a match scoring engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		flexibilityPct: defaultBudgetFlexibilityPct,
		regions:        DefaultUKRegions(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CalculateScore computes the full match between a listing and a buyer.
// Optional per-call preference overrides are applied to the profile without
// mutating it; optional weight overrides are merged over defaults.  Pure:
// no side effects, the caller persists and caches the result.
func (e *Engine) CalculateScore(l *listing.Listing, profile buyer.Profile, prefs *buyer.Preferences, overrides *WeightOverrides) *ScoreDetails {
	p := profile.Resolve(prefs)
	weights := mergeWeights(overrides)

	factors := Factors{
		IndustryAlignment:  industryAlignment(l, p),
		BudgetFit:          e.budgetFit(l, p),
		LocationMatch:      e.locationMatch(l, p),
		RevenueMatch:       revenueMatch(l, p),
		ProfitabilityMatch: profitabilityMatch(l, p),
		SizeMatch:          sizeMatch(l, p),
		GrowthPotential:    e.growthPotential(l),
		StrategicFit:       strategicFit(l, p),
	}

	// ProfitabilityMatch and StrategicFit are computed and exposed but do
	// not participate in the weighted total: the weight schema only names
	// the six factors below, and they feed insight generation instead.
	weighted := float64(factors.IndustryAlignment)*weights.IndustryAlignment +
		float64(factors.BudgetFit)*weights.BudgetFit +
		float64(factors.LocationMatch)*weights.LocationPreference +
		float64(factors.RevenueMatch)*weights.RevenueMatch +
		float64(factors.SizeMatch)*weights.CompanySize +
		float64(factors.GrowthPotential)*weights.GrowthPotential

	total := 0
	if sum := weights.sum(); sum > 0 {
		total = clamp(int(math.Round(weighted / sum)))
	}

	details := &ScoreDetails{
		TotalScore: total,
		Confidence: confidence(l, profile, prefs),
		Factors:    factors,
	}
	details.Strengths, details.Weaknesses = factorInsights(factors)
	details.Recommendations = recommendations(l, factors)
	details.Reasoning = reasoning(l, p, factors, total)

	return details
}

// confidence estimates how complete the underlying data was: the fraction
// of checked fields that are present, as a percentage.
func confidence(l *listing.Listing, profile buyer.Profile, prefs *buyer.Preferences) int {
	checked := 12
	present := 0

	// Listing completeness (8 fields).
	if l.Industry != "" {
		present++
	}
	if l.Location != "" {
		present++
	}
	if _, ok := l.Price(); ok {
		present++
	}
	if l.AnnualRevenue != nil {
		present++
	}
	if l.EBITDA != nil || l.AnnualProfit != nil {
		present++
	}
	if l.Employees != nil {
		present++
	}
	if l.YearEstablished != nil {
		present++
	}
	if l.GrossMargin != nil {
		present++
	}

	// Buyer profile completeness (4 fields).
	if len(profile.Industries) > 0 {
		present++
	}
	if profile.MinBudget != nil && profile.MaxBudget != nil {
		present++
	}
	if len(profile.PreferredLocations) > 0 {
		present++
	}
	if profile.MinRevenue != nil || profile.MaxRevenue != nil {
		present++
	}

	// Per-call overrides (2 fields, only counted when supplied).
	if prefs != nil {
		checked += 2
		if len(prefs.Industries) > 0 {
			present++
		}
		if prefs.MinBudget != nil || prefs.MaxBudget != nil {
			present++
		}
	}

	return clamp(int(math.Round(100 * float64(present) / float64(checked))))
}
