package matching

import (
	"math"
	"strings"

	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/domain/listing"
)

// Neutral scores returned when a factor has no data to work with.  Absent
// inputs are scored neutrally rather than treated as errors.
const (
	neutralBudget        = 50
	neutralRevenue       = 50
	neutralProfitability = 50
	neutralLocation      = 75
	neutralSize          = 70
	neutralSizeNoPref    = 80
	neutralIndustry      = 50
)

// Factors holds the eight factor scores, each clamped to [0,100].
type Factors struct {
	IndustryAlignment  int `json:"industryAlignment"`
	BudgetFit          int `json:"budgetFit"`
	LocationMatch      int `json:"locationMatch"`
	RevenueMatch       int `json:"revenueMatch"`
	ProfitabilityMatch int `json:"profitabilityMatch"`
	SizeMatch          int `json:"sizeMatch"`
	GrowthPotential    int `json:"growthPotential"`
	StrategicFit       int `json:"strategicFit"`
}

// industryAlignment scores how well the listing's industry fits the buyer's
// target industries: exact 100, sub-industry 85, related 70, unrelated 0,
// no stated industries 50.
func industryAlignment(l *listing.Listing, p buyer.Profile) int {
	if len(p.Industries) == 0 {
		return neutralIndustry
	}
	for _, ind := range p.Industries {
		if strings.EqualFold(ind, l.Industry) {
			return 100
		}
	}
	if l.SubIndustry != "" {
		for _, ind := range p.Industries {
			if strings.EqualFold(ind, l.SubIndustry) {
				return 85
			}
		}
	}
	for _, ind := range p.Industries {
		if industriesRelated(ind, l.Industry) {
			return 70
		}
	}
	return 0
}

// budgetFit compares the listing price against the buyer's budget range.
// Inside the strict range the score rises toward 100 at the midpoint;
// inside the flexibility-expanded band it scales 50-70; beyond that it
// decays toward 0 with distance.
func (e *Engine) budgetFit(l *listing.Listing, p buyer.Profile) int {
	price, ok := l.Price()
	if !ok {
		return neutralBudget
	}
	if p.MinBudget == nil || p.MaxBudget == nil {
		return neutralBudget
	}
	min, max := *p.MinBudget, *p.MaxBudget
	if max <= min {
		return neutralBudget
	}

	if price >= min && price <= max {
		mid := (min + max) / 2
		halfWidth := (max - min) / 2
		return clamp(int(math.Round(100 - 30*math.Abs(price-mid)/halfWidth)))
	}

	flexMin := min * (1 - e.flexibilityPct)
	flexMax := max * (1 + e.flexibilityPct)

	if price >= flexMin && price < min {
		span := min - flexMin
		if span <= 0 {
			return neutralBudget
		}
		return clamp(int(math.Round(70 - 20*(min-price)/span)))
	}
	if price > max && price <= flexMax {
		span := flexMax - max
		if span <= 0 {
			return neutralBudget
		}
		return clamp(int(math.Round(70 - 20*(price-max)/span)))
	}

	// Beyond the flex band: decay with relative distance.
	var ratio float64
	if price < flexMin {
		if flexMin <= 0 {
			return 0
		}
		ratio = (flexMin - price) / flexMin
	} else {
		if flexMax <= 0 {
			return 0
		}
		ratio = (price - flexMax) / flexMax
	}
	return clamp(int(math.Round(50 * (1 - ratio))))
}

// locationMatch scores geographic fit.  Exact match 100, secondary location
// match 95, otherwise graded by the buyer's stated flexibility using the
// same-region heuristic.
func (e *Engine) locationMatch(l *listing.Listing, p buyer.Profile) int {
	if len(p.PreferredLocations) == 0 {
		return neutralLocation
	}

	for _, pref := range p.PreferredLocations {
		if strings.EqualFold(pref, l.Location) {
			return 100
		}
	}
	for _, pref := range p.PreferredLocations {
		for _, loc := range l.Locations {
			if strings.EqualFold(pref, loc) {
				return 95
			}
		}
	}

	switch p.LocationFlexibility {
	case buyer.FlexibilityExact:
		return 0
	case buyer.FlexibilityRegion:
		for _, pref := range p.PreferredLocations {
			if e.regions.sameRegion(l.Location, pref) {
				return 75
			}
		}
		return 25
	case buyer.FlexibilityCountry:
		return 50
	case buyer.FlexibilityAny:
		return 75
	default:
		return 25
	}
}

// revenueMatch scores the listing's revenue against the buyer's preferred
// range, scaling down proportionally outside it.
func revenueMatch(l *listing.Listing, p buyer.Profile) int {
	if l.AnnualRevenue == nil {
		return neutralRevenue
	}
	if p.MinRevenue == nil && p.MaxRevenue == nil {
		return 75
	}
	rev := *l.AnnualRevenue

	score := 100.0
	if p.MinRevenue != nil && *p.MinRevenue > 0 && rev < *p.MinRevenue {
		score = math.Min(score, 100*rev / *p.MinRevenue)
	}
	if p.MaxRevenue != nil && rev > *p.MaxRevenue && rev > 0 {
		score = math.Min(score, 100*(*p.MaxRevenue)/rev)
	}
	return clamp(int(math.Round(score)))
}

// profitabilityMatch scores profitability fit: base 75 when profitable, 30
// when not, scaled against the buyer's EBITDA range and topped up by a
// margin bonus.
func profitabilityMatch(l *listing.Listing, p buyer.Profile) int {
	profit := l.EBITDA
	if profit == nil {
		profit = l.AnnualProfit
	}
	if profit == nil {
		return neutralProfitability
	}

	score := 30.0
	if *profit > 0 {
		score = 75
	}

	if p.MinEBITDA != nil && *p.MinEBITDA > 0 && *profit < *p.MinEBITDA {
		if *profit > 0 {
			score = 75 * *profit / *p.MinEBITDA
		} else {
			score = 0
		}
	}
	// Exceeding the buyer's range is not penalized harshly.
	if p.MaxEBITDA != nil && *profit > *p.MaxEBITDA {
		score = 90
	}

	if l.AnnualRevenue != nil && *l.AnnualRevenue > 0 {
		margin := *profit / *l.AnnualRevenue * 100
		switch {
		case margin > 20:
			score += 10
		case margin > 10:
			score += 5
		case margin < 5:
			score -= 10
		}
	}

	return clamp(int(math.Round(score)))
}

// sizeMatch scores the employee count against the buyer's preferred range.
// Floors at 50 rather than 0: size mismatch alone should never sink a match.
func sizeMatch(l *listing.Listing, p buyer.Profile) int {
	if l.Employees == nil {
		return neutralSize
	}
	if p.MinEmployees == nil && p.MaxEmployees == nil {
		return neutralSizeNoPref
	}
	emp := float64(*l.Employees)

	score := 100.0
	if p.MinEmployees != nil && *p.MinEmployees > 0 && emp < float64(*p.MinEmployees) {
		score = math.Min(score, 100*emp/float64(*p.MinEmployees))
	}
	if p.MaxEmployees != nil && emp > float64(*p.MaxEmployees) && emp > 0 {
		score = math.Min(score, 100*float64(*p.MaxEmployees)/emp)
	}
	if score < 50 {
		score = 50
	}
	return clamp(int(math.Round(score)))
}

// growthPotential scores expansion prospects from listing attributes, age,
// and a per-industry bonus.
func (e *Engine) growthPotential(l *listing.Listing) int {
	score := 50
	if l.FranchiseOpportunity {
		score += 15
	}
	if l.Relocatable {
		score += 10
	}
	if l.GrowthOpportunities != "" {
		score += 15
	}

	if age, ok := l.Age(e.now()); ok {
		switch {
		case age > 30:
			score -= 5
		case age < 5:
			score += 10
		case age < 10:
			score += 5
		}
	}

	score += growthBonusFor(l.Industry)
	return clamp(score)
}

// strategicFit scores the softer deal-structure preferences: management
// transition, property, relocation, training, and stated synergies.
func strategicFit(l *listing.Listing, p buyer.Profile) int {
	score := 50

	if p.ManagementStay != buyer.PreferenceNone {
		if l.ManagementStaying {
			score += 20
		} else {
			score -= 20
		}
	}

	switch {
	case p.PropertyIncluded == buyer.PreferenceRequired && !l.PropertyIncluded:
		score -= 30
	case p.PropertyIncluded != buyer.PreferenceNone && l.PropertyIncluded:
		score += 15
	case l.PropertyIncluded:
		score += 10
	}

	switch {
	case p.Relocation == buyer.PreferenceRequired && !l.Relocatable:
		score -= 25
	case p.Relocation != buyer.PreferenceNone && l.Relocatable:
		score += 15
	case l.Relocatable:
		score += 5
	}

	if l.TrainingProvided {
		score += 10
	}
	if strings.TrimSpace(p.Synergies) != "" {
		score += 10
	}

	return clamp(score)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
