// Package matching implements the buyer-listing match scoring engine: eight
// independent factor calculators, a weighted aggregator, insight and
// reasoning generation, and a rule-based enrichment pass.
package matching

// Weights are the relative weights used in the total-score aggregation.
// They need not sum to 100; the aggregator normalizes by the sum of the
// merged weights.
type Weights struct {
	IndustryAlignment  float64 `json:"industryAlignment"`
	BudgetFit          float64 `json:"budgetFit"`
	LocationPreference float64 `json:"locationPreference"`
	RevenueMatch       float64 `json:"revenueMatch"`
	CompanySize        float64 `json:"companySize"`
	GrowthPotential    float64 `json:"growthPotential"`
}

// DefaultWeights returns the standard weight schema.
func DefaultWeights() Weights {
	return Weights{
		IndustryAlignment:  30,
		BudgetFit:          25,
		LocationPreference: 15,
		RevenueMatch:       15,
		CompanySize:        10,
		GrowthPotential:    5,
	}
}

// WeightOverrides is a partial weight map; nil fields fall back to the
// default for that factor.
type WeightOverrides struct {
	IndustryAlignment  *float64 `json:"industryAlignment,omitempty"`
	BudgetFit          *float64 `json:"budgetFit,omitempty"`
	LocationPreference *float64 `json:"locationPreference,omitempty"`
	RevenueMatch       *float64 `json:"revenueMatch,omitempty"`
	CompanySize        *float64 `json:"companySize,omitempty"`
	GrowthPotential    *float64 `json:"growthPotential,omitempty"`
}

// mergeWeights overlays the supplied overrides onto the defaults
// field-by-field.  A nil overrides returns the defaults unchanged.
func mergeWeights(overrides *WeightOverrides) Weights {
	w := DefaultWeights()
	if overrides == nil {
		return w
	}
	if overrides.IndustryAlignment != nil {
		w.IndustryAlignment = *overrides.IndustryAlignment
	}
	if overrides.BudgetFit != nil {
		w.BudgetFit = *overrides.BudgetFit
	}
	if overrides.LocationPreference != nil {
		w.LocationPreference = *overrides.LocationPreference
	}
	if overrides.RevenueMatch != nil {
		w.RevenueMatch = *overrides.RevenueMatch
	}
	if overrides.CompanySize != nil {
		w.CompanySize = *overrides.CompanySize
	}
	if overrides.GrowthPotential != nil {
		w.GrowthPotential = *overrides.GrowthPotential
	}
	return w
}

// sum is the normalization denominator for the weighted total.
func (w Weights) sum() float64 {
	return w.IndustryAlignment + w.BudgetFit + w.LocationPreference +
		w.RevenueMatch + w.CompanySize + w.GrowthPotential
}
