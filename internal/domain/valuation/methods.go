package valuation

import (
	"math"
	"strings"
	"time"

	"github.com/dealbridge/dealbridge/internal/domain/industry"
)

// revenueMethodValue estimates value as revenue × an adjusted revenue
// multiple.  The base multiple is the sector's typical revenue multiple, or
// 1.0 when the sector is unknown.  Yields 0 when no revenue is provided.
//
// This threshold table is intentionally distinct from
// industry.CalculateAdjustedMultiple, which serves listing-side multiple
// adjustment; valuation questionnaires get a more aggressive growth reward.
func (e *Engine) revenueMethodValue(data *StepData, sector industry.Data, sectorKnown bool) float64 {
	if data.AnnualRevenue == nil || *data.AnnualRevenue <= 0 {
		return 0
	}

	multiple := defaultRevenueMultiple
	if sectorKnown {
		multiple = sector.RevenueMultiple.Typical
	}

	if g := data.GrowthRate; g != nil {
		switch {
		case *g > 30:
			multiple *= 1.5
		case *g > 15:
			multiple *= 1.25
		case *g > 5:
			multiple *= 1.1
		case *g < 0:
			multiple *= 0.7
		}
	}

	if r := data.RecurringRevenuePercentage; r != nil {
		switch {
		case *r > 70:
			multiple *= 1.3
		case *r > 50:
			multiple *= 1.15
		case *r > 30:
			multiple *= 1.05
		}
	}

	if c := data.TopCustomerPercentage; c != nil {
		switch {
		case *c > 50:
			multiple *= 0.7
		case *c > 30:
			multiple *= 0.85
		}
	}

	if years, ok := yearsInOperation(data, e.now()); ok {
		switch {
		case years > 15:
			multiple *= 1.15
		case years > 7:
			multiple *= 1.05
		case years < 2:
			multiple *= 0.8
		}
	}

	return *data.AnnualRevenue * multiple
}

// deriveEBITDA extracts an EBITDA figure from the profit fields.  A direct
// figure (profitType=ebitda) is used as-is; otherwise profitMargin×revenue
// with a correction factor for the profit type the margin was stated in.
// Returns ok=false when no EBITDA can be derived.
func deriveEBITDA(data *StepData) (float64, bool) {
	if data.ProfitType == ProfitTypeEBITDA && data.ProfitValue != nil {
		return *data.ProfitValue, true
	}

	if data.ProfitMargin == nil || data.AnnualRevenue == nil {
		return 0, false
	}
	ebitda := *data.ProfitMargin / 100 * *data.AnnualRevenue
	switch data.ProfitType {
	case ProfitTypeNetProfit:
		ebitda *= 1.3
	case ProfitTypeGrossProfit:
		ebitda *= 0.5
	}
	return ebitda, true
}

// ebitdaMethodValue estimates value as EBITDA × an adjusted EBITDA multiple
// and also returns the adjusted multiple for reporting.  Yields 0 when
// EBITDA cannot be derived or is non-positive.
func (e *Engine) ebitdaMethodValue(data *StepData, sector industry.Data, sectorKnown bool) (float64, float64) {
	multiple := defaultEBITDAMultiple
	if sectorKnown {
		multiple = sector.EBITDAMultiple.Typical
	}

	if rev := data.AnnualRevenue; rev != nil {
		switch {
		case *rev > 10_000_000:
			multiple *= 1.3
		case *rev > 5_000_000:
			multiple *= 1.15
		case *rev < 1_000_000:
			multiple *= 0.8
		}
	}

	if g := data.GrowthRate; g != nil {
		switch {
		case *g > 30:
			multiple *= 1.4
		case *g > 15:
			multiple *= 1.2
		case *g < 0:
			multiple *= 0.75
		}
	}

	if r := data.RecurringRevenuePercentage; r != nil {
		switch {
		case *r > 60:
			multiple *= 1.2
		case *r > 40:
			multiple *= 1.1
		}
	}

	switch data.OwnerInvolvement {
	case OwnerFullTime:
		multiple *= 0.9
	case OwnerPassive:
		multiple *= 1.1
	}

	multiple = math.Round(multiple*10) / 10

	ebitda, ok := deriveEBITDA(data)
	if !ok || ebitda <= 0 {
		return 0, multiple
	}
	return ebitda * multiple, multiple
}

// assetPremiums are fixed per-asset-type premiums added to the asset base.
var assetPremiums = map[string]float64{
	"real_estate":           0.4,
	"patents":               0.35,
	"intellectual_property": 0.3,
	"brand":                 0.25,
	"software":              0.25,
	"customer_database":     0.2,
	"contracts":             0.15,
	"licenses":              0.1,
	"equipment":             0.1,
	"inventory":             0.05,
}

// assetMethodValue estimates value from declared key assets: a revenue-based
// floor uplifted by the sum of per-asset premiums, then adjusted for
// longevity.  Yields 0 when no revenue is provided.
func (e *Engine) assetMethodValue(data *StepData, now time.Time) float64 {
	if data.AnnualRevenue == nil || *data.AnnualRevenue <= 0 {
		return 0
	}

	value := *data.AnnualRevenue * 0.3

	var totalPremium float64
	for _, asset := range data.KeyAssets {
		totalPremium += assetPremiums[strings.ToLower(asset)]
	}
	value *= 1 + totalPremium

	if years, ok := yearsInOperation(data, now); ok {
		switch {
		case years > 20:
			value *= 1.3
		case years > 10:
			value *= 1.15
		case years < 3:
			value *= 0.7
		}
	}

	return value
}

// weightSet is the relative weight of each method in the final average.
type weightSet struct {
	revenue float64
	ebitda  float64
	asset   float64
}

// primary returns the name of the heaviest-weighted method.  EBITDA wins
// ties, then revenue.
func (w weightSet) primary() string {
	best, name := w.ebitda, MethodEBITDA
	if w.revenue > best {
		best, name = w.revenue, MethodRevenue
	}
	if w.asset > best {
		name = MethodAsset
	}
	return name
}

// methodWeights picks the method weighting for the business profile.  The
// rules apply in order; later overrides replace earlier ones entirely, and
// the final set is normalized to sum to 1.
func methodWeights(data *StepData) weightSet {
	w := weightSet{revenue: 0.25, ebitda: 0.5, asset: 0.25}

	if m := data.ProfitMargin; m != nil {
		switch {
		case *m > 20:
			w = weightSet{revenue: 0.2, ebitda: 0.6, asset: 0.2}
		case *m < 5:
			w = weightSet{revenue: 0.4, ebitda: 0.2, asset: 0.4}
		}
	}

	recurring := data.RecurringRevenuePercentage
	if strings.HasPrefix(data.Sector, "saas") || (recurring != nil && *recurring > 70) {
		w = weightSet{revenue: 0.4, ebitda: 0.5, asset: 0.1}
	}

	if strings.Contains(data.Sector, "manufacturing") || strings.Contains(data.Sector, "construction") {
		w = weightSet{revenue: 0.2, ebitda: 0.4, asset: 0.4}
	}

	sum := w.revenue + w.ebitda + w.asset
	if sum == 0 {
		return weightSet{revenue: 0.25, ebitda: 0.5, asset: 0.25}
	}
	w.revenue /= sum
	w.ebitda /= sum
	w.asset /= sum
	return w
}

// confidenceKeyFieldCount is the completeness denominator used by
// confidenceScore.
const confidenceKeyFieldCount = 10

// confidenceScore rates how reliable the valuation is, based on input
// completeness plus flat bonuses for attributes that make multiples more
// dependable.  Clamped to [0,100].
func confidenceScore(data *StepData, now time.Time) int {
	present := 0
	if data.Sector != "" {
		present++
	}
	if data.AnnualRevenue != nil {
		present++
	}
	if data.ProfitType != "" {
		present++
	}
	if data.ProfitValue != nil {
		present++
	}
	if data.ProfitMargin != nil {
		present++
	}
	if data.YearEstablished != nil {
		present++
	}
	if data.EmployeeCount != nil {
		present++
	}
	if data.TopCustomerPercentage != nil {
		present++
	}
	if data.GrowthRate != nil {
		present++
	}
	if data.RecurringRevenuePercentage != nil {
		present++
	}

	score := 50.0 + 30.0*float64(present)/confidenceKeyFieldCount

	if years, ok := yearsInOperation(data, now); ok && years > 10 {
		score += 5
	}
	if r := data.RecurringRevenuePercentage; r != nil && *r > 60 {
		score += 5
	}
	if c := data.TopCustomerPercentage; c != nil && *c < 20 {
		score += 5
	}
	if g := data.GrowthRate; g != nil && *g > 10 {
		score += 5
	}

	return clampInt(int(math.Round(score)), 0, 100)
}

// valuationRange widens the band around the typical value as confidence
// drops; the upside is always wider than the downside.
func valuationRange(typical float64, confidence int) Range {
	uncertainty := 1 - float64(confidence)/100
	minVariance := 0.2 + uncertainty*0.2
	maxVariance := 0.2 + uncertainty*0.3

	return Range{
		Minimum:    int64(math.Round(typical * (1 - minVariance))),
		Typical:    int64(math.Round(typical)),
		Maximum:    int64(math.Round(typical * (1 + maxVariance))),
		Confidence: confidence,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
