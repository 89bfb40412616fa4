package industry

import "math"

// AdjustmentFactors are the optional business attributes that move a sector's
// baseline multiple up or down.  A nil field contributes no adjustment.
type AdjustmentFactors struct {
	RevenueGrowth         *float64 // percent, year-on-year
	RecurringRevenue      *float64 // percent of total revenue
	CustomerConcentration *float64 // percent of revenue from the top customer
	YearsInBusiness       *float64
	EBITDAMargin          *float64 // percent
}

// CalculateAdjustedMultiple applies the standard sequence of multiplicative
// adjustments to a baseline multiple.  Each factor is checked against its
// thresholds highest-to-lowest; the first match wins, and absent factors are
// skipped.  The result is rounded to one decimal place.
func CalculateAdjustedMultiple(base float64, factors AdjustmentFactors) float64 {
	m := base

	if g := factors.RevenueGrowth; g != nil {
		switch {
		case *g > 30:
			m *= 1.3
		case *g > 20:
			m *= 1.2
		case *g > 10:
			m *= 1.1
		case *g < 0:
			m *= 0.8
		}
	}

	if r := factors.RecurringRevenue; r != nil {
		switch {
		case *r > 80:
			m *= 1.25
		case *r > 60:
			m *= 1.15
		case *r > 40:
			m *= 1.08
		case *r < 20:
			m *= 0.9
		}
	}

	if c := factors.CustomerConcentration; c != nil {
		switch {
		case *c > 50:
			m *= 0.75
		case *c > 30:
			m *= 0.85
		case *c > 20:
			m *= 0.95
		}
	}

	if y := factors.YearsInBusiness; y != nil {
		switch {
		case *y > 20:
			m *= 1.1
		case *y > 10:
			m *= 1.05
		case *y < 3:
			m *= 0.85
		}
	}

	if e := factors.EBITDAMargin; e != nil {
		switch {
		case *e > 25:
			m *= 1.15
		case *e > 15:
			m *= 1.05
		case *e < 5:
			m *= 0.8
		}
	}

	return math.Round(m*10) / 10
}
