package valuation

import (
	"fmt"
	"math"
	"strings"

	"github.com/dealbridge/dealbridge/internal/domain/industry"
)

// comparableCount is how many synthetic comparables each valuation reports.
const comparableCount = 4

// generateComparables produces synthetic comparable transactions by
// perturbing the subject's revenue by ±30% and the sector multiple by ±20%.
//
// Placeholder data source: a production deployment should replace this with
// a real transaction-comparables database.
func (e *Engine) generateComparables(data *StepData, sector industry.Data, sectorKnown bool) []Comparable {
	if data.AnnualRevenue == nil || *data.AnnualRevenue <= 0 {
		return nil
	}

	baseMultiple := defaultRevenueMultiple
	sectorName := "General"
	if sectorKnown {
		baseMultiple = sector.RevenueMultiple.Typical
		sectorName = sector.Name
	}

	out := make([]Comparable, 0, comparableCount)
	for i := 0; i < comparableCount; i++ {
		revenue := round2(*data.AnnualRevenue * (1 + (e.rng.Float64()*2-1)*0.3))
		multiple := round2(baseMultiple * (1 + (e.rng.Float64()*2-1)*0.2))
		out = append(out, Comparable{
			Name:      fmt.Sprintf("%s business #%d", sectorName, i+1),
			Sector:    data.Sector,
			Revenue:   revenue,
			Multiple:  multiple,
			SoldPrice: round2(revenue * multiple),
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// marketConditions classifies the current sale climate for the sector.
func marketConditions(data *StepData, sector industry.Data, sectorKnown bool) MarketConditions {
	mc := MarketConditions{
		Trend:             "balanced",
		DemandLevel:       string(industry.DemandMedium),
		AverageTimeToSale: "9 months",
	}

	if strings.HasPrefix(data.Sector, "saas") || strings.Contains(data.Sector, "technology") || data.Sector == "software_development" {
		mc.Trend = "sellers_market"
		mc.DemandLevel = string(industry.DemandHigh)
		mc.AverageTimeToSale = "4 months"
	} else if sectorKnown {
		mc.DemandLevel = string(sector.DemandLevel)
		switch sector.DemandLevel {
		case industry.DemandHigh:
			mc.Trend = "sellers_market"
			mc.AverageTimeToSale = "6 months"
		case industry.DemandLow:
			mc.Trend = "buyers_market"
			mc.AverageTimeToSale = "12 months"
		}
		if sector.Trend == industry.TrendDeclining {
			mc.Trend = "buyers_market"
		}
	}

	if r := data.RecurringRevenuePercentage; r != nil && *r > 60 {
		mc.PremiumFactors = append(mc.PremiumFactors, "recurring revenue base")
	}
	if g := data.GrowthRate; g != nil && *g > 20 {
		mc.PremiumFactors = append(mc.PremiumFactors, "strong growth trajectory")
	}
	for _, asset := range data.KeyAssets {
		if asset == "patents" || asset == "intellectual_property" {
			mc.PremiumFactors = append(mc.PremiumFactors, "proprietary intellectual property")
			break
		}
	}

	return mc
}
