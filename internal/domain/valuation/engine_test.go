package valuation

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealbridge/dealbridge/internal/domain/industry"
)

func mustLookup(t *testing.T, key string) industry.Data {
	t.Helper()
	d, ok := industry.Lookup(key)
	require.True(t, ok)
	return d
}

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func fixedClock() func() time.Time {
	t := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func testEngine() *Engine {
	return NewEngine(
		WithClock(fixedClock()),
		WithRand(rand.New(rand.NewSource(42))),
	)
}

func TestCalculate_SaaSBusiness(t *testing.T) {
	data := &StepData{
		Sector:                     "saas_b2b",
		AnnualRevenue:              fp(1_000_000),
		ProfitType:                 ProfitTypeEBITDA,
		ProfitValue:                fp(200_000),
		GrowthRate:                 fp(25),
		RecurringRevenuePercentage: fp(70),
	}

	result := testEngine().Calculate(data)

	// SaaS sector shifts weighting toward revenue while keeping EBITDA
	// primary.
	assert.InDelta(t, 0.4, result.MethodBreakdown.Revenue.Weight, 1e-9)
	assert.InDelta(t, 0.5, result.MethodBreakdown.EBITDA.Weight, 1e-9)
	assert.InDelta(t, 0.1, result.MethodBreakdown.Asset.Weight, 1e-9)
	assert.Equal(t, MethodEBITDA, result.PrimaryMethod)

	// Base 15 ×1.2 (growth>15) ×1.2 (recurring>60) = 21.6.
	assert.InDelta(t, 21.6, result.AdjustedMultiple, 1e-9)
	assert.InDelta(t, 15.0, result.IndustryMultiple, 1e-9)
	assert.InDelta(t, 4_320_000, result.MethodBreakdown.EBITDA.Value, 1)

	// Revenue method: 1M × 4 ×1.25 ×1.15 = 5.75M.
	assert.InDelta(t, 5_750_000, result.MethodBreakdown.Revenue.Value, 1)

	assert.Greater(t, result.ValuationRange.Typical, int64(0))
	assert.Less(t, result.ValuationRange.Minimum, result.ValuationRange.Typical)
	assert.Greater(t, result.ValuationRange.Maximum, result.ValuationRange.Typical)
}

func TestMethodWeights_RecurringRevenueBoundary(t *testing.T) {
	t.Parallel()

	// Exactly 70% does not trigger the SaaS-style override.
	w := methodWeights(&StepData{RecurringRevenuePercentage: fp(70)})
	assert.InDelta(t, 0.25, w.revenue, 1e-9)
	assert.InDelta(t, 0.5, w.ebitda, 1e-9)
	assert.InDelta(t, 0.25, w.asset, 1e-9)

	// Just above 70% does.
	w = methodWeights(&StepData{RecurringRevenuePercentage: fp(70.01)})
	assert.InDelta(t, 0.4, w.revenue, 1e-9)
	assert.InDelta(t, 0.5, w.ebitda, 1e-9)
	assert.InDelta(t, 0.1, w.asset, 1e-9)
}

func TestMethodWeights_MarginBands(t *testing.T) {
	t.Parallel()

	w := methodWeights(&StepData{ProfitMargin: fp(25)})
	assert.InDelta(t, 0.6, w.ebitda, 1e-9)

	w = methodWeights(&StepData{ProfitMargin: fp(3)})
	assert.InDelta(t, 0.4, w.revenue, 1e-9)
	assert.InDelta(t, 0.2, w.ebitda, 1e-9)
}

func TestMethodWeights_ManufacturingIsAssetHeavy(t *testing.T) {
	t.Parallel()

	w := methodWeights(&StepData{Sector: "manufacturing_general"})
	assert.InDelta(t, 0.4, w.asset, 1e-9)
	assert.InDelta(t, 0.4, w.ebitda, 1e-9)
	assert.InDelta(t, 0.2, w.revenue, 1e-9)

	// Asset and EBITDA tie; EBITDA is reported as primary.
	assert.Equal(t, MethodEBITDA, w.primary())
}

func TestCalculate_NegativeEBITDAYieldsZeroMethodValue(t *testing.T) {
	data := &StepData{
		Sector:        "restaurant",
		AnnualRevenue: fp(500_000),
		ProfitType:    ProfitTypeEBITDA,
		ProfitValue:   fp(-50_000),
	}

	result := testEngine().Calculate(data)
	assert.Zero(t, result.MethodBreakdown.EBITDA.Value)
	assert.Greater(t, result.MethodBreakdown.Revenue.Value, 0.0)
}

func TestCalculate_UnknownSectorUsesDefaultMultiples(t *testing.T) {
	data := &StepData{
		Sector:        "space_mining",
		AnnualRevenue: fp(1_000_000),
	}

	result := testEngine().Calculate(data)
	assert.InDelta(t, 7.0, result.IndustryMultiple, 1e-9)
	// Revenue method falls back to ×1.0.
	assert.InDelta(t, 1_000_000, result.MethodBreakdown.Revenue.Value, 1)
}

func TestCalculate_EmptyStepData(t *testing.T) {
	result := testEngine().Calculate(&StepData{})

	assert.Equal(t, int64(0), result.ValuationRange.Typical)
	assert.Equal(t, 50, result.ValuationRange.Confidence)
	assert.Empty(t, result.Comparables)
}

func TestCalculate_ValidUntilStamp(t *testing.T) {
	result := testEngine().Calculate(&StepData{AnnualRevenue: fp(100_000)})

	assert.Equal(t, result.CalculatedAt.AddDate(0, 0, 90), result.ValidUntil)
}

func TestCalculate_ValidityDaysOption(t *testing.T) {
	e := NewEngine(WithClock(fixedClock()), WithValidityDays(30))
	result := e.Calculate(&StepData{})
	assert.Equal(t, result.CalculatedAt.AddDate(0, 0, 30), result.ValidUntil)
}

func TestConfidenceScore(t *testing.T) {
	t.Parallel()
	now := fixedClock()()

	tests := []struct {
		name string
		data StepData
		want int
	}{
		{name: "empty data", data: StepData{}, want: 50},
		{
			name: "partial data with bonuses",
			data: StepData{
				Sector:                     "saas_b2b",
				AnnualRevenue:              fp(1_000_000),
				ProfitType:                 ProfitTypeEBITDA,
				ProfitValue:                fp(200_000),
				GrowthRate:                 fp(25),
				RecurringRevenuePercentage: fp(70),
			},
			// 50 + 30×6/10 + 5 (recurring>60) + 5 (growth>10)
			want: 78,
		},
		{
			name: "complete data",
			data: StepData{
				Sector:                     "saas_b2b",
				AnnualRevenue:              fp(1_000_000),
				ProfitType:                 ProfitTypeEBITDA,
				ProfitValue:                fp(200_000),
				ProfitMargin:               fp(20),
				YearEstablished:            ip(2010),
				EmployeeCount:              ip(20),
				TopCustomerPercentage:      fp(10),
				GrowthRate:                 fp(25),
				RecurringRevenuePercentage: fp(70),
			},
			// 50 + 30 + 5×4 = 100
			want: 100,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, confidenceScore(&tt.data, now))
		})
	}
}

func TestValuationRange_WidensWithLowConfidence(t *testing.T) {
	t.Parallel()

	high := valuationRange(1_000_000, 100)
	assert.Equal(t, int64(800_000), high.Minimum)
	assert.Equal(t, int64(1_200_000), high.Maximum)

	low := valuationRange(1_000_000, 50)
	assert.Equal(t, int64(700_000), low.Minimum)
	assert.Equal(t, int64(1_350_000), low.Maximum)
}

func TestGenerateComparables_SchemaAndRanges(t *testing.T) {
	data := &StepData{Sector: "saas_b2b", AnnualRevenue: fp(1_000_000)}
	result := testEngine().Calculate(data)

	require.Len(t, result.Comparables, 4)
	for _, c := range result.Comparables {
		assert.Equal(t, "saas_b2b", c.Sector)
		assert.NotEmpty(t, c.Name)
		assert.InDelta(t, 1_000_000, c.Revenue, 300_001, "revenue outside +/-30%%")
		assert.InDelta(t, 4.0, c.Multiple, 0.81, "multiple outside +/-20%%")
		assert.InDelta(t, c.Revenue*c.Multiple, c.SoldPrice, 1)
	}
}

func TestGenerateComparables_DeterministicWithSeed(t *testing.T) {
	data := &StepData{Sector: "saas_b2b", AnnualRevenue: fp(1_000_000)}

	a := NewEngine(WithClock(fixedClock()), WithRand(rand.New(rand.NewSource(7)))).Calculate(data)
	b := NewEngine(WithClock(fixedClock()), WithRand(rand.New(rand.NewSource(7)))).Calculate(data)
	assert.Equal(t, a.Comparables, b.Comparables)
}

func TestMarketConditions(t *testing.T) {
	t.Parallel()

	mc := marketConditions(&StepData{Sector: "saas_b2b"}, mustLookup(t, "saas_b2b"), true)
	assert.Equal(t, "sellers_market", mc.Trend)
	assert.Equal(t, "high", mc.DemandLevel)
	assert.Equal(t, "4 months", mc.AverageTimeToSale)

	mc = marketConditions(&StepData{Sector: "fashion_retail"}, mustLookup(t, "fashion_retail"), true)
	assert.Equal(t, "buyers_market", mc.Trend)
	assert.Equal(t, "low", mc.DemandLevel)
}

func TestGenerateInsights(t *testing.T) {
	t.Parallel()
	now := fixedClock()()

	strengths, weaknesses, _, recs := generateInsights(&StepData{
		RecurringRevenuePercentage: fp(75),
		TopCustomerPercentage:      fp(55),
		GrowthRate:                 fp(-3),
		OwnerInvolvement:           OwnerFullTime,
	}, now)

	assert.NotEmpty(t, strengths)
	assert.GreaterOrEqual(t, len(weaknesses), 3)
	assert.NotEmpty(t, recs)
}

func TestGenerateInsights_DefaultRecommendation(t *testing.T) {
	t.Parallel()

	_, _, _, recs := generateInsights(&StepData{}, fixedClock()())
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "financial records")
}

func TestCalculate_TypicalIsWeightedAverage(t *testing.T) {
	data := &StepData{
		Sector:        "restaurant",
		AnnualRevenue: fp(600_000),
		ProfitType:    ProfitTypeEBITDA,
		ProfitValue:   fp(90_000),
	}

	result := testEngine().Calculate(data)

	b := result.MethodBreakdown
	want := b.Revenue.Value*b.Revenue.Weight + b.EBITDA.Value*b.EBITDA.Weight + b.Asset.Value*b.Asset.Weight
	assert.InDelta(t, want, float64(result.ValuationRange.Typical), 2)
	assert.True(t, math.Abs(b.Revenue.Weight+b.EBITDA.Weight+b.Asset.Weight-1) < 1e-9)
}
