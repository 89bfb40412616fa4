package valuation

import (
	"math"
	"math/rand"
	"time"

	"github.com/dealbridge/dealbridge/internal/domain/industry"
)

// Fallback multiples when the sector is not in the reference table.
const (
	defaultRevenueMultiple = 1.0
	defaultEBITDAMultiple  = 7.0
)

// defaultValidityDays is how long a Result is advertised as valid.
const defaultValidityDays = 90

// Engine computes valuations.  It is safe for concurrent use only when the
// injected random source is; the default engine guards nothing because each
// HTTP request constructs its inputs independently and rand.Rand access is
// serialized by the caller in batch paths.
type Engine struct {
	rng          *rand.Rand
	now          func() time.Time
	validityDays int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the random source used for synthetic comparables, letting
// tests pass a seeded source for deterministic output.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithClock injects the time source, used for years-in-operation and the
// calculatedAt/validUntil stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithValidityDays overrides how far in the future ValidUntil is set.
func WithValidityDays(days int) Option {
	return func(e *Engine) { e.validityDays = days }
}

// NewEngine builds a valuation engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
		validityDays: defaultValidityDays,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calculate runs all three valuation methods over data and assembles the
// complete Result.  Pure computation; no I/O.
func (e *Engine) Calculate(data *StepData) *Result {
	now := e.now()

	sector, sectorKnown := industry.Lookup(data.Sector)

	revenueValue := e.revenueMethodValue(data, sector, sectorKnown)
	ebitdaValue, adjustedMultiple := e.ebitdaMethodValue(data, sector, sectorKnown)
	assetValue := e.assetMethodValue(data, now)

	weights := methodWeights(data)
	typical := revenueValue*weights.revenue + ebitdaValue*weights.ebitda + assetValue*weights.asset

	confidence := confidenceScore(data, now)
	rng := valuationRange(typical, confidence)

	industryMultiple := defaultEBITDAMultiple
	if sectorKnown {
		industryMultiple = sector.EBITDAMultiple.Typical
	}

	result := &Result{
		ValuationRange: rng,
		MethodBreakdown: MethodBreakdown{
			Revenue: MethodResult{Value: math.Round(revenueValue), Weight: weights.revenue},
			EBITDA:  MethodResult{Value: math.Round(ebitdaValue), Weight: weights.ebitda},
			Asset:   MethodResult{Value: math.Round(assetValue), Weight: weights.asset},
		},
		PrimaryMethod:    weights.primary(),
		IndustryMultiple: industryMultiple,
		AdjustedMultiple: adjustedMultiple,
		MarketConditions: marketConditions(data, sector, sectorKnown),
		CalculatedAt:     now,
		ValidUntil:       now.AddDate(0, 0, e.validityDays),
	}

	result.StrengthFactors, result.WeaknessFactors,
		result.Opportunities, result.Recommendations = generateInsights(data, now)

	result.Comparables = e.generateComparables(data, sector, sectorKnown)

	return result
}

// yearsInOperation returns the business age in years, or ok=false when
// yearEstablished is absent.
func yearsInOperation(data *StepData, now time.Time) (float64, bool) {
	if data.YearEstablished == nil || *data.YearEstablished <= 0 {
		return 0, false
	}
	return float64(now.Year() - *data.YearEstablished), true
}
