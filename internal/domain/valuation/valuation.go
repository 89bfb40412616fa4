// Package valuation implements the business valuation engine: three weighted
// valuation methods (revenue multiple, EBITDA multiple, asset based) combined
// into an estimated value range with confidence, insights, and market
// context.
package valuation

import "time"

// Profit type values accepted in StepData.ProfitType.
const (
	ProfitTypeEBITDA      = "ebitda"
	ProfitTypeNetProfit   = "net_profit"
	ProfitTypeGrossProfit = "gross_profit"
)

// Owner involvement values accepted in StepData.OwnerInvolvement.
const (
	OwnerFullTime = "full_time"
	OwnerPartTime = "part_time"
	OwnerPassive  = "passive"
)

// Method names reported in MethodBreakdown and PrimaryMethod.
const (
	MethodRevenue = "revenue"
	MethodEBITDA  = "ebitda"
	MethodAsset   = "asset"
)

// StepData is the incrementally collected valuation questionnaire.  Every
// field is optional until calculation time; the engine scores what it is
// given and reflects completeness in the confidence score.
type StepData struct {
	BusinessName string `json:"businessName,omitempty"`
	Sector       string `json:"sector,omitempty"`
	Location     string `json:"location,omitempty"`

	AnnualRevenue *float64 `json:"annualRevenue,omitempty"`
	ProfitType    string   `json:"profitType,omitempty"`
	ProfitValue   *float64 `json:"profitValue,omitempty"`
	ProfitMargin  *float64 `json:"profitMargin,omitempty"` // percent

	YearEstablished *int `json:"yearEstablished,omitempty"`
	EmployeeCount   *int `json:"employeeCount,omitempty"`

	TopCustomerPercentage      *float64 `json:"topCustomerPercentage,omitempty"`
	GrowthRate                 *float64 `json:"growthRate,omitempty"` // percent, year-on-year
	RecurringRevenuePercentage *float64 `json:"recurringRevenuePercentage,omitempty"`

	KeyAssets        []string `json:"keyAssets,omitempty"`
	ExitReason       string   `json:"exitReason,omitempty"`
	OwnerInvolvement string   `json:"ownerInvolvement,omitempty"`
}

// Range is the estimated value band with its confidence score.
type Range struct {
	Minimum    int64 `json:"minimum"`
	Typical    int64 `json:"typical"`
	Maximum    int64 `json:"maximum"`
	Confidence int   `json:"confidence"` // 0-100
}

// MethodResult is one valuation method's output and its weight in the
// final weighted average.
type MethodResult struct {
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// MethodBreakdown reports all three methods.
type MethodBreakdown struct {
	Revenue MethodResult `json:"revenue"`
	EBITDA  MethodResult `json:"ebitda"`
	Asset   MethodResult `json:"asset"`
}

// Comparable is a synthetic comparable-transaction record.  Placeholder data
// source: values are generated by perturbing the subject business, not drawn
// from real transactions.
type Comparable struct {
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Revenue   float64 `json:"revenue"`
	Multiple  float64 `json:"multiple"`
	SoldPrice float64 `json:"soldPrice"`
}

// MarketConditions is a rule-based classification of the sector's current
// sale climate.
type MarketConditions struct {
	Trend             string   `json:"trend"` // sellers_market | balanced | buyers_market
	DemandLevel       string   `json:"demandLevel"`
	AverageTimeToSale string   `json:"averageTimeToSale"`
	PremiumFactors    []string `json:"premiumFactors,omitempty"`
}

// Result is the complete output of one valuation calculation.  Immutable
// after creation; ValidUntil is advisory metadata and is not enforced by
// the engine.
type Result struct {
	ValuationRange   Range            `json:"valuationRange"`
	MethodBreakdown  MethodBreakdown  `json:"methodBreakdown"`
	PrimaryMethod    string           `json:"primaryMethod"`
	IndustryMultiple float64          `json:"industryMultiple"`
	AdjustedMultiple float64          `json:"adjustedMultiple"`
	StrengthFactors  []string         `json:"strengthFactors,omitempty"`
	WeaknessFactors  []string         `json:"weaknessFactors,omitempty"`
	Opportunities    []string         `json:"opportunities,omitempty"`
	Recommendations  []string         `json:"recommendations,omitempty"`
	Comparables      []Comparable     `json:"comparableBusinesses,omitempty"`
	MarketConditions MarketConditions `json:"marketConditions"`
	CalculatedAt     time.Time        `json:"calculatedAt"`
	ValidUntil       time.Time        `json:"validUntil"`
}
