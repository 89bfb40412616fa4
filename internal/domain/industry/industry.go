// Package industry provides the static reference table of industry sectors
// used by the valuation and matching engines: baseline valuation multiples,
// market trend, demand level, and typical gross margin per sector.
package industry

// Trend describes the market direction of a sector.
type Trend string

const (
	TrendGrowing   Trend = "growing"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// DemandLevel describes current buyer appetite for a sector.
type DemandLevel string

const (
	DemandHigh   DemandLevel = "high"
	DemandMedium DemandLevel = "medium"
	DemandLow    DemandLevel = "low"
)

// MultipleRange is a min/typical/max band for a valuation multiple.
type MultipleRange struct {
	Min     float64 `json:"min"`
	Typical float64 `json:"typical"`
	Max     float64 `json:"max"`
}

// Data is one sector entry in the reference table.
type Data struct {
	Key                string        `json:"key"`
	Name               string        `json:"name"`
	Category           string        `json:"category"`
	EBITDAMultiple     MultipleRange `json:"ebitdaMultiple"`
	RevenueMultiple    MultipleRange `json:"revenueMultiple"`
	Trend              Trend         `json:"trend"`
	DemandLevel        DemandLevel   `json:"demandLevel"`
	TypicalGrossMargin float64       `json:"typicalGrossMargin"` // percent
}
