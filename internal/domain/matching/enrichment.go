package matching

import (
	"fmt"
	"strings"
	"time"

	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/domain/listing"
)

// Enrichment is the output of the heuristic enrichment pass: deal-context
// signals layered on top of the factor scores.
//
// This is rule-based heuristics, not a model call; the naming is deliberate
// so API consumers are not misled about where the numbers come from.
type Enrichment struct {
	SynergyScore          int      `json:"synergyScore"`
	MarketTrends          string   `json:"marketTrends"`
	RiskFactors           []string `json:"riskFactors,omitempty"`
	Opportunities         []string `json:"opportunities,omitempty"`
	CulturalFit           int      `json:"culturalFit"`
	IntegrationComplexity string   `json:"integrationComplexity"` // low | medium | high
	EstimatedTimeToClose  string   `json:"estimatedTimeToClose"`
}

// marketTrendTexts is the per-industry templated commentary, checked in
// order with substring matching.
var marketTrendTexts = []struct {
	term string
	text string
}{
	{"technology", "Technology businesses continue to attract premium multiples, with strong demand for recurring-revenue models."},
	{"software", "Software valuations remain elevated; buyers compete hardest for products with low churn."},
	{"saas", "SaaS remains a sellers' market with multiple qualified buyers typical for any profitable listing."},
	{"healthcare", "Healthcare services see steady demand from consolidators building regional groups."},
	{"hospitality", "Hospitality is recovering but buyers discount heavily for location and staffing risk."},
	{"retail", "Retail appetite is selective; buyers favour proven online channels over pure high-street exposure."},
	{"manufacturing", "Manufacturing attracts strategic buyers seeking capacity; niche capability commands a premium."},
	{"construction", "Construction and trades businesses with contracted pipelines are trading at firm multiples."},
}

const defaultMarketTrendText = "Buyer demand in this sector is steady, with well-documented businesses transacting fastest."

func marketTrendFor(industryName string) string {
	lower := strings.ToLower(industryName)
	for _, mt := range marketTrendTexts {
		if strings.Contains(lower, mt.term) {
			return mt.text
		}
	}
	return defaultMarketTrendText
}

// HeuristicEnrichment produces the enrichment block for a (listing, buyer)
// pair.  Pure and synchronous: no external service is involved, so there is
// no failure mode.
func (e *Engine) HeuristicEnrichment(l *listing.Listing, p buyer.Profile) *Enrichment {
	enr := &Enrichment{
		MarketTrends: marketTrendFor(l.Industry),
	}

	// Synergy builds on industry overlap plus the buyer's own stated
	// synergies.
	synergy := industryAlignment(l, p)
	if strings.TrimSpace(p.Synergies) != "" {
		synergy += 10
	}
	if l.SubIndustry != "" {
		synergy += 5
	}
	enr.SynergyScore = clamp(synergy)

	enr.RiskFactors = enrichmentRisks(l, e.now())
	enr.Opportunities = enrichmentOpportunities(l)

	cultural := 60
	if l.ManagementStaying {
		cultural += 15
	}
	if l.TrainingProvided {
		cultural += 10
	}
	if p.FinancingApproved {
		cultural += 5
	}
	enr.CulturalFit = clamp(cultural)

	enr.IntegrationComplexity = integrationComplexity(l)
	enr.EstimatedTimeToClose = estimatedTimeToClose(l)

	return enr
}

func enrichmentRisks(l *listing.Listing, now time.Time) []string {
	var risks []string
	if !l.ManagementStaying {
		risks = append(risks, "Current management is not staying on after the sale")
	}
	if price, ok := l.Price(); ok && l.AnnualRevenue != nil && *l.AnnualRevenue > 0 && price / *l.AnnualRevenue > 3 {
		risks = append(risks, "Asking price is a high multiple of current revenue")
	}
	if l.EBITDA == nil && l.AnnualProfit == nil {
		risks = append(risks, "No profitability figures disclosed yet")
	}
	if age, ok := l.Age(now); ok && age < 3 {
		risks = append(risks, "Short trading history")
	}
	return risks
}

func enrichmentOpportunities(l *listing.Listing) []string {
	var opps []string
	if l.FranchiseOpportunity {
		opps = append(opps, "Franchise model ready for multi-site expansion")
	}
	if l.GrowthOpportunities != "" {
		opps = append(opps, fmt.Sprintf("Seller has identified growth opportunities: %s", l.GrowthOpportunities))
	}
	if l.Relocatable {
		opps = append(opps, "Business can be relocated or run remotely")
	}
	if l.PropertyIncluded {
		opps = append(opps, "Freehold property included in the sale")
	}
	return opps
}

// integrationComplexity counts four structural checks and buckets the
// result.
func integrationComplexity(l *listing.Listing) string {
	checks := 0
	if l.Employees != nil && *l.Employees > 50 {
		checks++
	}
	if len(l.Locations) > 1 {
		checks++
	}
	if l.PropertyIncluded {
		checks++
	}
	if !l.ManagementStaying {
		checks++
	}

	switch {
	case checks <= 1:
		return "low"
	case checks <= 3:
		return "medium"
	default:
		return "high"
	}
}

// estimatedTimeToClose buckets by asking price: bigger deals take longer to
// diligence and finance.
func estimatedTimeToClose(l *listing.Listing) string {
	price, ok := l.Price()
	if !ok {
		return "3-6 months"
	}
	switch {
	case price < 500_000:
		return "2-3 months"
	case price < 2_000_000:
		return "3-6 months"
	case price < 10_000_000:
		return "6-9 months"
	default:
		return "9-12 months"
	}
}
