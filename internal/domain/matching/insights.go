package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/domain/listing"
)

// factorInsights turns factor scores into strength/weakness statements using
// fixed thresholds.
func factorInsights(f Factors) (strengths, weaknesses []string) {
	if f.IndustryAlignment >= 85 {
		strengths = append(strengths, "Business operates in one of your target industries")
	} else if f.IndustryAlignment < 50 {
		weaknesses = append(weaknesses, "Business is outside your stated industries")
	}

	if f.BudgetFit >= 80 {
		strengths = append(strengths, "Asking price sits comfortably within your budget")
	} else if f.BudgetFit < 50 {
		weaknesses = append(weaknesses, "Asking price is a stretch for your stated budget")
	}

	if f.LocationMatch >= 90 {
		strengths = append(strengths, "Location matches your preferred areas")
	} else if f.LocationMatch < 40 {
		weaknesses = append(weaknesses, "Location is outside your preferred areas")
	}

	if f.RevenueMatch >= 85 {
		strengths = append(strengths, "Revenue is in your target range")
	} else if f.RevenueMatch < 50 {
		weaknesses = append(weaknesses, "Revenue falls outside your target range")
	}

	if f.ProfitabilityMatch >= 80 {
		strengths = append(strengths, "Healthy profitability for a business of this size")
	} else if f.ProfitabilityMatch < 50 {
		weaknesses = append(weaknesses, "Profitability is below what you are looking for")
	}

	if f.GrowthPotential >= 75 {
		strengths = append(strengths, "Clear growth levers available to a new owner")
	}

	if f.StrategicFit >= 75 {
		strengths = append(strengths, "Deal structure aligns well with your acquisition preferences")
	} else if f.StrategicFit < 40 {
		weaknesses = append(weaknesses, "Deal structure conflicts with several of your preferences")
	}

	return strengths, weaknesses
}

// recommendations derives next-step suggestions from cross-factor rules.
func recommendations(l *listing.Listing, f Factors) []string {
	var recs []string

	if f.BudgetFit > 40 && f.BudgetFit < 70 {
		recs = append(recs, "Consider opening negotiations on price; the asking price is close to your range")
	}
	if l.ManagementStaying {
		recs = append(recs, "Leverage the existing management team to de-risk the transition")
	}
	if l.TrainingProvided {
		recs = append(recs, "Ask the seller to detail the handover training they will provide")
	}
	if f.IndustryAlignment < 70 && f.GrowthPotential >= 70 {
		recs = append(recs, "Outside your usual sector, but the growth profile may justify a closer look")
	}
	if l.NDARequired {
		recs = append(recs, "Sign the NDA early to unlock the full financial disclosure")
	}

	return recs
}

// factorNames maps display names for the reasoning paragraph, paired with
// score extractors so top factors can be ranked.
var factorNames = []struct {
	name  string
	score func(Factors) int
}{
	{"industry alignment", func(f Factors) int { return f.IndustryAlignment }},
	{"budget fit", func(f Factors) int { return f.BudgetFit }},
	{"location", func(f Factors) int { return f.LocationMatch }},
	{"revenue fit", func(f Factors) int { return f.RevenueMatch }},
	{"profitability", func(f Factors) int { return f.ProfitabilityMatch }},
	{"company size", func(f Factors) int { return f.SizeMatch }},
	{"growth potential", func(f Factors) int { return f.GrowthPotential }},
	{"strategic fit", func(f Factors) int { return f.StrategicFit }},
}

// reasoning builds the short templated summary paragraph: overall tier, the
// two strongest factors, and any special combinations worth calling out.
func reasoning(l *listing.Listing, p buyer.Profile, f Factors, total int) string {
	var tier string
	switch {
	case total >= 80:
		tier = "an excellent"
	case total >= 65:
		tier = "a good"
	case total >= 50:
		tier = "a moderate"
	default:
		tier = "a weak"
	}

	ranked := make([]struct {
		name  string
		score int
	}, len(factorNames))
	for i, fn := range factorNames {
		ranked[i].name = fn.name
		ranked[i].score = fn.score(f)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var b strings.Builder
	fmt.Fprintf(&b, "This is %s match (%d/100). The strongest areas are %s (%d) and %s (%d).",
		tier, total, ranked[0].name, ranked[0].score, ranked[1].name, ranked[1].score)

	if f.BudgetFit >= 80 && f.IndustryAlignment >= 85 {
		b.WriteString(" The combination of in-budget pricing and industry experience makes this a standout opportunity.")
	}
	if l.NDARequired && p.Verified {
		b.WriteString(" As a verified buyer you can request NDA access to the full financials immediately.")
	}

	return b.String()
}
