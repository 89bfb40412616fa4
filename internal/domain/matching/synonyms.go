package matching

import "strings"

// relatedIndustries groups industry names that buyers commonly treat as
// interchangeable.  Simplified fixed table; a real taxonomy service would
// replace this.
var relatedIndustries = [][]string{
	{"technology", "software", "saas", "it services", "fintech", "ecommerce"},
	{"retail", "ecommerce", "wholesale", "consumer goods"},
	{"hospitality", "restaurant", "cafe", "hotel", "catering", "leisure"},
	{"manufacturing", "engineering", "industrial", "production"},
	{"healthcare", "medical", "dental", "care", "pharmacy", "veterinary"},
	{"finance", "accounting", "insurance", "fintech"},
	{"construction", "building", "trades", "property"},
	{"transport", "logistics", "haulage", "delivery"},
}

// industriesRelated reports whether two industry names fall in the same
// synonym group.
func industriesRelated(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == "" || lb == "" {
		return false
	}
	for _, group := range relatedIndustries {
		var hasA, hasB bool
		for _, term := range group {
			if strings.Contains(la, term) {
				hasA = true
			}
			if strings.Contains(lb, term) {
				hasB = true
			}
		}
		if hasA && hasB {
			return true
		}
	}
	return false
}

// growthBonuses is the per-industry bonus added by the growth-potential
// factor, checked in order; the first matching term wins.  Industries not
// listed get defaultGrowthBonus.
var growthBonuses = []struct {
	term  string
	bonus int
}{
	{"technology", 15},
	{"software", 15},
	{"saas", 15},
	{"ecommerce", 12},
	{"healthcare", 10},
	{"fintech", 10},
	{"education", 8},
	{"fitness", 8},
	{"logistics", 8},
}

const defaultGrowthBonus = 5

func growthBonusFor(industryName string) int {
	lower := strings.ToLower(industryName)
	for _, gb := range growthBonuses {
		if strings.Contains(lower, gb.term) {
			return gb.bonus
		}
	}
	return defaultGrowthBonus
}
