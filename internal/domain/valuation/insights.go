package valuation

import "time"

// generateInsights derives strengths, weaknesses, opportunities, and
// recommendations from fixed threshold checks on the input fields.  Each
// rule is independent; only list order depends on evaluation order.
func generateInsights(data *StepData, now time.Time) (strengths, weaknesses, opportunities, recommendations []string) {
	if r := data.RecurringRevenuePercentage; r != nil {
		switch {
		case *r > 60:
			strengths = append(strengths, "Strong recurring revenue base provides predictable cash flow")
		case *r < 20:
			weaknesses = append(weaknesses, "Low recurring revenue makes future income less predictable")
			recommendations = append(recommendations, "Build contracted or subscription revenue to improve valuation multiples")
		}
	}

	if c := data.TopCustomerPercentage; c != nil {
		switch {
		case *c > 40:
			weaknesses = append(weaknesses, "Heavy dependence on a single customer is a significant buyer risk")
			recommendations = append(recommendations, "Diversify the customer base to reduce concentration risk")
		case *c < 15:
			strengths = append(strengths, "Well-diversified customer base with no single point of failure")
		}
	}

	if g := data.GrowthRate; g != nil {
		switch {
		case *g > 20:
			strengths = append(strengths, "Above-market growth rate supports a premium valuation")
		case *g < 0:
			weaknesses = append(weaknesses, "Declining revenue will weigh on buyer appetite")
			recommendations = append(recommendations, "Stabilise revenue before going to market; buyers discount negative trends heavily")
		}
	}

	if m := data.ProfitMargin; m != nil {
		switch {
		case *m > 25:
			strengths = append(strengths, "Healthy margins well above the small-business norm")
		case *m < 8:
			weaknesses = append(weaknesses, "Thin margins leave little room for post-acquisition investment")
			recommendations = append(recommendations, "Review pricing and cost base to lift margins ahead of a sale")
		}
	}

	if years, ok := yearsInOperation(data, now); ok {
		switch {
		case years > 10:
			strengths = append(strengths, "Long operating history demonstrates business resilience")
		case years < 3:
			weaknesses = append(weaknesses, "Short trading history limits the evidence buyers can rely on")
		}
	}

	switch data.OwnerInvolvement {
	case OwnerPassive:
		strengths = append(strengths, "Business runs without day-to-day owner involvement")
	case OwnerFullTime:
		weaknesses = append(weaknesses, "Heavy owner involvement creates key-person risk for a buyer")
		recommendations = append(recommendations, "Document processes and delegate owner responsibilities to strengthen the handover story")
	}

	for _, asset := range data.KeyAssets {
		switch asset {
		case "patents", "intellectual_property":
			strengths = append(strengths, "Proprietary intellectual property creates a defensible moat")
		case "real_estate":
			opportunities = append(opportunities, "Freehold property can be sold with the business or retained for rental income")
		case "customer_database":
			opportunities = append(opportunities, "Customer database offers cross-sell potential to an acquirer")
		}
	}

	if g := data.GrowthRate; g != nil && *g > 10 {
		opportunities = append(opportunities, "Current growth trajectory gives an acquirer a ready expansion story")
	}
	if r := data.RecurringRevenuePercentage; r != nil && *r > 40 && *r <= 60 {
		opportunities = append(opportunities, "Converting more revenue to recurring contracts would lift the multiple")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Prepare three years of clean financial records before engaging buyers")
	}

	return strengths, weaknesses, opportunities, recommendations
}
