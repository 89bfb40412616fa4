package industry

// sectors is the reference table, ordered so that categories appear in a
// stable presentation order.  Multiples reflect typical UK lower-mid-market
// transaction data; they are baselines only and are adjusted per business by
// the valuation engine.
var sectors = []Data{
	// ── Technology ────────────────────────────────────────────────────────────
	{Key: "saas_b2b", Name: "B2B SaaS", Category: "Technology",
		EBITDAMultiple:  MultipleRange{Min: 10, Typical: 15, Max: 22},
		RevenueMultiple: MultipleRange{Min: 3, Typical: 4, Max: 6},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 80},
	{Key: "saas_b2c", Name: "B2C SaaS", Category: "Technology",
		EBITDAMultiple:  MultipleRange{Min: 8, Typical: 12, Max: 18},
		RevenueMultiple: MultipleRange{Min: 2.5, Typical: 3.5, Max: 5},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 75},
	{Key: "software_development", Name: "Software Development", Category: "Technology",
		EBITDAMultiple:  MultipleRange{Min: 6, Typical: 9, Max: 14},
		RevenueMultiple: MultipleRange{Min: 1.5, Typical: 2.2, Max: 3.5},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 60},
	{Key: "it_services", Name: "IT Services & Support", Category: "Technology",
		EBITDAMultiple:  MultipleRange{Min: 5, Typical: 7, Max: 10},
		RevenueMultiple: MultipleRange{Min: 1, Typical: 1.5, Max: 2.5},
		Trend:           TrendStable, DemandLevel: DemandHigh, TypicalGrossMargin: 45},
	{Key: "cybersecurity", Name: "Cybersecurity", Category: "Technology",
		EBITDAMultiple:  MultipleRange{Min: 9, Typical: 13, Max: 20},
		RevenueMultiple: MultipleRange{Min: 2.5, Typical: 3.8, Max: 5.5},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 70},
	{Key: "fintech", Name: "Financial Technology", Category: "Technology",
		EBITDAMultiple:  MultipleRange{Min: 8, Typical: 12, Max: 19},
		RevenueMultiple: MultipleRange{Min: 2, Typical: 3.2, Max: 5},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 65},
	{Key: "ecommerce_platform", Name: "E-commerce Platform", Category: "Technology",
		EBITDAMultiple:  MultipleRange{Min: 6, Typical: 9, Max: 13},
		RevenueMultiple: MultipleRange{Min: 1.2, Typical: 2, Max: 3},
		Trend:           TrendGrowing, DemandLevel: DemandMedium, TypicalGrossMargin: 55},

	// ── Retail ────────────────────────────────────────────────────────────────
	{Key: "retail_general", Name: "General Retail", Category: "Retail",
		EBITDAMultiple:  MultipleRange{Min: 3, Typical: 4.5, Max: 6},
		RevenueMultiple: MultipleRange{Min: 0.3, Typical: 0.5, Max: 0.8},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 35},
	{Key: "ecommerce_store", Name: "Online Store", Category: "Retail",
		EBITDAMultiple:  MultipleRange{Min: 3.5, Typical: 5, Max: 7.5},
		RevenueMultiple: MultipleRange{Min: 0.5, Typical: 0.8, Max: 1.3},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 40},
	{Key: "specialty_retail", Name: "Specialty Retail", Category: "Retail",
		EBITDAMultiple:  MultipleRange{Min: 3, Typical: 4, Max: 5.5},
		RevenueMultiple: MultipleRange{Min: 0.3, Typical: 0.5, Max: 0.7},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 45},
	{Key: "convenience_store", Name: "Convenience Store", Category: "Retail",
		EBITDAMultiple:  MultipleRange{Min: 2.5, Typical: 3.5, Max: 4.5},
		RevenueMultiple: MultipleRange{Min: 0.2, Typical: 0.35, Max: 0.5},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 25},
	{Key: "fashion_retail", Name: "Fashion & Apparel", Category: "Retail",
		EBITDAMultiple:  MultipleRange{Min: 2.5, Typical: 3.5, Max: 5},
		RevenueMultiple: MultipleRange{Min: 0.25, Typical: 0.4, Max: 0.6},
		Trend:           TrendDeclining, DemandLevel: DemandLow, TypicalGrossMargin: 50},

	// ── Hospitality ───────────────────────────────────────────────────────────
	{Key: "restaurant", Name: "Restaurant", Category: "Hospitality",
		EBITDAMultiple:  MultipleRange{Min: 2, Typical: 3, Max: 4.5},
		RevenueMultiple: MultipleRange{Min: 0.3, Typical: 0.45, Max: 0.7},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 65},
	{Key: "cafe", Name: "Café & Coffee Shop", Category: "Hospitality",
		EBITDAMultiple:  MultipleRange{Min: 2, Typical: 2.8, Max: 4},
		RevenueMultiple: MultipleRange{Min: 0.3, Typical: 0.45, Max: 0.65},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 70},
	{Key: "pub_bar", Name: "Pub & Bar", Category: "Hospitality",
		EBITDAMultiple:  MultipleRange{Min: 2.5, Typical: 3.5, Max: 5},
		RevenueMultiple: MultipleRange{Min: 0.4, Typical: 0.6, Max: 0.9},
		Trend:           TrendDeclining, DemandLevel: DemandMedium, TypicalGrossMargin: 60},
	{Key: "hotel_bnb", Name: "Hotel & B&B", Category: "Hospitality",
		EBITDAMultiple:  MultipleRange{Min: 3, Typical: 4.5, Max: 7},
		RevenueMultiple: MultipleRange{Min: 0.8, Typical: 1.2, Max: 2},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 55},
	{Key: "catering", Name: "Catering Services", Category: "Hospitality",
		EBITDAMultiple:  MultipleRange{Min: 2.5, Typical: 3.5, Max: 5},
		RevenueMultiple: MultipleRange{Min: 0.35, Typical: 0.5, Max: 0.75},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 50},
	{Key: "travel_agency", Name: "Travel Agency", Category: "Hospitality",
		EBITDAMultiple:  MultipleRange{Min: 2, Typical: 3, Max: 4.5},
		RevenueMultiple: MultipleRange{Min: 0.2, Typical: 0.35, Max: 0.55},
		Trend:           TrendDeclining, DemandLevel: DemandLow, TypicalGrossMargin: 30},

	// ── Healthcare ────────────────────────────────────────────────────────────
	{Key: "healthcare_services", Name: "Healthcare Services", Category: "Healthcare",
		EBITDAMultiple:  MultipleRange{Min: 5, Typical: 7, Max: 10},
		RevenueMultiple: MultipleRange{Min: 1, Typical: 1.5, Max: 2.2},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 45},
	{Key: "dental_practice", Name: "Dental Practice", Category: "Healthcare",
		EBITDAMultiple:  MultipleRange{Min: 4.5, Typical: 6, Max: 8.5},
		RevenueMultiple: MultipleRange{Min: 0.9, Typical: 1.3, Max: 1.9},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 50},
	{Key: "pharmacy", Name: "Pharmacy", Category: "Healthcare",
		EBITDAMultiple:  MultipleRange{Min: 4, Typical: 5.5, Max: 7.5},
		RevenueMultiple: MultipleRange{Min: 0.5, Typical: 0.8, Max: 1.2},
		Trend:           TrendStable, DemandLevel: DemandHigh, TypicalGrossMargin: 30},
	{Key: "care_home", Name: "Care Home", Category: "Healthcare",
		EBITDAMultiple:  MultipleRange{Min: 5, Typical: 7, Max: 9.5},
		RevenueMultiple: MultipleRange{Min: 1, Typical: 1.5, Max: 2.1},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 40},
	{Key: "veterinary", Name: "Veterinary Practice", Category: "Healthcare",
		EBITDAMultiple:  MultipleRange{Min: 5, Typical: 7, Max: 10},
		RevenueMultiple: MultipleRange{Min: 1, Typical: 1.4, Max: 2},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 55},
	{Key: "fitness_gym", Name: "Gym & Fitness Studio", Category: "Healthcare",
		EBITDAMultiple:  MultipleRange{Min: 2.5, Typical: 3.5, Max: 5},
		RevenueMultiple: MultipleRange{Min: 0.6, Typical: 0.9, Max: 1.4},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 65},

	// ── Professional Services ─────────────────────────────────────────────────
	{Key: "accounting_practice", Name: "Accounting Practice", Category: "Professional Services",
		EBITDAMultiple:  MultipleRange{Min: 4, Typical: 5.5, Max: 7.5},
		RevenueMultiple: MultipleRange{Min: 0.8, Typical: 1.1, Max: 1.5},
		Trend:           TrendStable, DemandLevel: DemandHigh, TypicalGrossMargin: 55},
	{Key: "legal_practice", Name: "Legal Practice", Category: "Professional Services",
		EBITDAMultiple:  MultipleRange{Min: 3.5, Typical: 5, Max: 7},
		RevenueMultiple: MultipleRange{Min: 0.7, Typical: 1, Max: 1.4},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 60},
	{Key: "marketing_agency", Name: "Marketing Agency", Category: "Professional Services",
		EBITDAMultiple:  MultipleRange{Min: 3.5, Typical: 5, Max: 7.5},
		RevenueMultiple: MultipleRange{Min: 0.6, Typical: 1, Max: 1.6},
		Trend:           TrendGrowing, DemandLevel: DemandMedium, TypicalGrossMargin: 50},
	{Key: "recruitment_agency", Name: "Recruitment Agency", Category: "Professional Services",
		EBITDAMultiple:  MultipleRange{Min: 3, Typical: 4.5, Max: 6.5},
		RevenueMultiple: MultipleRange{Min: 0.4, Typical: 0.7, Max: 1.1},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 40},
	{Key: "consulting", Name: "Management Consulting", Category: "Professional Services",
		EBITDAMultiple:  MultipleRange{Min: 4, Typical: 5.5, Max: 8},
		RevenueMultiple: MultipleRange{Min: 0.8, Typical: 1.2, Max: 1.8},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 55},
	{Key: "estate_agency", Name: "Estate Agency", Category: "Professional Services",
		EBITDAMultiple:  MultipleRange{Min: 2.5, Typical: 3.5, Max: 5},
		RevenueMultiple: MultipleRange{Min: 0.5, Typical: 0.8, Max: 1.2},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 60},

	// ── Manufacturing ─────────────────────────────────────────────────────────
	{Key: "manufacturing_general", Name: "General Manufacturing", Category: "Manufacturing",
		EBITDAMultiple:  MultipleRange{Min: 4, Typical: 5.5, Max: 8},
		RevenueMultiple: MultipleRange{Min: 0.5, Typical: 0.8, Max: 1.3},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 30},
	{Key: "food_production", Name: "Food & Beverage Production", Category: "Manufacturing",
		EBITDAMultiple:  MultipleRange{Min: 4.5, Typical: 6, Max: 8.5},
		RevenueMultiple: MultipleRange{Min: 0.6, Typical: 0.9, Max: 1.4},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 35},
	{Key: "engineering", Name: "Precision Engineering", Category: "Manufacturing",
		EBITDAMultiple:  MultipleRange{Min: 4, Typical: 5.5, Max: 8},
		RevenueMultiple: MultipleRange{Min: 0.5, Typical: 0.85, Max: 1.3},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 35},
	{Key: "printing", Name: "Printing & Signage", Category: "Manufacturing",
		EBITDAMultiple:  MultipleRange{Min: 2.5, Typical: 3.5, Max: 5},
		RevenueMultiple: MultipleRange{Min: 0.3, Typical: 0.5, Max: 0.8},
		Trend:           TrendDeclining, DemandLevel: DemandLow, TypicalGrossMargin: 40},
	{Key: "packaging", Name: "Packaging", Category: "Manufacturing",
		EBITDAMultiple:  MultipleRange{Min: 4, Typical: 5.5, Max: 7.5},
		RevenueMultiple: MultipleRange{Min: 0.5, Typical: 0.8, Max: 1.2},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 30},

	// ── Construction & Trades ─────────────────────────────────────────────────
	{Key: "construction_general", Name: "General Construction", Category: "Construction & Trades",
		EBITDAMultiple:  MultipleRange{Min: 2.5, Typical: 3.5, Max: 5},
		RevenueMultiple: MultipleRange{Min: 0.25, Typical: 0.4, Max: 0.65},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 20},
	{Key: "plumbing_hvac", Name: "Plumbing & HVAC", Category: "Construction & Trades",
		EBITDAMultiple:  MultipleRange{Min: 3, Typical: 4, Max: 5.5},
		RevenueMultiple: MultipleRange{Min: 0.4, Typical: 0.6, Max: 0.9},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 35},
	{Key: "electrical_contracting", Name: "Electrical Contracting", Category: "Construction & Trades",
		EBITDAMultiple:  MultipleRange{Min: 3, Typical: 4, Max: 5.5},
		RevenueMultiple: MultipleRange{Min: 0.4, Typical: 0.6, Max: 0.9},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 35},
	{Key: "landscaping_gardening", Name: "Landscaping & Gardening", Category: "Construction & Trades",
		EBITDAMultiple:  MultipleRange{Min: 2.5, Typical: 3.5, Max: 4.5},
		RevenueMultiple: MultipleRange{Min: 0.4, Typical: 0.55, Max: 0.8},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 45},

	// ── Transport & Logistics ─────────────────────────────────────────────────
	{Key: "logistics_haulage", Name: "Logistics & Haulage", Category: "Transport & Logistics",
		EBITDAMultiple:  MultipleRange{Min: 3, Typical: 4.5, Max: 6.5},
		RevenueMultiple: MultipleRange{Min: 0.35, Typical: 0.55, Max: 0.85},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 20},
	{Key: "courier_delivery", Name: "Courier & Delivery", Category: "Transport & Logistics",
		EBITDAMultiple:  MultipleRange{Min: 2.5, Typical: 3.5, Max: 5},
		RevenueMultiple: MultipleRange{Min: 0.3, Typical: 0.5, Max: 0.75},
		Trend:           TrendGrowing, DemandLevel: DemandMedium, TypicalGrossMargin: 25},
	{Key: "taxi_private_hire", Name: "Taxi & Private Hire", Category: "Transport & Logistics",
		EBITDAMultiple:  MultipleRange{Min: 2, Typical: 3, Max: 4},
		RevenueMultiple: MultipleRange{Min: 0.3, Typical: 0.45, Max: 0.65},
		Trend:           TrendDeclining, DemandLevel: DemandLow, TypicalGrossMargin: 30},

	// ── Education & Childcare ─────────────────────────────────────────────────
	{Key: "education_training", Name: "Education & Training", Category: "Education & Childcare",
		EBITDAMultiple:  MultipleRange{Min: 3.5, Typical: 5, Max: 7},
		RevenueMultiple: MultipleRange{Min: 0.7, Typical: 1, Max: 1.5},
		Trend:           TrendGrowing, DemandLevel: DemandMedium, TypicalGrossMargin: 50},
	{Key: "childcare_nursery", Name: "Childcare & Nursery", Category: "Education & Childcare",
		EBITDAMultiple:  MultipleRange{Min: 4, Typical: 5.5, Max: 7.5},
		RevenueMultiple: MultipleRange{Min: 0.9, Typical: 1.3, Max: 1.8},
		Trend:           TrendGrowing, DemandLevel: DemandHigh, TypicalGrossMargin: 40},
	{Key: "driving_school", Name: "Driving School", Category: "Education & Childcare",
		EBITDAMultiple:  MultipleRange{Min: 2, Typical: 2.8, Max: 3.8},
		RevenueMultiple: MultipleRange{Min: 0.35, Typical: 0.5, Max: 0.7},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 55},

	// ── Automotive ────────────────────────────────────────────────────────────
	{Key: "car_dealership", Name: "Car Dealership", Category: "Automotive",
		EBITDAMultiple:  MultipleRange{Min: 3, Typical: 4, Max: 5.5},
		RevenueMultiple: MultipleRange{Min: 0.15, Typical: 0.25, Max: 0.4},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 12},
	{Key: "garage_mot", Name: "Garage & MOT Centre", Category: "Automotive",
		EBITDAMultiple:  MultipleRange{Min: 2.5, Typical: 3.5, Max: 4.5},
		RevenueMultiple: MultipleRange{Min: 0.4, Typical: 0.6, Max: 0.85},
		Trend:           TrendStable, DemandLevel: DemandMedium, TypicalGrossMargin: 45},
	{Key: "car_wash_valeting", Name: "Car Wash & Valeting", Category: "Automotive",
		EBITDAMultiple:  MultipleRange{Min: 2, Typical: 2.8, Max: 3.8},
		RevenueMultiple: MultipleRange{Min: 0.5, Typical: 0.7, Max: 1},
		Trend:           TrendStable, DemandLevel: DemandLow, TypicalGrossMargin: 60},
}

// byKey is built once at init for O(1) sector lookup.
var byKey = func() map[string]*Data {
	m := make(map[string]*Data, len(sectors))
	for i := range sectors {
		m[sectors[i].Key] = &sectors[i]
	}
	return m
}()

// Lookup returns the sector entry for key, or ok=false if the key is not in
// the reference table.  Callers fall back to default multiples on a miss;
// an unknown sector is never an error.
func Lookup(key string) (Data, bool) {
	d, ok := byKey[key]
	if !ok {
		return Data{}, false
	}
	return *d, true
}

// AllCategories returns the distinct category names in order of first
// occurrence in the table.
func AllCategories() []string {
	seen := make(map[string]bool, 16)
	var out []string
	for i := range sectors {
		c := sectors[i].Category
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// ByCategory returns all sectors in the given category, in table order.
// Returns an empty slice for an unknown category.
func ByCategory(category string) []Data {
	out := make([]Data, 0, 8)
	for i := range sectors {
		if sectors[i].Category == category {
			out = append(out, sectors[i])
		}
	}
	return out
}
