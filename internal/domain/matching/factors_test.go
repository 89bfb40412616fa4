package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/domain/listing"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func fixedClock() func() time.Time {
	t := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func testEngine() *Engine {
	return NewEngine(WithClock(fixedClock()))
}

func TestIndustryAlignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		listing listing.Listing
		profile buyer.Profile
		want    int
	}{
		{
			name:    "exact industry match",
			listing: listing.Listing{Industry: "Technology"},
			profile: buyer.Profile{Industries: []string{"Technology"}},
			want:    100,
		},
		{
			name:    "exact match is case-insensitive",
			listing: listing.Listing{Industry: "technology"},
			profile: buyer.Profile{Industries: []string{"Technology"}},
			want:    100,
		},
		{
			name:    "sub-industry match",
			listing: listing.Listing{Industry: "Technology", SubIndustry: "Fintech"},
			profile: buyer.Profile{Industries: []string{"Fintech"}},
			want:    85,
		},
		{
			name:    "related industry",
			listing: listing.Listing{Industry: "Software"},
			profile: buyer.Profile{Industries: []string{"Technology"}},
			want:    70,
		},
		{
			name:    "unrelated industry",
			listing: listing.Listing{Industry: "Hospitality"},
			profile: buyer.Profile{Industries: []string{"Manufacturing"}},
			want:    0,
		},
		{
			name:    "no buyer industries is neutral",
			listing: listing.Listing{Industry: "Technology"},
			profile: buyer.Profile{},
			want:    50,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, industryAlignment(&tt.listing, tt.profile))
		})
	}
}

func TestIndustryAlignment_SubIndustry(t *testing.T) {
	t.Parallel()

	// Sub-industry hit without exact or related industry overlap.
	l := listing.Listing{Industry: "Leisure Services", SubIndustry: "Fitness"}
	p := buyer.Profile{Industries: []string{"Fitness"}}
	assert.Equal(t, 85, industryAlignment(&l, p))
}

func TestBudgetFit(t *testing.T) {
	t.Parallel()
	e := testEngine()

	budget := buyer.Profile{MinBudget: fp(1_000_000), MaxBudget: fp(3_000_000)}

	tests := []struct {
		name    string
		listing listing.Listing
		profile buyer.Profile
		check   func(t *testing.T, got int)
	}{
		{
			name:    "no price is neutral regardless of budget",
			listing: listing.Listing{},
			profile: budget,
			check:   func(t *testing.T, got int) { assert.Equal(t, 50, got) },
		},
		{
			name:    "no buyer budget is neutral",
			listing: listing.Listing{AskingPrice: fp(2_000_000)},
			profile: buyer.Profile{},
			check:   func(t *testing.T, got int) { assert.Equal(t, 50, got) },
		},
		{
			name:    "price at midpoint scores 100",
			listing: listing.Listing{AskingPrice: fp(2_000_000)},
			profile: budget,
			check:   func(t *testing.T, got int) { assert.Equal(t, 100, got) },
		},
		{
			name:    "price at range edge still scores 70",
			listing: listing.Listing{AskingPrice: fp(3_000_000)},
			profile: budget,
			check:   func(t *testing.T, got int) { assert.Equal(t, 70, got) },
		},
		{
			name:    "price inside flex band scores 50-70",
			listing: listing.Listing{AskingPrice: fp(3_150_000)},
			profile: budget,
			check: func(t *testing.T, got int) {
				assert.GreaterOrEqual(t, got, 50)
				assert.Less(t, got, 70)
			},
		},
		{
			name:    "price far beyond flex band decays toward zero",
			listing: listing.Listing{AskingPrice: fp(9_000_000)},
			profile: budget,
			check:   func(t *testing.T, got int) { assert.Less(t, got, 20) },
		},
		{
			name:    "minimum price used when no asking price",
			listing: listing.Listing{MinimumPrice: fp(2_000_000)},
			profile: budget,
			check:   func(t *testing.T, got int) { assert.Equal(t, 100, got) },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, e.budgetFit(&tt.listing, tt.profile))
		})
	}
}

func TestLocationMatch(t *testing.T) {
	t.Parallel()
	e := testEngine()

	tests := []struct {
		name    string
		listing listing.Listing
		profile buyer.Profile
		want    int
	}{
		{
			name:    "no preference is neutral",
			listing: listing.Listing{Location: "London, UK"},
			profile: buyer.Profile{},
			want:    75,
		},
		{
			name:    "exact match",
			listing: listing.Listing{Location: "London, UK"},
			profile: buyer.Profile{PreferredLocations: []string{"London, UK"}},
			want:    100,
		},
		{
			name:    "secondary location match",
			listing: listing.Listing{Location: "Leeds", Locations: []string{"Manchester", "Liverpool"}},
			profile: buyer.Profile{PreferredLocations: []string{"Manchester"}},
			want:    95,
		},
		{
			name:    "exact flexibility with no match",
			listing: listing.Listing{Location: "Leeds"},
			profile: buyer.Profile{PreferredLocations: []string{"Bristol"}, LocationFlexibility: buyer.FlexibilityExact},
			want:    0,
		},
		{
			name:    "region flexibility with same region",
			listing: listing.Listing{Location: "Croydon"},
			profile: buyer.Profile{PreferredLocations: []string{"London"}, LocationFlexibility: buyer.FlexibilityRegion},
			want:    75,
		},
		{
			name:    "region flexibility with different region",
			listing: listing.Listing{Location: "Glasgow"},
			profile: buyer.Profile{PreferredLocations: []string{"London"}, LocationFlexibility: buyer.FlexibilityRegion},
			want:    25,
		},
		{
			name:    "country flexibility",
			listing: listing.Listing{Location: "Leeds"},
			profile: buyer.Profile{PreferredLocations: []string{"Bristol"}, LocationFlexibility: buyer.FlexibilityCountry},
			want:    50,
		},
		{
			name:    "any flexibility",
			listing: listing.Listing{Location: "Leeds"},
			profile: buyer.Profile{PreferredLocations: []string{"Bristol"}, LocationFlexibility: buyer.FlexibilityAny},
			want:    75,
		},
		{
			name:    "unrecognized flexibility",
			listing: listing.Listing{Location: "Leeds"},
			profile: buyer.Profile{PreferredLocations: []string{"Bristol"}},
			want:    25,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, e.locationMatch(&tt.listing, tt.profile))
		})
	}
}

func TestRevenueMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		listing listing.Listing
		profile buyer.Profile
		want    int
	}{
		{
			name:    "no revenue is neutral",
			profile: buyer.Profile{MinRevenue: fp(500_000)},
			want:    50,
		},
		{
			name:    "no preference",
			listing: listing.Listing{AnnualRevenue: fp(800_000)},
			want:    75,
		},
		{
			name:    "inside range",
			listing: listing.Listing{AnnualRevenue: fp(800_000)},
			profile: buyer.Profile{MinRevenue: fp(500_000), MaxRevenue: fp(1_000_000)},
			want:    100,
		},
		{
			name:    "half the minimum scores 50",
			listing: listing.Listing{AnnualRevenue: fp(500_000)},
			profile: buyer.Profile{MinRevenue: fp(1_000_000)},
			want:    50,
		},
		{
			name:    "double the maximum scores 50",
			listing: listing.Listing{AnnualRevenue: fp(2_000_000)},
			profile: buyer.Profile{MaxRevenue: fp(1_000_000)},
			want:    50,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, revenueMatch(&tt.listing, tt.profile))
		})
	}
}

func TestProfitabilityMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		listing listing.Listing
		profile buyer.Profile
		want    int
	}{
		{
			name: "no profit data is neutral",
			want: 50,
		},
		{
			name:    "profitable with strong margin",
			listing: listing.Listing{EBITDA: fp(200_000), AnnualRevenue: fp(850_000)},
			want:    85, // 75 base + 10 margin bonus (23.5%)
		},
		{
			name:    "unprofitable",
			listing: listing.Listing{EBITDA: fp(-50_000), AnnualRevenue: fp(850_000)},
			want:    20, // 30 base − 10 thin-margin penalty
		},
		{
			name:    "below buyer minimum scales down",
			listing: listing.Listing{EBITDA: fp(100_000)},
			profile: buyer.Profile{MinEBITDA: fp(200_000)},
			want:    38, // 75 × 100k/200k rounded
		},
		{
			name:    "above buyer maximum caps at 90",
			listing: listing.Listing{EBITDA: fp(900_000)},
			profile: buyer.Profile{MaxEBITDA: fp(500_000)},
			want:    90,
		},
		{
			name:    "annual profit used when no EBITDA",
			listing: listing.Listing{AnnualProfit: fp(150_000), AnnualRevenue: fp(1_000_000)},
			want:    80, // 75 base + 5 (15% margin)
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, profitabilityMatch(&tt.listing, tt.profile))
		})
	}
}

func TestSizeMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		listing listing.Listing
		profile buyer.Profile
		want    int
	}{
		{name: "no employee data", want: 70},
		{
			name:    "no preference",
			listing: listing.Listing{Employees: ip(30)},
			want:    80,
		},
		{
			name:    "inside range",
			listing: listing.Listing{Employees: ip(30)},
			profile: buyer.Profile{MinEmployees: ip(10), MaxEmployees: ip(100)},
			want:    100,
		},
		{
			name:    "far below minimum floors at 50",
			listing: listing.Listing{Employees: ip(5)},
			profile: buyer.Profile{MinEmployees: ip(100)},
			want:    50,
		},
		{
			name:    "slightly above maximum scales",
			listing: listing.Listing{Employees: ip(125)},
			profile: buyer.Profile{MaxEmployees: ip(100)},
			want:    80,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sizeMatch(&tt.listing, tt.profile))
		})
	}
}

func TestGrowthPotential(t *testing.T) {
	t.Parallel()
	e := testEngine()

	// Everything positive and young: clamped at 100.
	l := listing.Listing{
		Industry:             "Technology",
		FranchiseOpportunity: true,
		Relocatable:          true,
		GrowthOpportunities:  "untapped corporate market",
		YearEstablished:      ip(2024),
	}
	assert.Equal(t, 100, e.growthPotential(&l))

	// Old business in a slow sector: 50 − 5 + 5.
	old := listing.Listing{Industry: "Printing", YearEstablished: ip(1985)}
	assert.Equal(t, 50, e.growthPotential(&old))
}

func TestStrategicFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		listing listing.Listing
		profile buyer.Profile
		want    int
	}{
		{name: "bare listing and profile", want: 50},
		{
			name:    "management stay preference met",
			listing: listing.Listing{ManagementStaying: true},
			profile: buyer.Profile{ManagementStay: buyer.PreferenceRequired},
			want:    70,
		},
		{
			name:    "management stay preference missed",
			profile: buyer.Profile{ManagementStay: buyer.PreferenceRequired},
			want:    30,
		},
		{
			name:    "property required but absent",
			profile: buyer.Profile{PropertyIncluded: buyer.PreferenceRequired},
			want:    20,
		},
		{
			name:    "property preferred and present",
			listing: listing.Listing{PropertyIncluded: true},
			profile: buyer.Profile{PropertyIncluded: buyer.PreferencePreferred},
			want:    65,
		},
		{
			name:    "property present without preference",
			listing: listing.Listing{PropertyIncluded: true},
			want:    60,
		},
		{
			name:    "training and synergies",
			listing: listing.Listing{TrainingProvided: true},
			profile: buyer.Profile{Synergies: "shared back office"},
			want:    70,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, strategicFit(&tt.listing, tt.profile))
		})
	}
}

func TestRegionTable(t *testing.T) {
	t.Parallel()
	rt := DefaultUKRegions()

	assert.True(t, rt.sameRegion("Croydon", "London"))
	assert.True(t, rt.sameRegion("Central Manchester", "Liverpool"))
	assert.False(t, rt.sameRegion("Glasgow", "Cardiff"))
	assert.False(t, rt.sameRegion("", "London"))
	assert.Equal(t, "", rt.regionOf("Timbuktu"))
}
