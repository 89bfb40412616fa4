package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/domain/listing"
)

func TestHeuristicEnrichment(t *testing.T) {
	t.Parallel()

	l := techListing()
	l.ManagementStaying = true
	l.TrainingProvided = true
	p := techBuyer()
	p.Synergies = "shared engineering team"

	enr := testEngine().HeuristicEnrichment(l, p)

	assert.Equal(t, 100, enr.SynergyScore) // 100 alignment + synergies, clamped
	assert.Contains(t, enr.MarketTrends, "Technology")
	assert.Equal(t, 85, enr.CulturalFit)
	assert.NotEmpty(t, enr.EstimatedTimeToClose)
}

func TestHeuristicEnrichment_Risks(t *testing.T) {
	t.Parallel()

	l := &listing.Listing{
		Industry:        "Hospitality",
		AskingPrice:     fp(4_000_000),
		AnnualRevenue:   fp(1_000_000),
		YearEstablished: ip(2025),
	}

	enr := testEngine().HeuristicEnrichment(l, buyer.Profile{})

	// Management leaving, price at 4x revenue, no profit figures, young
	// business: all four risk rules fire.
	assert.Len(t, enr.RiskFactors, 4)
}

func TestIntegrationComplexity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		listing listing.Listing
		want    string
	}{
		{
			name:    "small and simple",
			listing: listing.Listing{ManagementStaying: true},
			want:    "low",
		},
		{
			name: "medium",
			listing: listing.Listing{
				Employees:         ip(80),
				PropertyIncluded:  true,
				ManagementStaying: true,
			},
			want: "medium",
		},
		{
			name: "all four checks",
			listing: listing.Listing{
				Employees:        ip(80),
				Locations:        []string{"Leeds", "York"},
				PropertyIncluded: true,
			},
			want: "high",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, integrationComplexity(&tt.listing))
		})
	}
}

func TestEstimatedTimeToClose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		price *float64
		want  string
	}{
		{nil, "3-6 months"},
		{fp(300_000), "2-3 months"},
		{fp(1_500_000), "3-6 months"},
		{fp(5_000_000), "6-9 months"},
		{fp(25_000_000), "9-12 months"},
	}

	for _, tt := range tests {
		l := listing.Listing{AskingPrice: tt.price}
		assert.Equal(t, tt.want, estimatedTimeToClose(&l))
	}
}

func TestMarketTrendFor_Default(t *testing.T) {
	t.Parallel()

	assert.Equal(t, defaultMarketTrendText, marketTrendFor("Funeral Services"))
	assert.NotEqual(t, defaultMarketTrendText, marketTrendFor("SaaS Analytics"))
}
