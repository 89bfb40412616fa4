package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestListing_Age(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	l := &Listing{YearEstablished: intp(2016)}
	age, ok := l.Age(now)
	assert.True(t, ok)
	assert.Equal(t, 10, age)

	_, ok = (&Listing{}).Age(now)
	assert.False(t, ok)

	_, ok = (&Listing{YearEstablished: intp(0)}).Age(now)
	assert.False(t, ok)
}

func TestListing_Price(t *testing.T) {
	p, ok := (&Listing{AskingPrice: floatp(2_500_000), MinimumPrice: floatp(2_000_000)}).Price()
	assert.True(t, ok)
	assert.Equal(t, 2_500_000.0, p)

	p, ok = (&Listing{MinimumPrice: floatp(2_000_000)}).Price()
	assert.True(t, ok)
	assert.Equal(t, 2_000_000.0, p)

	_, ok = (&Listing{}).Price()
	assert.False(t, ok)
}
