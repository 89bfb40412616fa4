package valuation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealbridge/dealbridge/internal/cache"
	"github.com/dealbridge/dealbridge/internal/domain/valuation"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

type fakeRecordRepo struct {
	mu      sync.Mutex
	created []*valuation.Record
}

func (r *fakeRecordRepo) Create(_ context.Context, rec *valuation.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = common.NewID()
	r.created = append(r.created, rec)
	return nil
}

func (r *fakeRecordRepo) GetByID(_ context.Context, id common.ID) (*valuation.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.created {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, apperrors.New(apperrors.ErrCodeValuationNotFound, "valuation not found")
}

func (r *fakeRecordRepo) ListByListing(context.Context, common.ID) ([]*valuation.Record, error) {
	return nil, nil
}

func (r *fakeRecordRepo) ListByUser(context.Context, common.ID, common.Pagination) ([]*valuation.Record, error) {
	return nil, nil
}

type capturingPublisher struct {
	mu   sync.Mutex
	msgs []*common.ProducerMessage
}

func (p *capturingPublisher) Publish(_ context.Context, msg *common.ProducerMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func saasInput() *CalculateInput {
	return &CalculateInput{
		UserID: common.NewID().String(),
		Data: valuation.StepData{
			Sector:                     "saas_b2b",
			AnnualRevenue:              common.Float64Ptr(1150000),
			ProfitType:                 "ebitda",
			ProfitValue:                common.Float64Ptr(200000),
			GrowthRate:                 common.Float64Ptr(25),
			RecurringRevenuePercentage: common.Float64Ptr(85),
		},
	}
}

func newTestService(t *testing.T) (Service, *fakeRecordRepo, *cache.MemoryStore, *capturingPublisher) {
	t.Helper()
	repo := &fakeRecordRepo{}
	store := cache.NewMemoryStore()
	events := &capturingPublisher{}
	svc := NewService(repo, valuation.NewEngine(), store, events, nil,
		logging.NewNopLogger(), Config{EventsTopic: "marketplace.events"})
	return svc, repo, store, events
}

func TestService_Calculate_RequiresSector(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Calculate(context.Background(), &CalculateInput{})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValuationDataInsufficient))
}

func TestService_Calculate_CachesByFingerprint(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Calculate(ctx, saasInput())
	require.NoError(t, err)
	assert.Positive(t, first.ValuationRange.Typical)

	// Identical inputs come back from the cache: identical result, no
	// fresh comparable generation.
	second, err := svc.Calculate(ctx, saasInput())
	require.NoError(t, err)
	assert.Equal(t, first.ValuationRange, second.ValuationRange)
	assert.Equal(t, first.Comparables, second.Comparables)

	// Changed inputs miss the cache.
	changed := saasInput()
	changed.Data.AnnualRevenue = common.Float64Ptr(2300000)
	third, err := svc.Calculate(ctx, changed)
	require.NoError(t, err)
	assert.NotEqual(t, first.ValuationRange.Typical, third.ValuationRange.Typical)

	assert.Empty(t, repo.created) // Persist not requested
}

func TestService_Calculate_PersistsAndPublishes(t *testing.T) {
	svc, repo, _, events := newTestService(t)

	input := saasInput()
	input.Persist = true
	listingID := common.NewID()
	input.ListingID = listingID.String()

	result, err := svc.Calculate(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	rec := repo.created[0]
	assert.False(t, rec.ID.IsZero())
	require.NotNil(t, rec.ListingID)
	assert.Equal(t, listingID, *rec.ListingID)
	assert.Equal(t, result.ValuationRange, rec.Result.ValuationRange)

	require.Len(t, events.msgs, 1)
	assert.Equal(t, "marketplace.events", events.msgs[0].Topic)
}

func TestService_Calculate_BypassCacheRecomputes(t *testing.T) {
	svc, _, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Calculate(ctx, saasInput())
	require.NoError(t, err)

	// Poison the cached entry, then bypass: result must be recomputed.
	fp := fingerprint(&saasInput().Data)
	require.NoError(t, store.Set(ctx, cache.ValuationKey(fp), valuation.Result{PrimaryMethod: "poisoned"}, 0))

	input := saasInput()
	input.BypassCache = true
	result, err := svc.Calculate(ctx, input)
	require.NoError(t, err)
	assert.NotEqual(t, "poisoned", result.PrimaryMethod)
}

func TestService_Get_RoundTrip(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	input := saasInput()
	input.Persist = true
	_, err := svc.Calculate(ctx, input)
	require.NoError(t, err)

	got, err := svc.Get(ctx, repo.created[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, "saas_b2b", got.Data.Sector)

	_, err = svc.Get(ctx, common.NewID().String())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValuationNotFound))
}

func TestFingerprint_Stable(t *testing.T) {
	a := saasInput().Data
	b := saasInput().Data
	assert.Equal(t, fingerprint(&a), fingerprint(&b))

	b.Sector = "ecommerce"
	assert.NotEqual(t, fingerprint(&a), fingerprint(&b))
}
