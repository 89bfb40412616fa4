package matching

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealbridge/dealbridge/internal/cache"
	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/domain/listing"
	"github.com/dealbridge/dealbridge/internal/domain/matching"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

// ── fakes ──────────────────────────────────────────────────────────────────

type fakeListingRepo struct {
	byID map[common.ID]*listing.Listing
}

func (r *fakeListingRepo) Create(context.Context, *listing.Listing) error { return nil }
func (r *fakeListingRepo) Update(context.Context, *listing.Listing) error { return nil }
func (r *fakeListingRepo) UpdateStatus(context.Context, common.ID, common.Status) error {
	return nil
}
func (r *fakeListingRepo) Delete(context.Context, common.ID) error { return nil }
func (r *fakeListingRepo) List(context.Context, listing.Filter, common.Pagination) ([]*listing.Listing, int, error) {
	return nil, 0, nil
}

func (r *fakeListingRepo) GetByID(_ context.Context, id common.ID) (*listing.Listing, error) {
	if l, ok := r.byID[id]; ok {
		return l, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeListingNotFound, "listing not found")
}

func (r *fakeListingRepo) GetByIDs(_ context.Context, ids []common.ID) ([]*listing.Listing, error) {
	var out []*listing.Listing
	for _, id := range ids {
		if l, ok := r.byID[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeBuyerRepo struct {
	byID map[common.ID]*buyer.Profile
}

func (r *fakeBuyerRepo) Create(context.Context, *buyer.Profile) error { return nil }
func (r *fakeBuyerRepo) Update(context.Context, *buyer.Profile) error { return nil }
func (r *fakeBuyerRepo) Delete(context.Context, common.ID) error      { return nil }
func (r *fakeBuyerRepo) GetByUserID(context.Context, common.ID) (*buyer.Profile, error) {
	return nil, apperrors.New(apperrors.ErrCodeBuyerNotFound, "buyer profile not found")
}

func (r *fakeBuyerRepo) GetByID(_ context.Context, id common.ID) (*buyer.Profile, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeBuyerNotFound, "buyer profile not found")
}

type fakeScoreRepo struct {
	mu      sync.Mutex
	upserts []*matching.Score
}

func (r *fakeScoreRepo) Upsert(_ context.Context, s *matching.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts = append(r.upserts, s)
	return nil
}

func (r *fakeScoreRepo) Get(context.Context, common.ID, common.ID) (*matching.Score, error) {
	return nil, apperrors.New(apperrors.ErrCodeMatchScoreNotFound, "match score not found")
}

func (r *fakeScoreRepo) ListByBuyer(context.Context, common.ID, common.Pagination) ([]*matching.Score, error) {
	return nil, nil
}

func (r *fakeScoreRepo) DeleteByListing(context.Context, common.ID) (int, error) { return 0, nil }

func (r *fakeScoreRepo) upsertCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.upserts)
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

func (p *capturingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.msgs)
}

// ── fixtures ───────────────────────────────────────────────────────────────

func techListing(id common.ID) *listing.Listing {
	return &listing.Listing{
		ID:            id,
		Title:         "B2B SaaS platform",
		Industry:      "Technology",
		Location:      "London",
		AskingPrice:   common.Float64Ptr(2500000),
		AnnualRevenue: common.Float64Ptr(2500000),
		AnnualProfit:  common.Float64Ptr(850000),
		Employees:     common.IntPtr(30),
		Status:        common.StatusActive,
	}
}

func techBuyer(id common.ID) *buyer.Profile {
	return &buyer.Profile{
		ID:                 id,
		Industries:         []string{"Technology"},
		MinBudget:          common.Float64Ptr(1000000),
		MaxBudget:          common.Float64Ptr(3000000),
		PreferredLocations: []string{"London"},
	}
}

type testDeps struct {
	listings *fakeListingRepo
	buyers   *fakeBuyerRepo
	scores   *fakeScoreRepo
	store    *cache.MemoryStore
	events   *capturingPublisher
}

func newTestService(t *testing.T, cfg Config) (Service, *testDeps, common.ID, common.ID) {
	t.Helper()
	buyerID, listingID := common.NewID(), common.NewID()
	deps := &testDeps{
		listings: &fakeListingRepo{byID: map[common.ID]*listing.Listing{listingID: techListing(listingID)}},
		buyers:   &fakeBuyerRepo{byID: map[common.ID]*buyer.Profile{buyerID: techBuyer(buyerID)}},
		scores:   &fakeScoreRepo{},
		store:    cache.NewMemoryStore(),
		events:   &capturingPublisher{},
	}
	svc := NewService(deps.listings, deps.buyers, deps.scores, matching.NewEngine(),
		deps.store, deps.events, nil, logging.NewNopLogger(), cfg)
	return svc, deps, buyerID, listingID
}

// ── tests ──────────────────────────────────────────────────────────────────

func TestService_Score_ComputesPersistsAndCaches(t *testing.T) {
	svc, deps, buyerID, listingID := newTestService(t, Config{ScoresTopic: "marketplace.scores"})

	details, err := svc.Score(context.Background(), &ScoreInput{
		BuyerID:   buyerID.String(),
		ListingID: listingID.String(),
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, details.TotalScore, 80)
	assert.Equal(t, 1, deps.scores.upsertCount())
	assert.Equal(t, 1, deps.events.count())
	assert.Equal(t, "marketplace.scores", deps.events.msgs[0].Topic)

	var cached matching.ScoreDetails
	key := cache.MatchKey(buyerID.String(), listingID.String())
	require.NoError(t, deps.store.Get(context.Background(), key, &cached))
	assert.Equal(t, details.TotalScore, cached.TotalScore)
}

func TestService_Score_ServesFromCache(t *testing.T) {
	svc, deps, buyerID, listingID := newTestService(t, Config{})
	ctx := context.Background()

	first, err := svc.Score(ctx, &ScoreInput{BuyerID: buyerID.String(), ListingID: listingID.String()})
	require.NoError(t, err)

	// Mutate the listing; a cached result must not reflect it.
	deps.listings.byID[listingID].Industry = "Hospitality"

	second, err := svc.Score(ctx, &ScoreInput{BuyerID: buyerID.String(), ListingID: listingID.String()})
	require.NoError(t, err)
	assert.Equal(t, first.TotalScore, second.TotalScore)
	assert.Equal(t, 1, deps.scores.upsertCount())
}

func TestService_Score_OverridesBypassCache(t *testing.T) {
	svc, deps, buyerID, listingID := newTestService(t, Config{})
	ctx := context.Background()

	_, err := svc.Score(ctx, &ScoreInput{
		BuyerID:     buyerID.String(),
		ListingID:   listingID.String(),
		Preferences: &buyer.Preferences{Industries: []string{"Healthcare"}},
	})
	require.NoError(t, err)

	// Per-call preferences never persist or cache.
	assert.Zero(t, deps.scores.upsertCount())
	var cached matching.ScoreDetails
	key := cache.MatchKey(buyerID.String(), listingID.String())
	err = deps.store.Get(ctx, key, &cached)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCacheMiss))
}

func TestService_Score_BuyerNotFound(t *testing.T) {
	svc, _, _, listingID := newTestService(t, Config{})

	_, err := svc.Score(context.Background(), &ScoreInput{
		BuyerID:   common.NewID().String(),
		ListingID: listingID.String(),
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeBuyerNotFound))
}

func TestService_ScoreBatch_OrdersAndReportsMissing(t *testing.T) {
	svc, deps, buyerID, listingID := newTestService(t, Config{BatchConcurrency: 2})

	weak := common.NewID()
	weakListing := techListing(weak)
	weakListing.Industry = "Construction"
	weakListing.Location = "Glasgow"
	deps.listings.byID[weak] = weakListing
	missing := common.NewID()

	res, err := svc.ScoreBatch(context.Background(), &BatchScoreInput{
		BuyerID:    buyerID.String(),
		ListingIDs: []string{weak.String(), missing.String(), listingID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scored)
	assert.Equal(t, []string{missing.String()}, res.Missing)
	require.Len(t, res.Items, 2)
	assert.Equal(t, listingID.String(), res.Items[0].ListingID)
	assert.Greater(t, res.Items[0].Details.TotalScore, res.Items[1].Details.TotalScore)
}

func TestService_ScoreBatch_Limits(t *testing.T) {
	svc, _, buyerID, _ := newTestService(t, Config{MaxBatchSize: 2})
	ctx := context.Background()

	_, err := svc.ScoreBatch(ctx, &BatchScoreInput{BuyerID: buyerID.String()})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))

	_, err = svc.ScoreBatch(ctx, &BatchScoreInput{
		BuyerID:    buyerID.String(),
		ListingIDs: []string{"a", "b", "c"},
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMatchBatchTooLarge))
}

func TestService_Enrich(t *testing.T) {
	svc, deps, buyerID, listingID := newTestService(t, Config{})

	enrichment, err := svc.Enrich(context.Background(), &EnrichInput{
		BuyerID:   buyerID.String(),
		ListingID: listingID.String(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, enrichment.MarketTrends)
	assert.NotEmpty(t, enrichment.IntegrationComplexity)

	// Enrichment must not populate the match cache.
	var cached matching.ScoreDetails
	key := cache.MatchKey(buyerID.String(), listingID.String())
	err = deps.store.Get(context.Background(), key, &cached)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCacheMiss))
}
