package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmatching "github.com/dealbridge/dealbridge/internal/application/matching"
	appvaluation "github.com/dealbridge/dealbridge/internal/application/valuation"
	"github.com/dealbridge/dealbridge/internal/domain/matching"
	"github.com/dealbridge/dealbridge/internal/domain/valuation"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ─── Fakes ───────────────────────────────────────────────────────────────────

type fakeMatchService struct {
	scoreFn      func(ctx context.Context, input *appmatching.ScoreInput) (*matching.ScoreDetails, error)
	scoreBatchFn func(ctx context.Context, input *appmatching.BatchScoreInput) (*appmatching.BatchScoreResult, error)
	enrichFn     func(ctx context.Context, input *appmatching.EnrichInput) (*matching.Enrichment, error)
	listFn       func(ctx context.Context, buyerID string, page common.Pagination) ([]*matching.Score, error)
}

func (f *fakeMatchService) Score(ctx context.Context, input *appmatching.ScoreInput) (*matching.ScoreDetails, error) {
	return f.scoreFn(ctx, input)
}

func (f *fakeMatchService) ScoreBatch(ctx context.Context, input *appmatching.BatchScoreInput) (*appmatching.BatchScoreResult, error) {
	return f.scoreBatchFn(ctx, input)
}

func (f *fakeMatchService) Enrich(ctx context.Context, input *appmatching.EnrichInput) (*matching.Enrichment, error) {
	return f.enrichFn(ctx, input)
}

func (f *fakeMatchService) ListScores(ctx context.Context, buyerID string, page common.Pagination) ([]*matching.Score, error) {
	return f.listFn(ctx, buyerID, page)
}

type fakeValuationService struct {
	calculateFn func(ctx context.Context, input *appvaluation.CalculateInput) (*valuation.Result, error)
	getFn       func(ctx context.Context, id string) (*valuation.Record, error)
}

func (f *fakeValuationService) Calculate(ctx context.Context, input *appvaluation.CalculateInput) (*valuation.Result, error) {
	return f.calculateFn(ctx, input)
}

func (f *fakeValuationService) Get(ctx context.Context, id string) (*valuation.Record, error) {
	return f.getFn(ctx, id)
}

func (f *fakeValuationService) ListByListing(ctx context.Context, listingID string) ([]*valuation.Record, error) {
	return nil, nil
}

func (f *fakeValuationService) ListByUser(ctx context.Context, userID string, page common.Pagination) ([]*valuation.Record, error) {
	return nil, nil
}

func perform(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ─── Match handler ───────────────────────────────────────────────────────────

func matchRouter(svc appmatching.Service) *gin.Engine {
	r := gin.New()
	h := NewMatchHandler(svc)
	r.POST("/matches/score", h.Score)
	r.POST("/matches/batch", h.ScoreBatch)
	r.POST("/matches/enrich", h.Enrich)
	r.GET("/buyers/:id/matches", h.ListForBuyer)
	return r
}

func TestMatchHandler_Score(t *testing.T) {
	svc := &fakeMatchService{
		scoreFn: func(_ context.Context, input *appmatching.ScoreInput) (*matching.ScoreDetails, error) {
			assert.Equal(t, "buyer-1", input.BuyerID)
			assert.Equal(t, "listing-1", input.ListingID)
			assert.True(t, input.BypassCache)
			return &matching.ScoreDetails{TotalScore: 89, Confidence: 85}, nil
		},
	}

	w := perform(t, matchRouter(svc), http.MethodPost, "/matches/score",
		`{"buyerId":"buyer-1","listingId":"listing-1","bypassCache":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(89), body["totalScore"])
	assert.Equal(t, float64(85), body["confidence"])
}

func TestMatchHandler_Score_MissingFields(t *testing.T) {
	svc := &fakeMatchService{
		scoreFn: func(_ context.Context, _ *appmatching.ScoreInput) (*matching.ScoreDetails, error) {
			t.Fatal("service must not be called on a bind failure")
			return nil, nil
		},
	}

	w := perform(t, matchRouter(svc), http.MethodPost, "/matches/score", `{"buyerId":"buyer-1"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeBadRequest.String(), decodeBody(t, w)["code"])
}

func TestMatchHandler_Score_BuyerNotFound(t *testing.T) {
	svc := &fakeMatchService{
		scoreFn: func(_ context.Context, _ *appmatching.ScoreInput) (*matching.ScoreDetails, error) {
			return nil, apperrors.New(apperrors.ErrCodeBuyerNotFound, "buyer profile not found")
		},
	}

	w := perform(t, matchRouter(svc), http.MethodPost, "/matches/score",
		`{"buyerId":"missing","listingId":"listing-1"}`)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, apperrors.ErrCodeBuyerNotFound.String(), body["code"])
	assert.Equal(t, "buyer profile not found", body["message"])
}

func TestMatchHandler_ScoreBatch_TooLarge(t *testing.T) {
	svc := &fakeMatchService{
		scoreBatchFn: func(_ context.Context, _ *appmatching.BatchScoreInput) (*appmatching.BatchScoreResult, error) {
			return nil, apperrors.New(apperrors.ErrCodeMatchBatchTooLarge, "batch exceeds 100 listings")
		},
	}

	w := perform(t, matchRouter(svc), http.MethodPost, "/matches/batch",
		`{"buyerId":"buyer-1","listingIds":["a","b"]}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeMatchBatchTooLarge.String(), decodeBody(t, w)["code"])
}

func TestMatchHandler_ListForBuyer_PassesPagination(t *testing.T) {
	svc := &fakeMatchService{
		listFn: func(_ context.Context, buyerID string, page common.Pagination) ([]*matching.Score, error) {
			assert.Equal(t, "buyer-1", buyerID)
			assert.Equal(t, 2, page.Page)
			assert.Equal(t, 5, page.PageSize)
			return []*matching.Score{{BuyerID: "buyer-1", ListingID: "listing-1"}}, nil
		},
	}

	w := perform(t, matchRouter(svc), http.MethodGet, "/buyers/buyer-1/matches?page=2&page_size=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["matches"], 1)
}

func TestMatchHandler_Enrich(t *testing.T) {
	svc := &fakeMatchService{
		enrichFn: func(_ context.Context, input *appmatching.EnrichInput) (*matching.Enrichment, error) {
			return &matching.Enrichment{SynergyScore: 72, IntegrationComplexity: "medium"}, nil
		},
	}

	w := perform(t, matchRouter(svc), http.MethodPost, "/matches/enrich",
		`{"buyerId":"buyer-1","listingId":"listing-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(72), body["synergyScore"])
	assert.Equal(t, "medium", body["integrationComplexity"])
}

// ─── Valuation handler ───────────────────────────────────────────────────────

func valuationRouter(svc appvaluation.Service) *gin.Engine {
	r := gin.New()
	h := NewValuationHandler(svc)
	r.POST("/valuations", h.Calculate)
	r.GET("/valuations/:id", h.Get)
	return r
}

func TestValuationHandler_Calculate(t *testing.T) {
	svc := &fakeValuationService{
		calculateFn: func(_ context.Context, input *appvaluation.CalculateInput) (*valuation.Result, error) {
			assert.Equal(t, "user-1", input.UserID)
			assert.Equal(t, "saas_b2b", input.Data.Sector)
			assert.True(t, input.Persist)
			return &valuation.Result{
				PrimaryMethod:  valuation.MethodEBITDA,
				ValuationRange: valuation.Range{Minimum: 800_000, Typical: 1_000_000, Maximum: 1_200_000, Confidence: 78},
			}, nil
		},
	}

	w := perform(t, valuationRouter(svc), http.MethodPost, "/valuations",
		`{"userId":"user-1","data":{"sector":"saas_b2b","annualRevenue":1150000}}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	rng, ok := body["valuationRange"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1_000_000), rng["typical"])
}

func TestValuationHandler_Calculate_Insufficient(t *testing.T) {
	svc := &fakeValuationService{
		calculateFn: func(_ context.Context, _ *appvaluation.CalculateInput) (*valuation.Result, error) {
			return nil, apperrors.New(apperrors.ErrCodeValuationDataInsufficient, "sector is required")
		},
	}

	w := perform(t, valuationRouter(svc), http.MethodPost, "/valuations",
		`{"userId":"user-1","data":{"annualRevenue":100}}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, apperrors.ErrCodeValuationDataInsufficient.String(), body["code"])
	assert.Equal(t, "sector is required", body["message"])
}

func TestValuationHandler_Get_NotFound(t *testing.T) {
	svc := &fakeValuationService{
		getFn: func(_ context.Context, id string) (*valuation.Record, error) {
			return nil, apperrors.New(apperrors.ErrCodeValuationNotFound, "valuation not found")
		},
	}

	w := perform(t, valuationRouter(svc), http.MethodGet, "/valuations/nope", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodeValuationNotFound.String(), decodeBody(t, w)["code"])
}

// ─── Industry handler ────────────────────────────────────────────────────────

func industryRouter() *gin.Engine {
	r := gin.New()
	h := NewIndustryHandler()
	r.GET("/industries", h.ListByCategory)
	r.GET("/industries/categories", h.Categories)
	r.GET("/industries/:key", h.Get)
	return r
}

func TestIndustryHandler_Categories(t *testing.T) {
	w := perform(t, industryRouter(), http.MethodGet, "/industries/categories", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	cats, ok := body["categories"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, cats, "Technology")
}

func TestIndustryHandler_Get(t *testing.T) {
	w := perform(t, industryRouter(), http.MethodGet, "/industries/saas_b2b", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "B2B SaaS", body["name"])
	assert.Equal(t, "Technology", body["category"])
}

func TestIndustryHandler_Get_Unknown(t *testing.T) {
	w := perform(t, industryRouter(), http.MethodGet, "/industries/underwater_basket_weaving", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodeNotFound.String(), decodeBody(t, w)["code"])
}

func TestIndustryHandler_ListByCategory_Filter(t *testing.T) {
	w := perform(t, industryRouter(), http.MethodGet, "/industries?category=Technology", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	sectors, ok := body["sectors"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, sectors)
}
