package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appmatching "github.com/dealbridge/dealbridge/internal/application/matching"
	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/domain/matching"
)

// MatchHandler serves the match-scoring endpoints.
type MatchHandler struct {
	service appmatching.Service
}

func NewMatchHandler(service appmatching.Service) *MatchHandler {
	return &MatchHandler{service: service}
}

type scoreRequest struct {
	BuyerID     string                    `json:"buyerId" binding:"required"`
	ListingID   string                    `json:"listingId" binding:"required"`
	Preferences *buyer.Preferences        `json:"preferences,omitempty"`
	Weights     *matching.WeightOverrides `json:"weights,omitempty"`
	BypassCache bool                      `json:"bypassCache,omitempty"`
}

// Score handles POST /api/v1/matches/score.
func (h *MatchHandler) Score(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	details, err := h.service.Score(c.Request.Context(), &appmatching.ScoreInput{
		BuyerID:     req.BuyerID,
		ListingID:   req.ListingID,
		Preferences: req.Preferences,
		Weights:     req.Weights,
		BypassCache: req.BypassCache,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

type batchScoreRequest struct {
	BuyerID     string                    `json:"buyerId" binding:"required"`
	ListingIDs  []string                  `json:"listingIds" binding:"required"`
	Preferences *buyer.Preferences        `json:"preferences,omitempty"`
	Weights     *matching.WeightOverrides `json:"weights,omitempty"`
}

// ScoreBatch handles POST /api/v1/matches/batch.
func (h *MatchHandler) ScoreBatch(c *gin.Context) {
	var req batchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.ScoreBatch(c.Request.Context(), &appmatching.BatchScoreInput{
		BuyerID:     req.BuyerID,
		ListingIDs:  req.ListingIDs,
		Preferences: req.Preferences,
		Weights:     req.Weights,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type enrichRequest struct {
	BuyerID   string `json:"buyerId" binding:"required"`
	ListingID string `json:"listingId" binding:"required"`
}

// Enrich handles POST /api/v1/matches/enrich.
func (h *MatchHandler) Enrich(c *gin.Context) {
	var req enrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	enrichment, err := h.service.Enrich(c.Request.Context(), &appmatching.EnrichInput{
		BuyerID:   req.BuyerID,
		ListingID: req.ListingID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrichment)
}

// ListForBuyer handles GET /api/v1/buyers/:id/matches.
func (h *MatchHandler) ListForBuyer(c *gin.Context) {
	scores, err := h.service.ListScores(c.Request.Context(), c.Param("id"), parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": scores})
}
