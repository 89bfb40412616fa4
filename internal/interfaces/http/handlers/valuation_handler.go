package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appvaluation "github.com/dealbridge/dealbridge/internal/application/valuation"
	"github.com/dealbridge/dealbridge/internal/domain/valuation"
)

// ValuationHandler serves the valuation endpoints.
type ValuationHandler struct {
	service appvaluation.Service
}

func NewValuationHandler(service appvaluation.Service) *ValuationHandler {
	return &ValuationHandler{service: service}
}

type calculateRequest struct {
	UserID      string             `json:"userId" binding:"required"`
	ListingID   string             `json:"listingId,omitempty"`
	Data        valuation.StepData `json:"data" binding:"required"`
	BypassCache bool               `json:"bypassCache,omitempty"`

	// DryRun skips persistence and event publication; the caller only wants
	// the numbers.
	DryRun bool `json:"dryRun,omitempty"`
}

// Calculate handles POST /api/v1/valuations.
func (h *ValuationHandler) Calculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Calculate(c.Request.Context(), &appvaluation.CalculateInput{
		UserID:      req.UserID,
		ListingID:   req.ListingID,
		Data:        req.Data,
		BypassCache: req.BypassCache,
		Persist:     !req.DryRun,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/v1/valuations/:id.
func (h *ValuationHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListForListing handles GET /api/v1/listings/:id/valuations.
func (h *ValuationHandler) ListForListing(c *gin.Context) {
	records, err := h.service.ListByListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valuations": records})
}

// ListForUser handles GET /api/v1/users/:id/valuations.
func (h *ValuationHandler) ListForUser(c *gin.Context) {
	records, err := h.service.ListByUser(c.Request.Context(), c.Param("id"), parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valuations": records})
}
