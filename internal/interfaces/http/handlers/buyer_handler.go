package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/infrastructure/messaging/kafka"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

// BuyerHandler serves buyer profile CRUD.  Mutations publish
// buyer_preference_update events so cached matches and recommendations
// are invalidated.
type BuyerHandler struct {
	buyers      buyer.Repository
	events      EventPublisher
	log         logging.Logger
	eventsTopic string
}

func NewBuyerHandler(buyers buyer.Repository, events EventPublisher, log logging.Logger, eventsTopic string) *BuyerHandler {
	return &BuyerHandler{buyers: buyers, events: events, log: log, eventsTopic: eventsTopic}
}

// Create handles POST /api/v1/buyers.
func (h *BuyerHandler) Create(c *gin.Context) {
	var p buyer.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		respondBindError(c, err)
		return
	}
	if p.UserID.IsZero() {
		respondError(c, apperrors.New(apperrors.ErrCodeValidation, "userId is required"))
		return
	}
	if p.MinBudget != nil && p.MaxBudget != nil && *p.MinBudget > *p.MaxBudget {
		respondError(c, apperrors.New(apperrors.ErrCodeValidation, "minBudget exceeds maxBudget"))
		return
	}

	if err := h.buyers.Create(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	h.publishUpdate(c.Request.Context(), &p)
	c.JSON(http.StatusCreated, &p)
}

// Get handles GET /api/v1/buyers/:id.
func (h *BuyerHandler) Get(c *gin.Context) {
	p, err := h.buyers.GetByID(c.Request.Context(), common.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetByUser handles GET /api/v1/users/:id/buyer-profile.
func (h *BuyerHandler) GetByUser(c *gin.Context) {
	p, err := h.buyers.GetByUserID(c.Request.Context(), common.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update handles PUT /api/v1/buyers/:id.
func (h *BuyerHandler) Update(c *gin.Context) {
	var p buyer.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		respondBindError(c, err)
		return
	}
	p.ID = common.ID(c.Param("id"))

	if err := h.buyers.Update(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	h.publishUpdate(c.Request.Context(), &p)
	c.JSON(http.StatusOK, &p)
}

// Delete handles DELETE /api/v1/buyers/:id.
func (h *BuyerHandler) Delete(c *gin.Context) {
	id := common.ID(c.Param("id"))
	if err := h.buyers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.publishUpdate(c.Request.Context(), &buyer.Profile{ID: id})
	c.Status(http.StatusNoContent)
}

func (h *BuyerHandler) publishUpdate(ctx context.Context, p *buyer.Profile) {
	if h.events == nil {
		return
	}
	env, err := kafka.NewEventEnvelope(kafka.EventTypeBuyerPrefsUpdated, "dealbridge-api", kafka.BuyerPrefsUpdatedPayload{
		BuyerID:   p.ID.String(),
		UserID:    p.UserID.String(),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		h.log.Warn("failed to build buyer preference event", logging.Err(err))
		return
	}
	msg, err := env.ToMessage(h.eventsTopic, p.ID.String())
	if err != nil {
		h.log.Warn("failed to encode buyer preference event", logging.Err(err))
		return
	}
	if err := h.events.Publish(ctx, msg); err != nil {
		h.log.Warn("failed to publish buyer preference event",
			logging.String("buyer_id", p.ID.String()), logging.Err(err))
	}
}
