package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealbridge/dealbridge/internal/domain/listing"
	"github.com/dealbridge/dealbridge/internal/infrastructure/messaging/kafka"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
	"github.com/dealbridge/dealbridge/pkg/types/common"
)

// EventPublisher is the slice of the Kafka producer the handlers need to
// announce mutations.  A nil publisher disables event publication.
type EventPublisher interface {
	Publish(ctx context.Context, msg *common.ProducerMessage) error
}

// ListingHandler serves listing CRUD.  Mutations publish listing_update
// events so downstream caches and scores are invalidated.
type ListingHandler struct {
	listings    listing.Repository
	events      EventPublisher
	log         logging.Logger
	eventsTopic string
}

func NewListingHandler(listings listing.Repository, events EventPublisher, log logging.Logger, eventsTopic string) *ListingHandler {
	return &ListingHandler{listings: listings, events: events, log: log, eventsTopic: eventsTopic}
}

// Create handles POST /api/v1/listings.
func (h *ListingHandler) Create(c *gin.Context) {
	var l listing.Listing
	if err := c.ShouldBindJSON(&l); err != nil {
		respondBindError(c, err)
		return
	}
	if l.Title == "" || l.Industry == "" {
		respondError(c, apperrors.New(apperrors.ErrCodeValidation, "title and industry are required"))
		return
	}
	if l.Status == "" {
		l.Status = common.StatusPending
	}

	if err := h.listings.Create(c.Request.Context(), &l); err != nil {
		respondError(c, err)
		return
	}
	h.publishUpdate(c.Request.Context(), &l)
	c.JSON(http.StatusCreated, &l)
}

// Get handles GET /api/v1/listings/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.listings.GetByID(c.Request.Context(), common.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// List handles GET /api/v1/listings with filter query parameters.
func (h *ListingHandler) List(c *gin.Context) {
	filter := listing.Filter{
		Industry: c.Query("industry"),
		Location: c.Query("location"),
		Status:   common.Status(c.Query("status")),
	}
	page := parsePagination(c)

	items, total, err := h.listings.List(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	page.Total = int64(total)
	c.JSON(http.StatusOK, gin.H{"listings": items, "pagination": page})
}

// Update handles PUT /api/v1/listings/:id.
func (h *ListingHandler) Update(c *gin.Context) {
	var l listing.Listing
	if err := c.ShouldBindJSON(&l); err != nil {
		respondBindError(c, err)
		return
	}
	l.ID = common.ID(c.Param("id"))

	if err := h.listings.Update(c.Request.Context(), &l); err != nil {
		respondError(c, err)
		return
	}
	h.publishUpdate(c.Request.Context(), &l)
	c.JSON(http.StatusOK, &l)
}

type statusRequest struct {
	Status common.Status `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/v1/listings/:id/status.
func (h *ListingHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !common.IsValidStatus(req.Status) {
		respondError(c, apperrors.New(apperrors.ErrCodeValidation, "unknown listing status"))
		return
	}
	id := common.ID(c.Param("id"))

	if err := h.listings.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	h.publishUpdate(c.Request.Context(), &listing.Listing{ID: id, Status: req.Status})
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/listings/:id.
func (h *ListingHandler) Delete(c *gin.Context) {
	id := common.ID(c.Param("id"))
	if err := h.listings.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.publishUpdate(c.Request.Context(), &listing.Listing{ID: id, Status: common.StatusWithdrawn})
	c.Status(http.StatusNoContent)
}

// publishUpdate emits a listing_update event.  Publication is best effort:
// the mutation already committed, so a broker failure is logged, not
// surfaced to the client.
func (h *ListingHandler) publishUpdate(ctx context.Context, l *listing.Listing) {
	if h.events == nil {
		return
	}
	env, err := kafka.NewEventEnvelope(kafka.EventTypeListingUpdated, "dealbridge-api", kafka.ListingUpdatedPayload{
		ListingID: l.ID.String(),
		SellerID:  l.SellerID.String(),
		Status:    string(l.Status),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		h.log.Warn("failed to build listing update event", logging.Err(err))
		return
	}
	msg, err := env.ToMessage(h.eventsTopic, l.ID.String())
	if err != nil {
		h.log.Warn("failed to encode listing update event", logging.Err(err))
		return
	}
	if err := h.events.Publish(ctx, msg); err != nil {
		h.log.Warn("failed to publish listing update event",
			logging.String("listing_id", l.ID.String()), logging.Err(err))
	}
}
