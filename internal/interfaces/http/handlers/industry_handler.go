package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealbridge/dealbridge/internal/domain/industry"
	apperrors "github.com/dealbridge/dealbridge/pkg/errors"
)

// IndustryHandler serves the static sector reference table.
type IndustryHandler struct{}

func NewIndustryHandler() *IndustryHandler {
	return &IndustryHandler{}
}

// Categories handles GET /api/v1/industries/categories.
func (h *IndustryHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": industry.AllCategories()})
}

// ListByCategory handles GET /api/v1/industries.  With a ?category= filter it
// returns that category's sectors; without one it returns every category with
// its sectors.
func (h *IndustryHandler) ListByCategory(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, gin.H{"sectors": industry.ByCategory(category)})
		return
	}

	grouped := make(map[string][]industry.Data)
	for _, cat := range industry.AllCategories() {
		grouped[cat] = industry.ByCategory(cat)
	}
	c.JSON(http.StatusOK, gin.H{"sectors": grouped})
}

// Get handles GET /api/v1/industries/:key.
func (h *IndustryHandler) Get(c *gin.Context) {
	key := c.Param("key")
	data, ok := industry.Lookup(key)
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("unknown industry sector %q", key)))
		return
	}
	c.JSON(http.StatusOK, data)
}
