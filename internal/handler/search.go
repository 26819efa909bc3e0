package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nikskoz/AutoAdvisor/internal/model"
	"github.com/Nikskoz/AutoAdvisor/internal/service"
)

// Advisor runs one search request end to end.
type Advisor interface {
	Search(ctx context.Context, filters *model.SearchFilters) ([]model.Recommendation, error)
}

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	advisor Advisor
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(advisor Advisor) *SearchHandler {
	return &SearchHandler{advisor: advisor}
}

// Search handles POST /api/search
func (h *SearchHandler) Search(c *gin.Context) {
	var filters model.SearchFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	recommendations, err := h.advisor.Search(c.Request.Context(), &filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Service is currently busy. Please try again in a few minutes.",
			})
		case errors.Is(err, service.ErrStorage):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Error analyzing car listings. Please try again.",
			})
		}
		return
	}

	c.JSON(http.StatusOK, model.SearchResponse{OK: true, Data: recommendations})
}
