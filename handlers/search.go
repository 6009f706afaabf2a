// File: handlers/search.go
package handlers

import (
	"errors"
	"net/http"

	"farewise/models"
	"farewise/services/search"
	"farewise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler exposes the direct search endpoint for callers that already
// hold a structured intent and do not need the dialogue.
type SearchHandler struct {
	Search search.Service
}

func NewSearchHandler(searchSvc search.Service) *SearchHandler {
	return &SearchHandler{Search: searchSvc}
}

// HandleSearch runs one flight search from a structured intent.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var intent models.TravelIntent
	if err := c.ShouldBindJSON(&intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.Search.ExecuteSearch(c.Request.Context(), intent)
	if err != nil {
		var precondition *search.PreconditionError
		switch {
		case errors.As(err, &precondition):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "intent is incomplete",
				"missing": precondition.Missing,
			})
		case errors.Is(err, search.ErrNoProvidersAvailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "no airlines responded, try again shortly"})
		default:
			utils.GetLogger().Error("search failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
