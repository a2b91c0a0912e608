package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/plateful/internal/api/middleware"
	"github.com/plateful/plateful/internal/service"
)

// RecommendHandler handles the personalized recommendation endpoint.
type RecommendHandler struct {
	recommendService *service.RecommendService
}

// NewRecommendHandler creates a new recommendation handler.
// Parameters:
//   - recommendService: recommendation service instance.
// Returns:
//   - *RecommendHandler: initialized handler.
func NewRecommendHandler(recommendService *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{
		recommendService: recommendService,
	}
}

// Recommendations handles GET /api/v1/recommendations. A user with no like
// history, or a deployment with no trained artifacts, gets an empty result
// list rather than an error.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *RecommendHandler) Recommendations(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	items, err := h.recommendService.Recommend(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute recommendations: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": items,
		"total":   len(items),
	})
}
