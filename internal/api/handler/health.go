package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/plateful/internal/service"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	recommendService *service.RecommendService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(recommendService *service.RecommendService) *HealthHandler {
	return &HealthHandler{
		recommendService: recommendService,
	}
}

// Health returns the health status of the service. The recommender flag lets
// operators see at a glance whether trained artifacts were loaded at boot.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"recommender": h.recommendService.ArtifactsLoaded(),
	})
}
