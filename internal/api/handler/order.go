package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/plateful/internal/api/middleware"
	"github.com/plateful/plateful/internal/domain"
	"github.com/plateful/plateful/internal/service"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	catalogService *service.CatalogService
}

// NewOrderHandler creates a new order handler.
// Parameters:
//   - catalogService: catalog service instance.
// Returns:
//   - *OrderHandler: initialized handler.
func NewOrderHandler(catalogService *service.CatalogService) *OrderHandler {
	return &OrderHandler{
		catalogService: catalogService,
	}
}

type placeOrderRequest struct {
	Items domain.OrderItems `json:"items" binding:"required"`
}

// PlaceOrder handles POST /api/v1/user/orders.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	order, err := h.catalogService.PlaceOrder(c.Request.Context(), userID, req.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to place order: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// ListOrders handles GET /api/v1/user/orders.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orders, err := h.catalogService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list orders: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": orders,
		"total":   len(orders),
	})
}
