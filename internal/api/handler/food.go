package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/plateful/internal/api/middleware"
	"github.com/plateful/plateful/internal/domain"
	"github.com/plateful/plateful/internal/service"
)

// FoodHandler handles catalog and rating endpoints.
type FoodHandler struct {
	catalogService *service.CatalogService
}

// NewFoodHandler creates a new food handler.
// Parameters:
//   - catalogService: catalog service instance.
// Returns:
//   - *FoodHandler: initialized handler.
func NewFoodHandler(catalogService *service.CatalogService) *FoodHandler {
	return &FoodHandler{
		catalogService: catalogService,
	}
}

// ListFoodItems handles GET /api/v1/food-items.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FoodHandler) ListFoodItems(c *gin.Context) {
	items, err := h.catalogService.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list food items: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": items,
		"total":   len(items),
	})
}

type createFoodItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Ingredients *string `json:"ingredients"`
}

// CreateFoodItem handles POST /api/v1/food-items.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FoodHandler) CreateFoodItem(c *gin.Context) {
	var req createFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	item := &domain.FoodItem{
		Name:        req.Name,
		Price:       req.Price,
		Category:    domain.FoodCategory(req.Category),
		ImageURL:    req.ImageURL,
		Ingredients: req.Ingredients,
	}
	if err := h.catalogService.CreateItem(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create food item: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Like handles POST /api/v1/food-items/:id/like.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FoodHandler) Like(c *gin.Context) {
	h.rate(c, h.catalogService.Like)
}

// Dislike handles POST /api/v1/food-items/:id/dislike.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FoodHandler) Dislike(c *gin.Context) {
	h.rate(c, h.catalogService.Dislike)
}

// Ratings handles GET /api/v1/user/ratings.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FoodHandler) Ratings(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	liked, disliked, err := h.catalogService.Ratings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch ratings: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked":    liked,
		"disliked": disliked,
	})
}

func (h *FoodHandler) rate(c *gin.Context, apply func(ctx context.Context, userID, foodID uint) error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	foodID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid food item id"})
		return
	}

	if err := apply(c.Request.Context(), userID, uint(foodID)); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to record rating: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
