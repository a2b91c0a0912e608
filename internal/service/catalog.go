package service

import (
	"context"
	"errors"

	"github.com/plateful/plateful/internal/domain"
	"github.com/plateful/plateful/internal/logger"
	"github.com/plateful/plateful/internal/repository"
)

// ErrItemNotFound is returned when a rating targets an unknown food item.
var ErrItemNotFound = errors.New("food item not found")

// CatalogService handles the food catalog, ratings, and orders. Catalog
// mutations invalidate the recommendation vector cache so the next request
// sees the new state.
type CatalogService struct {
	foods  *repository.FoodRepository
	orders *repository.OrderRepository
	cache  *CatalogCache
	logger *logger.Logger
}

// NewCatalogService creates a new catalog service.
// Parameters:
//   - foods: food item repository.
//   - orders: order repository.
//   - cache: catalog vector cache to invalidate on writes; may be nil.
//   - log: logger instance.
// Returns:
//   - *CatalogService: initialized service.
func NewCatalogService(
	foods *repository.FoodRepository,
	orders *repository.OrderRepository,
	cache *CatalogCache,
	log *logger.Logger,
) *CatalogService {
	return &CatalogService{
		foods:  foods,
		orders: orders,
		cache:  cache,
		logger: log,
	}
}

// ListItems returns the full catalog in stable identifier order.
func (s *CatalogService) ListItems(ctx context.Context) ([]domain.FoodItem, error) {
	return s.foods.List(ctx)
}

// CreateItem adds a new catalog item and invalidates the vector cache.
func (s *CatalogService) CreateItem(ctx context.Context, item *domain.FoodItem) error {
	if err := s.foods.Create(ctx, item); err != nil {
		return err
	}
	s.invalidateCache()
	logger.CtxInfo(ctx, "Food item created: food_id=%d, name=%s", item.ID, item.Name)
	return nil
}

// Like records a like for the item and clears any standing dislike.
func (s *CatalogService) Like(ctx context.Context, userID, foodID uint) error {
	if err := s.foods.Like(ctx, userID, foodID); err != nil {
		if repository.IsNotFound(err) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

// Dislike records a dislike for the item and clears any standing like.
func (s *CatalogService) Dislike(ctx context.Context, userID, foodID uint) error {
	if err := s.foods.Dislike(ctx, userID, foodID); err != nil {
		if repository.IsNotFound(err) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

// Ratings returns the identifiers the user currently likes and dislikes.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: user whose ratings to fetch.
// Returns:
//   - []uint: liked item identifiers.
//   - []uint: disliked item identifiers.
//   - error: non-nil on store failure.
func (s *CatalogService) Ratings(ctx context.Context, userID uint) ([]uint, []uint, error) {
	likedItems, err := s.foods.GetLikedItems(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	liked := make([]uint, len(likedItems))
	for i := range likedItems {
		liked[i] = likedItems[i].ID
	}

	disliked, err := s.foods.GetDislikedIDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return liked, disliked, nil
}

// PlaceOrder persists an order for the user. Line totals are computed
// server-side from the submitted lines.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: ordering user.
//   - items: submitted order lines; must be non-empty.
// Returns:
//   - *domain.Order: persisted order with its computed total.
//   - error: non-nil on validation or store failure.
func (s *CatalogService) PlaceOrder(ctx context.Context, userID uint, items domain.OrderItems) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, errors.New("order must contain at least one item")
	}

	var total float64
	for i := range items {
		if items[i].Quantity <= 0 {
			items[i].Quantity = 1
		}
		total += items[i].Price * float64(items[i].Quantity)
	}

	order := &domain.Order{
		UserID: userID,
		Items:  items,
		Total:  total,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Order placed: order_id=%d, user_id=%d, lines=%d, total=%.2f",
		order.ID, userID, len(items), total)
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *CatalogService) ListOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *CatalogService) invalidateCache() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}
