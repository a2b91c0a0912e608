package repository

import (
	"context"

	"github.com/plateful/plateful/internal/domain"
	"gorm.io/gorm"
)

// OrderRepository handles order persistence.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new OrderRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *OrderRepository: repository instance bound to db.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order record.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListAll returns every order, oldest first. Used by the training export.
func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).Order("id").Find(&orders).Error
	return orders, err
}
