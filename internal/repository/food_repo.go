package repository

import (
	"context"
	"errors"

	"github.com/plateful/plateful/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FoodRepository handles catalog items and the per-user like/dislike sets.
type FoodRepository struct {
	db *gorm.DB
}

// NewFoodRepository creates a new FoodRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *FoodRepository: repository instance bound to db.
func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

// Create inserts a new food item.
func (r *FoodRepository) Create(ctx context.Context, item *domain.FoodItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// List returns the full current catalog ordered by identifier.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.FoodItem: every catalog item.
//   - error: non-nil if the query fails.
func (r *FoodRepository) List(ctx context.Context) ([]domain.FoodItem, error) {
	var items []domain.FoodItem
	err := r.db.WithContext(ctx).Order("id").Find(&items).Error
	return items, err
}

// GetByID retrieves a single food item.
// Returns gorm.ErrRecordNotFound when the item does not exist.
func (r *FoodRepository) GetByID(ctx context.Context, id uint) (*domain.FoodItem, error) {
	var item domain.FoodItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByIDs retrieves food items by identifier, preserving the order of ids.
// Unknown identifiers are skipped rather than reported.
func (r *FoodRepository) GetByIDs(ctx context.Context, ids []uint) ([]domain.FoodItem, error) {
	if len(ids) == 0 {
		return []domain.FoodItem{}, nil
	}

	var items []domain.FoodItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]domain.FoodItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	ordered := make([]domain.FoodItem, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			ordered = append(ordered, it)
		}
	}
	return ordered, nil
}

// Like marks the item as liked by the user and clears any standing dislike.
// Re-liking an already liked item is a no-op.
func (r *FoodRepository) Like(ctx context.Context, userID, foodID uint) error {
	if err := r.ensureExists(ctx, foodID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&domain.Like{UserID: userID, FoodID: foodID}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND food_id = ?", userID, foodID).
			Delete(&domain.Dislike{}).Error
	})
}

// Dislike marks the item as disliked by the user and clears any standing like.
func (r *FoodRepository) Dislike(ctx context.Context, userID, foodID uint) error {
	if err := r.ensureExists(ctx, foodID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&domain.Dislike{UserID: userID, FoodID: foodID}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND food_id = ?", userID, foodID).
			Delete(&domain.Like{}).Error
	})
}

func (r *FoodRepository) ensureExists(ctx context.Context, foodID uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.FoodItem{}).
		Where("id = ?", foodID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLikedItems returns the catalog items the user currently likes,
// ordered by identifier.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: user identifier.
// Returns:
//   - []domain.FoodItem: liked items, empty when the user has no likes.
//   - error: non-nil if the query fails.
func (r *FoodRepository) GetLikedItems(ctx context.Context, userID uint) ([]domain.FoodItem, error) {
	var items []domain.FoodItem
	err := r.db.WithContext(ctx).
		Joins("JOIN food_likes ON food_likes.food_id = food_items.id").
		Where("food_likes.user_id = ?", userID).
		Order("food_items.id").
		Find(&items).Error
	return items, err
}

// GetDislikedIDs returns the identifiers of items the user currently dislikes.
func (r *FoodRepository) GetDislikedIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Dislike{}).
		Where("user_id = ?", userID).
		Order("food_id").
		Pluck("food_id", &ids).Error
	return ids, err
}

// IsNotFound reports whether err is the record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
