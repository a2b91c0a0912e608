package domain

import "time"

// FoodCategory groups catalog items for the menu screens.
// Values include CategoryMain, CategoryBeverage, and CategorySalad.
type FoodCategory string

const (
	CategoryMain     FoodCategory = "Main"
	CategoryBeverage FoodCategory = "Beverage"
	CategorySalad    FoodCategory = "Salad"
)

// FoodItem represents one entry of the restaurant catalog.
// Ingredients is nullable in the store; use IngredientsText before feeding
// it to the vectorizer.
type FoodItem struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Price       float64      `gorm:"not null" json:"price"`
	Category    FoodCategory `gorm:"type:text;index:idx_food_items_category" json:"category"`
	ImageURL    string       `gorm:"type:text" json:"image_url,omitempty"`
	Ingredients *string      `gorm:"type:text" json:"ingredients,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TableName returns the database table name for FoodItem.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (FoodItem) TableName() string {
	return "food_items"
}

// IngredientsText normalizes the nullable ingredient field to a plain string.
// Parameters: none.
// Returns:
//   - string: ingredient text, empty when the column is NULL.
func (f *FoodItem) IngredientsText() string {
	if f.Ingredients == nil {
		return ""
	}
	return *f.Ingredients
}

// Like is a set-semantics join row: the user currently likes the item.
type Like struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FoodID    uint      `gorm:"primaryKey;autoIncrement:false" json:"food_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "food_likes"
}

// Dislike is a set-semantics join row: the user currently dislikes the item.
type Dislike struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FoodID    uint      `gorm:"primaryKey;autoIncrement:false" json:"food_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Dislike) TableName() string {
	return "food_dislikes"
}
