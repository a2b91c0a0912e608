package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// OrderItem is a single line of an order as submitted by the client.
type OrderItem struct {
	FoodID   uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderItems is a custom type for storing order lines as JSON in the database.
type OrderItems []OrderItem

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded string representation of the slice.
//   - error: non-nil if marshaling fails.
func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (o *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*o = OrderItems{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan OrderItems")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, o)
}

// Order represents a placed order with its line items snapshot.
type Order struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index:idx_orders_user" json:"user_id"`
	Items     OrderItems `gorm:"type:text" json:"items"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the database table name for Order.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Order) TableName() string {
	return "orders"
}
