package domain

import "time"

// User represents an account that can browse, order, and rate food items.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:text;not null;uniqueIndex:idx_users_username" json:"username"`
	Email        string    `gorm:"type:text;uniqueIndex:idx_users_email" json:"email"`
	Name         string    `gorm:"type:text" json:"name"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (User) TableName() string {
	return "users"
}

// AuthToken is an opaque bearer token issued at login and revoked at logout.
type AuthToken struct {
	Key       string    `gorm:"type:text;primaryKey" json:"key"`
	UserID    uint      `gorm:"not null;index:idx_auth_tokens_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}
