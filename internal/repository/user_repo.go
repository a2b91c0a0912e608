package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/plateful/plateful/internal/domain"
	"gorm.io/gorm"
)

// UserRepository handles user accounts and auth tokens.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *UserRepository: repository instance bound to db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user record.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByUsername retrieves a user by username.
// Returns gorm.ErrRecordNotFound when no such user exists.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername reports whether a username is already taken.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail reports whether an email is already registered.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ListAll returns every user ordered by identifier. Used by the training export.
func (r *UserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

// IssueToken creates and returns a fresh auth token for the user.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: user to bind the token to.
// Returns:
//   - *domain.AuthToken: persisted token.
//   - error: non-nil if the insert fails.
func (r *UserRepository) IssueToken(ctx context.Context, userID uint) (*domain.AuthToken, error) {
	token := &domain.AuthToken{
		Key:    uuid.New().String(),
		UserID: userID,
	}
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

// GetToken looks up a token by key.
// Returns gorm.ErrRecordNotFound for unknown keys.
func (r *UserRepository) GetToken(ctx context.Context, key string) (*domain.AuthToken, error) {
	var token domain.AuthToken
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteToken revokes a token. Deleting an unknown key is not an error.
func (r *UserRepository) DeleteToken(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&domain.AuthToken{}).Error
}
