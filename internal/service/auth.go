package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/plateful/plateful/internal/domain"
	"github.com/plateful/plateful/internal/logger"
)

var (
	// ErrInvalidCredentials is returned when the username or password is wrong.
	// Login never reveals which of the two it was.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// UserStore supplies account and token persistence for the auth service.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	IssueToken(ctx context.Context, userID uint) (*domain.AuthToken, error)
	GetToken(ctx context.Context, key string) (*domain.AuthToken, error)
	DeleteToken(ctx context.Context, key string) error
}

// AuthService handles registration, login, and token lifecycle.
type AuthService struct {
	users  UserStore
	logger *logger.Logger
}

// NewAuthService creates a new auth service.
// Parameters:
//   - users: account and token store.
//   - log: logger instance.
// Returns:
//   - *AuthService: initialized service.
func NewAuthService(users UserStore, log *logger.Logger) *AuthService {
	return &AuthService{users: users, logger: log}
}

// Register creates a new account with a bcrypt password hash.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - username, email, password: account credentials; password is hashed.
//   - name: display name, optional.
// Returns:
//   - *domain.User: created account.
//   - error: ErrUsernameTaken/ErrEmailTaken on conflict, or a store error.
func (s *AuthService) Register(ctx context.Context, username, email, password, name string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	if email != "" {
		taken, err = s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "User registered: user_id=%d, username=%s", user.ID, user.Username)
	return user, nil
}

// Login verifies credentials and issues a fresh bearer token.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - username, password: credentials to verify.
// Returns:
//   - *domain.AuthToken: issued token.
//   - *domain.User: authenticated account.
//   - error: ErrInvalidCredentials on any mismatch.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.AuthToken, *domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.users.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	logger.CtxInfo(ctx, "User logged in: user_id=%d", user.ID)
	return token, user, nil
}

// Logout revokes the given token. Revoking an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, tokenKey string) error {
	return s.users.DeleteToken(ctx, tokenKey)
}

// Authenticate resolves a bearer token to its owning user ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - tokenKey: opaque token from the Authorization header.
// Returns:
//   - uint: user ID the token belongs to.
//   - error: non-nil when the token is unknown or revoked.
func (s *AuthService) Authenticate(ctx context.Context, tokenKey string) (uint, error) {
	token, err := s.users.GetToken(ctx, tokenKey)
	if err != nil {
		return 0, err
	}
	return token.UserID, nil
}
