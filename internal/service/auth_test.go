package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/plateful/plateful/internal/domain"
)

type fakeUserStore struct {
	users  map[string]*domain.User
	tokens map[string]*domain.AuthToken
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[string]*domain.User),
		tokens: make(map[string]*domain.AuthToken),
	}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

func (f *fakeUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

func (f *fakeUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) IssueToken(ctx context.Context, userID uint) (*domain.AuthToken, error) {
	token := &domain.AuthToken{Key: uuid.New().String(), UserID: userID}
	f.tokens[token.Key] = token
	return token, nil
}

func (f *fakeUserStore) GetToken(ctx context.Context, key string) (*domain.AuthToken, error) {
	token, ok := f.tokens[key]
	if !ok {
		return nil, errors.New("record not found")
	}
	return token, nil
}

func (f *fakeUserStore) DeleteToken(ctx context.Context, key string) error {
	delete(f.tokens, key)
	return nil
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret", "Alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.PasswordHash == "s3cret" {
		t.Error("password stored in plain text")
	}

	token, loggedIn, err := svc.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in user = %d, want %d", loggedIn.ID, user.ID)
	}

	userID, err := svc.Authenticate(ctx, token.Key)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if userID != user.ID {
		t.Errorf("Authenticate() user = %d, want %d", userID, user.ID)
	}
}

func TestAuthRegisterDuplicateUsername(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "bob", "", "pw", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := svc.Register(ctx, "bob", "", "pw2", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Register() error = %v, want ErrUsernameTaken", err)
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "carol", "", "right", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, _, err := svc.Login(ctx, "carol", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "right"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() for unknown user error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthLogoutRevokesToken(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dave", "", "pw", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	token, _, err := svc.Login(ctx, "dave", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Logout(ctx, token.Key); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.Authenticate(ctx, token.Key); err == nil {
		t.Error("Authenticate() after logout should fail")
	}
}
