package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giftcircle/giftcircle/internal/models"
)

type memoryUserStore struct {
	byEmail map[string]*models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{byEmail: make(map[string]*models.User)}
}

func (m *memoryUserStore) CreateUser(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func (m *memoryUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func TestPasswordAuthenticator(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryUserStore())
	ctx := context.Background()

	t.Run("Register and authenticate round trip", func(t *testing.T) {
		user, err := a.Register(ctx, "alice@example.com", "alice", "correct horse battery")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.PasswordHash == "correct horse battery" {
			t.Error("Password stored in plain text")
		}

		got, err := a.Authenticate(ctx, "alice@example.com", "correct horse battery")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("Authenticated wrong user: %s", got.ID)
		}
	})

	t.Run("Wrong password and unknown email collapse to one error", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := a.Authenticate(ctx, "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Short passwords are rejected", func(t *testing.T) {
		if _, err := a.Register(ctx, "bob@example.com", "bob", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		if _, err := a.Register(ctx, "alice@example.com", "alice2", "another password"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("Expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("Username is required", func(t *testing.T) {
		if _, err := a.Register(ctx, "carol@example.com", "", "long enough password"); !errors.Is(err, ErrMissingUsername) {
			t.Errorf("Expected ErrMissingUsername, got %v", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	t.Run("Generate and validate round trip", func(t *testing.T) {
		m := NewJWTManager("secret", time.Hour)
		token, err := m.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != user.ID || claims.Email != user.Email {
			t.Errorf("Claims mismatch: %+v", claims)
		}
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		token, err := NewJWTManager("secret", time.Hour).Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := NewJWTManager("other", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		m := NewJWTManager("secret", -time.Minute)
		token, err := m.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		m := NewJWTManager("secret", time.Hour)
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})
}
