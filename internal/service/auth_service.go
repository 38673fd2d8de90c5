package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/giftcircle/giftcircle/internal/auth"
	"github.com/giftcircle/giftcircle/internal/events"
	"github.com/giftcircle/giftcircle/internal/models"
	"github.com/giftcircle/giftcircle/internal/storage"
)

// AuthService handles account lifecycle: registration, login, profile.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	bus           *events.Bus
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, bus *events.Bus) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		bus:           bus,
	}
}

// Session is a logged-in user plus their token.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new account and logs it in.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*Session, error) {
	if email == "" {
		return nil, validationf("email required")
	}

	user, err := s.authenticator.Register(ctx, email, username, password)
	if err != nil {
		slog.Warn("Registration failed", "email", email, "error", err)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.TopicUserUpdated, user.ID)
	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return &Session{User: user, Token: token}, nil
}

// Login authenticates an existing account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email, "error", err)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, err
	}

	slog.Info("User logged in", "user_id", user.ID)
	return &Session{User: user, Token: token}, nil
}

// CurrentUser fetches the full record of the authenticated user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// UpdateProfile changes the user's username and/or image. Empty fields are
// left untouched. Publishes user.updated so the directory refreshes.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, username, imageURL string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if imageURL != "" {
		user.ImageURL = imageURL
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		slog.Error("Profile update failed", "user_id", userID, "error", err)
		return nil, err
	}

	s.bus.Publish(events.TopicUserUpdated, user.ID)
	return user, nil
}
