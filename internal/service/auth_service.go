package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/qr-tracker/internal/models"
	"github.com/qr-tracker/internal/storage"
	"github.com/qr-tracker/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and session resolution
type AuthService struct {
	users    UserStore
	sessions SessionStore
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Register creates a new account with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" {
		return nil, &types.ServiceError{
			Code:    "INVALID_PARAMETER",
			Message: "username is required",
		}
	}
	if password == "" {
		return nil, &types.ServiceError{
			Code:    "INVALID_PARAMETER",
			Message: "password is required",
		}
	}

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, &types.ServiceError{
			Code:    "USERNAME_TAKEN",
			Message: fmt.Sprintf("username already taken: %s", username),
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, &types.ServiceError{
			Code:    "STORAGE_ERROR",
			Message: "failed to create user",
		}
	}

	return user, nil
}

// Login verifies credentials and issues a session token. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	invalid := &types.ServiceError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid username or password",
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, invalid
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, invalid
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", nil, &types.ServiceError{
			Code:    "STORAGE_ERROR",
			Message: "failed to create session",
		}
	}

	return token, user, nil
}

// Logout invalidates a session token
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a session token to its user id
func (s *AuthService) Authenticate(ctx context.Context, token string) (int64, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, &types.ServiceError{
				Code:    "UNAUTHORIZED",
				Message: "invalid or expired session",
			}
		}
		return 0, fmt.Errorf("failed to resolve session: %w", err)
	}
	return userID, nil
}

// CurrentUser loads the account behind an authenticated request
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &types.ServiceError{
				Code:    "USER_NOT_FOUND",
				Message: fmt.Sprintf("user not found: %d", userID),
			}
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
