package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

// ErrUserNotFound is returned when no user matches the query.
var ErrUserNotFound = errors.New("user not found")

// UserStorage persists API users in badgerhold.
type UserStorage struct {
	store  *badgerhold.Store
	logger *common.Logger
}

// GetUser retrieves a user by ID.
func (s *UserStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.store.Get(id, &user)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &user, nil
}

// GetUserByAPIKey retrieves the user holding the given API key.
func (s *UserStorage) GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	var user models.User
	err := s.store.FindOne(&user, badgerhold.Where("APIKey").Eq(apiKey))
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by API key: %w", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *UserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.store.FindOne(&user, badgerhold.Where("Username").Eq(username))
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", username, err)
	}
	return &user, nil
}

// SaveUser inserts or updates a user.
func (s *UserStorage) SaveUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return fmt.Errorf("user ID is required")
	}
	if err := s.store.Upsert(user.ID, user); err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.ID, err)
	}
	s.logger.Debug().Str("user_id", user.ID).Str("username", user.Username).Msg("User saved")
	return nil
}

// DeleteUser removes a user by ID.
func (s *UserStorage) DeleteUser(ctx context.Context, id string) error {
	err := s.store.Delete(id, models.User{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}

// ListUsers returns all users.
func (s *UserStorage) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := s.store.Find(&users, nil); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Ensure UserStorage implements UserStore
var _ interfaces.UserStore = (*UserStorage)(nil)
