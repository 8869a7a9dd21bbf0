package store

import (
	"context"
	"fmt"

	"konnect-service-go/internal/database"
	"konnect-service-go/internal/models"
	"konnect-service-go/internal/payload"
)

// UserStore manages User records.
type UserStore struct {
	backend Backend
}

// NewUserStore creates a new UserStore.
func NewUserStore(backend Backend) *UserStore {
	return &UserStore{backend: backend}
}

func userKey(userID string) database.Key {
	return database.Key{Column: "user_id", Value: userID}
}

// Create stores a new user. All three fields must be present and non-null.
func (s *UserStore) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := payload.Validate(in); err != nil {
		return nil, err
	}

	user := &models.User{}
	in.UserID.ApplyTo(&user.UserID)
	in.Username.ApplyTo(&user.Username)
	in.Stockbroker.ApplyTo(&user.Stockbroker)

	if err := s.backend.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("create user %q: %w", user.UserID, err)
	}
	return user, nil
}

// List returns every user.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.backend.List(ctx, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns the user with the given id.
func (s *UserStore) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.backend.Get(ctx, &user, userKey(userID)); err != nil {
		return nil, fmt.Errorf("get user %q: %w", userID, err)
	}
	return &user, nil
}

// Update overwrites username and stockbroker when present in the patch.
// The user id is never changed. The patch is decoded and validated before the
// lookup, so a bad body on a missing user is a validation error, not NotFound.
func (s *UserStore) Update(ctx context.Context, userID string, patch models.UserInput) (*models.User, error) {
	var user models.User
	err := s.backend.Update(ctx, &user, userKey(userID), func() error {
		if patch.Username.IsNull() || patch.Stockbroker.IsNull() {
			var cols []string
			if patch.Username.IsNull() {
				cols = append(cols, "username")
			}
			if patch.Stockbroker.IsNull() {
				cols = append(cols, "stockbroker")
			}
			return nullViolation(user.TableName(), cols)
		}
		patch.Username.ApplyTo(&user.Username)
		patch.Stockbroker.ApplyTo(&user.Stockbroker)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update user %q: %w", userID, err)
	}
	return &user, nil
}

// Delete removes the user and returns its last state.
func (s *UserStore) Delete(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.backend.Delete(ctx, &user, userKey(userID)); err != nil {
		return nil, fmt.Errorf("delete user %q: %w", userID, err)
	}
	return &user, nil
}
