package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"konnect-service-go/internal/models"
)

func userParams(userID string) map[string]string {
	return map[string]string{"userId": userID}
}

func idParams(id uint64) map[string]string {
	return map[string]string{"id": strconv.FormatUint(id, 10)}
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	user, err := call[models.User](ctx, c, http.MethodPost, "/users", in, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// ListUsers fetches every user.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := call[[]models.User](ctx, c, http.MethodGet, "/users", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return *users, nil
}

// GetUser fetches one user.
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := call[models.User](ctx, c, http.MethodGet, "/users/{userId}", nil, userParams(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", userID, err)
	}
	return user, nil
}

// UpdateUser merges patch into the user.
func (c *Client) UpdateUser(ctx context.Context, userID string, patch models.UserInput) (*models.User, error) {
	user, err := call[models.User](ctx, c, http.MethodPut, "/users/{userId}", patch, userParams(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to update user %q: %w", userID, err)
	}
	return user, nil
}

// DeleteUser removes the user and returns its last state.
func (c *Client) DeleteUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := call[models.User](ctx, c, http.MethodDelete, "/users/{userId}", nil, userParams(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to delete user %q: %w", userID, err)
	}
	return user, nil
}

// CreateAlert stores a new alert.
func (c *Client) CreateAlert(ctx context.Context, in models.AlertInput) (*models.Alert, error) {
	alert, err := call[models.Alert](ctx, c, http.MethodPost, "/alerts", in, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return alert, nil
}

// ListAlerts fetches every alert.
func (c *Client) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	alerts, err := call[[]models.Alert](ctx, c, http.MethodGet, "/alerts", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return *alerts, nil
}

// GetAlert fetches one alert by row id.
func (c *Client) GetAlert(ctx context.Context, id uint64) (*models.Alert, error) {
	alert, err := call[models.Alert](ctx, c, http.MethodGet, "/alerts/{id}", nil, idParams(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get alert %d: %w", id, err)
	}
	return alert, nil
}

// UpdateAlert merges patch into the alert.
func (c *Client) UpdateAlert(ctx context.Context, id uint64, patch models.AlertInput) (*models.Alert, error) {
	alert, err := call[models.Alert](ctx, c, http.MethodPut, "/alerts/{id}", patch, idParams(id))
	if err != nil {
		return nil, fmt.Errorf("failed to update alert %d: %w", id, err)
	}
	return alert, nil
}

// DeleteAlert removes the alert and returns its last state.
func (c *Client) DeleteAlert(ctx context.Context, id uint64) (*models.Alert, error) {
	alert, err := call[models.Alert](ctx, c, http.MethodDelete, "/alerts/{id}", nil, idParams(id))
	if err != nil {
		return nil, fmt.Errorf("failed to delete alert %d: %w", id, err)
	}
	return alert, nil
}

// CreateSignal stores a new signal.
func (c *Client) CreateSignal(ctx context.Context, in models.SignalInput) (*models.Signal, error) {
	signal, err := call[models.Signal](ctx, c, http.MethodPost, "/signals", in, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create signal: %w", err)
	}
	return signal, nil
}

// ListSignals fetches every signal.
func (c *Client) ListSignals(ctx context.Context) ([]models.Signal, error) {
	signals, err := call[[]models.Signal](ctx, c, http.MethodGet, "/signals", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list signals: %w", err)
	}
	return *signals, nil
}

// GetSignal fetches one signal by row id.
func (c *Client) GetSignal(ctx context.Context, id uint64) (*models.Signal, error) {
	signal, err := call[models.Signal](ctx, c, http.MethodGet, "/signals/{id}", nil, idParams(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get signal %d: %w", id, err)
	}
	return signal, nil
}

// UpdateSignal merges patch into the signal.
func (c *Client) UpdateSignal(ctx context.Context, id uint64, patch models.SignalInput) (*models.Signal, error) {
	signal, err := call[models.Signal](ctx, c, http.MethodPut, "/signals/{id}", patch, idParams(id))
	if err != nil {
		return nil, fmt.Errorf("failed to update signal %d: %w", id, err)
	}
	return signal, nil
}

// DeleteSignal removes the signal and returns its last state.
func (c *Client) DeleteSignal(ctx context.Context, id uint64) (*models.Signal, error) {
	signal, err := call[models.Signal](ctx, c, http.MethodDelete, "/signals/{id}", nil, idParams(id))
	if err != nil {
		return nil, fmt.Errorf("failed to delete signal %d: %w", id, err)
	}
	return signal, nil
}
