package store

import (
	"context"
	"fmt"

	"konnect-service-go/internal/apperr"
	"konnect-service-go/internal/database"
	"konnect-service-go/internal/models"
	"konnect-service-go/internal/payload"
)

// ConfigStore manages RefreshInterval rows.
type ConfigStore struct {
	backend Backend
}

// NewConfigStore creates a new ConfigStore.
func NewConfigStore(backend Backend) *ConfigStore {
	return &ConfigStore{backend: backend}
}

// Get returns the first configured interval and true. When no row exists it returns
// the fallback of models.DefaultRefreshIntervalSeconds and false.
func (s *ConfigStore) Get(ctx context.Context) (*models.RefreshInterval, bool, error) {
	var ri models.RefreshInterval
	err := s.backend.First(ctx, &ri)
	switch {
	case err == nil:
		return &ri, true, nil
	case apperr.Is(err, apperr.KindNotFound):
		return &models.RefreshInterval{IntervalSeconds: models.DefaultRefreshIntervalSeconds}, false, nil
	default:
		return nil, false, fmt.Errorf("get refresh interval: %w", err)
	}
}

// Create stores a new interval. Two rows may not hold the same value.
func (s *ConfigStore) Create(ctx context.Context, in models.RefreshIntervalInput) (*models.RefreshInterval, error) {
	seconds, err := intervalSeconds(in)
	if err != nil {
		return nil, err
	}

	ri := &models.RefreshInterval{IntervalSeconds: seconds}
	if err := s.backend.Insert(ctx, ri); err != nil {
		return nil, fmt.Errorf("create refresh interval: %w", err)
	}
	return ri, nil
}

// Update overwrites the value of the interval row with the given id. The value is
// validated before the lookup, so a bad body on a missing id is a validation error.
func (s *ConfigStore) Update(ctx context.Context, id uint64, in models.RefreshIntervalInput) (*models.RefreshInterval, error) {
	seconds, err := intervalSeconds(in)
	if err != nil {
		return nil, err
	}

	var ri models.RefreshInterval
	err = s.backend.Update(ctx, &ri, database.Key{Column: "id", Value: id}, func() error {
		ri.IntervalSeconds = seconds
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update refresh interval %d: %w", id, err)
	}
	return &ri, nil
}

func intervalSeconds(in models.RefreshIntervalInput) (int64, error) {
	if err := payload.Validate(in); err != nil {
		if !in.IntervalSeconds.IsSet() {
			return 0, apperr.Validation("Missing 'interval_seconds' in request body")
		}
		return 0, apperr.Validation("'interval_seconds' must be an integer")
	}
	v, _ := in.IntervalSeconds.Value()
	return v, nil
}
