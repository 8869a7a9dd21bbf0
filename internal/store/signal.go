package store

import (
	"context"
	"fmt"

	"konnect-service-go/internal/database"
	"konnect-service-go/internal/models"
	"konnect-service-go/internal/payload"
)

// SignalStore manages Signal records, keyed by their row id.
type SignalStore struct {
	backend Backend
}

// NewSignalStore creates a new SignalStore.
func NewSignalStore(backend Backend) *SignalStore {
	return &SignalStore{backend: backend}
}

func signalKey(rowID uint64) database.Key {
	return database.Key{Column: "my_row_id", Value: rowID}
}

// Create stores a new signal. Only adate, asymbol and astrategy must be present.
func (s *SignalStore) Create(ctx context.Context, in models.SignalInput) (*models.Signal, error) {
	if err := payload.Validate(in); err != nil {
		return nil, err
	}

	signal := &models.Signal{}
	if err := nullViolation(signal.TableName(), in.NullColumns()); err != nil {
		return nil, fmt.Errorf("create signal: %w", err)
	}
	in.Apply(signal)

	if err := s.backend.Insert(ctx, signal); err != nil {
		return nil, fmt.Errorf("create signal: %w", err)
	}
	return signal, nil
}

// List returns every signal.
func (s *SignalStore) List(ctx context.Context) ([]models.Signal, error) {
	signals := []models.Signal{}
	if err := s.backend.List(ctx, &signals); err != nil {
		return nil, fmt.Errorf("list signals: %w", err)
	}
	return signals, nil
}

// Get returns the signal with the given row id.
func (s *SignalStore) Get(ctx context.Context, rowID uint64) (*models.Signal, error) {
	var signal models.Signal
	if err := s.backend.Get(ctx, &signal, signalKey(rowID)); err != nil {
		return nil, fmt.Errorf("get signal %d: %w", rowID, err)
	}
	return &signal, nil
}

// Update merges the keys present in patch over the stored signal. The patch is decoded
// and validated before the lookup, so a bad body on a missing row is a validation error.
func (s *SignalStore) Update(ctx context.Context, rowID uint64, patch models.SignalInput) (*models.Signal, error) {
	var signal models.Signal
	err := s.backend.Update(ctx, &signal, signalKey(rowID), func() error {
		if err := nullViolation(signal.TableName(), patch.NullColumns()); err != nil {
			return err
		}
		patch.Apply(&signal)
		signal.RowID = rowID
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update signal %d: %w", rowID, err)
	}
	return &signal, nil
}

// Delete removes the signal and returns its last state.
func (s *SignalStore) Delete(ctx context.Context, rowID uint64) (*models.Signal, error) {
	var signal models.Signal
	if err := s.backend.Delete(ctx, &signal, signalKey(rowID)); err != nil {
		return nil, fmt.Errorf("delete signal %d: %w", rowID, err)
	}
	return &signal, nil
}
