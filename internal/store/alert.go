package store

import (
	"context"
	"fmt"

	"konnect-service-go/internal/database"
	"konnect-service-go/internal/models"
	"konnect-service-go/internal/payload"
)

// AlertStore manages Alert records, keyed by their row id.
type AlertStore struct {
	backend Backend
}

// NewAlertStore creates a new AlertStore.
func NewAlertStore(backend Backend) *AlertStore {
	return &AlertStore{backend: backend}
}

func alertKey(rowID uint64) database.Key {
	return database.Key{Column: "my_row_id", Value: rowID}
}

// Create stores a new alert. Every non-OCO key must be present in the input;
// the row id is assigned by the backend.
func (s *AlertStore) Create(ctx context.Context, in models.AlertInput) (*models.Alert, error) {
	if err := payload.Validate(in); err != nil {
		return nil, err
	}

	alert := &models.Alert{}
	if err := nullViolation(alert.TableName(), in.NullColumns()); err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	in.Apply(alert)

	if err := s.backend.Insert(ctx, alert); err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	return alert, nil
}

// List returns every alert.
func (s *AlertStore) List(ctx context.Context) ([]models.Alert, error) {
	alerts := []models.Alert{}
	if err := s.backend.List(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

// Get returns the alert with the given row id.
func (s *AlertStore) Get(ctx context.Context, rowID uint64) (*models.Alert, error) {
	var alert models.Alert
	if err := s.backend.Get(ctx, &alert, alertKey(rowID)); err != nil {
		return nil, fmt.Errorf("get alert %d: %w", rowID, err)
	}
	return &alert, nil
}

// Update merges the keys present in patch over the stored alert. The patch is decoded
// and validated before the lookup, so a bad body on a missing row is a validation error.
func (s *AlertStore) Update(ctx context.Context, rowID uint64, patch models.AlertInput) (*models.Alert, error) {
	var alert models.Alert
	err := s.backend.Update(ctx, &alert, alertKey(rowID), func() error {
		if err := nullViolation(alert.TableName(), patch.NullColumns()); err != nil {
			return err
		}
		patch.Apply(&alert)
		alert.RowID = rowID
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update alert %d: %w", rowID, err)
	}
	return &alert, nil
}

// Delete removes the alert and returns its last state.
func (s *AlertStore) Delete(ctx context.Context, rowID uint64) (*models.Alert, error) {
	var alert models.Alert
	if err := s.backend.Delete(ctx, &alert, alertKey(rowID)); err != nil {
		return nil, fmt.Errorf("delete alert %d: %w", rowID, err)
	}
	return &alert, nil
}
