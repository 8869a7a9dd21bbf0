// Package store holds the resource managers for users, alerts, signals and the
// refresh interval setting. Managers keep no state between calls; every operation
// validates its input and then performs exactly one Backend call.
package store

import (
	"context"
	"fmt"
	"strings"

	"konnect-service-go/internal/apperr"
	"konnect-service-go/internal/database"
)

// Backend is the transactional datastore the managers run on.
type Backend interface {
	Insert(ctx context.Context, record any) error
	Get(ctx context.Context, dest any, key database.Key) error
	First(ctx context.Context, dest any) error
	List(ctx context.Context, dest any) error
	Update(ctx context.Context, dest any, key database.Key, apply func() error) error
	Delete(ctx context.Context, dest any, key database.Key) error
}

var _ Backend = (*database.Backend)(nil)

// Stores bundles the four managers over one backend.
type Stores struct {
	Users   *UserStore
	Alerts  *AlertStore
	Signals *SignalStore
	Config  *ConfigStore
}

// New creates all managers over backend.
func New(backend Backend) *Stores {
	return &Stores{
		Users:   NewUserStore(backend),
		Alerts:  NewAlertStore(backend),
		Signals: NewSignalStore(backend),
		Config:  NewConfigStore(backend),
	}
}

// nullViolation rejects writes that would store null into NOT NULL columns, the same
// outcome the datastore reports for such a write.
func nullViolation(table string, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	qualified := make([]string, len(columns))
	for i, c := range columns {
		qualified[i] = table + "." + c
	}
	return apperr.Conflict(fmt.Errorf("NOT NULL constraint failed: %s", strings.Join(qualified, ", ")))
}
