package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"konnect-service-go/internal/apperr"
	"konnect-service-go/internal/config"
	"konnect-service-go/internal/database"
	"konnect-service-go/internal/models"
	"konnect-service-go/internal/payload"
)

// setupTest creates all managers over a fresh in-memory database.
func setupTest(t *testing.T) *Stores {
	db, err := database.NewDatabase(config.Database{DSN: "file::memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return New(database.NewBackend(db))
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, payload.Decode(strings.NewReader(body), &v))
	return v
}

func mustCreateUser(t *testing.T, s *Stores, id, name string) {
	t.Helper()
	_, err := s.Users.Create(context.Background(), models.UserInput{
		UserID: payload.Set(id), Username: payload.Set(name), Stockbroker: payload.Set("Zerodha"),
	})
	require.NoError(t, err)
}

const alertBody = `{
	"Date": "2024-05-10", "userId": "u1", "Symbol": "RELIANCE",
	"Order No.": "48213", "Order Status": "Filled", "Quantity": 12,
	"Buy Price": 2890.5, "Last Trade Price": 2921.25, "Profit/Loss": 369,
	"Profit/Loss %": 1.06, "Overall Status": "Open"
}`

func TestUserStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Create echoes input", func(t *testing.T) {
		s := setupTest(t)
		in := decode[models.UserInput](t, `{"userId": "u1", "username": "alice", "stockbroker": "Zerodha"}`)

		user, err := s.Users.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, models.User{UserID: "u1", Username: "alice", Stockbroker: "Zerodha"}, *user)
	})

	t.Run("Create rejects null and missing fields", func(t *testing.T) {
		s := setupTest(t)
		for _, body := range []string{
			`{"userId": "u1", "username": null, "stockbroker": "Zerodha"}`,
			`{"userId": "u1", "username": "alice"}`,
		} {
			_, err := s.Users.Create(ctx, decode[models.UserInput](t, body))
			assert.True(t, apperr.Is(err, apperr.KindValidation), "body %s: %v", body, err)
		}
	})

	t.Run("Duplicate id or username conflicts", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")

		_, err := s.Users.Create(ctx, decode[models.UserInput](t, `{"userId": "u2", "username": "alice", "stockbroker": "Groww"}`))
		assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)

		_, err = s.Users.Create(ctx, decode[models.UserInput](t, `{"userId": "u1", "username": "bob", "stockbroker": "Groww"}`))
		assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)
	})

	t.Run("Update ignores userId and keeps absent fields", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")

		user, err := s.Users.Update(ctx, "u1", decode[models.UserInput](t, `{"userId": "hijack", "stockbroker": "Upstox"}`))
		require.NoError(t, err)
		assert.Equal(t, models.User{UserID: "u1", Username: "alice", Stockbroker: "Upstox"}, *user)

		_, err = s.Users.Get(ctx, "hijack")
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("Update with null username conflicts", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")

		_, err := s.Users.Update(ctx, "u1", decode[models.UserInput](t, `{"username": null}`))
		assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)
	})

	t.Run("Delete returns snapshot then not found", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")

		user, err := s.Users.Delete(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)

		_, err = s.Users.Get(ctx, "u1")
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
		_, err = s.Users.Delete(ctx, "u1")
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("List", func(t *testing.T) {
		s := setupTest(t)
		users, err := s.Users.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)

		mustCreateUser(t, s, "u1", "alice")
		mustCreateUser(t, s, "u2", "bob")
		users, err = s.Users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func TestAlertStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Create echoes input", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")

		alert, err := s.Alerts.Create(ctx, decode[models.AlertInput](t, alertBody))
		require.NoError(t, err)
		assert.Equal(t, uint64(1), alert.RowID)

		got, err := json.Marshal(alert)
		require.NoError(t, err)
		var echoed map[string]any
		require.NoError(t, json.Unmarshal(got, &echoed))
		var sent map[string]any
		require.NoError(t, json.Unmarshal([]byte(alertBody), &sent))
		for k, v := range sent {
			assert.Equal(t, v, echoed[k], "field %s", k)
		}
		assert.Nil(t, echoed["OCO Order No."])
		assert.Nil(t, echoed["OCO Status"])
	})

	t.Run("Missing key is rejected", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")

		in := decode[models.AlertInput](t, alertBody)
		in.Quantity = payload.Field[int64]{}
		_, err := s.Alerts.Create(ctx, in)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.Contains(t, apperr.PublicMessage(err), "Quantity")
	})

	t.Run("Null required value conflicts and writes nothing", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")

		in := decode[models.AlertInput](t, alertBody)
		in.Symbol = payload.Null[string]()
		_, err := s.Alerts.Create(ctx, in)
		assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)

		alerts, err := s.Alerts.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("Uniqueness on date, user and symbol", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")
		mustCreateUser(t, s, "u2", "bob")

		base := decode[models.AlertInput](t, alertBody)
		_, err := s.Alerts.Create(ctx, base)
		require.NoError(t, err)

		_, err = s.Alerts.Create(ctx, base)
		assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)

		variants := []func(in *models.AlertInput){
			func(in *models.AlertInput) { in.Date = payload.Set("2024-05-11") },
			func(in *models.AlertInput) { in.UserID = payload.Set("u2") },
			func(in *models.AlertInput) { in.Symbol = payload.Set("TCS") },
		}
		for i, vary := range variants {
			in := base
			vary(&in)
			_, err := s.Alerts.Create(ctx, in)
			assert.NoError(t, err, "variant %d", i)
		}
	})

	t.Run("Unknown user conflicts", func(t *testing.T) {
		s := setupTest(t)
		_, err := s.Alerts.Create(ctx, decode[models.AlertInput](t, alertBody))
		assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)
	})

	t.Run("Partial update leaves other fields unchanged", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")
		created, err := s.Alerts.Create(ctx, decode[models.AlertInput](t, alertBody))
		require.NoError(t, err)

		updated, err := s.Alerts.Update(ctx, created.RowID, decode[models.AlertInput](t, `{"Last Trade Price": 2950.75}`))
		require.NoError(t, err)

		want := *created
		want.LastTradePrice = 2950.75
		assert.Equal(t, want, *updated)

		stored, err := s.Alerts.Get(ctx, created.RowID)
		require.NoError(t, err)
		assert.Equal(t, want, *stored)
	})

	t.Run("Update can clear an optional field", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")
		in := decode[models.AlertInput](t, alertBody)
		in.OCOStatus = payload.Set("Active")
		created, err := s.Alerts.Create(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, created.OCOStatus)

		updated, err := s.Alerts.Update(ctx, created.RowID, decode[models.AlertInput](t, `{"OCO Status": null}`))
		require.NoError(t, err)
		assert.Nil(t, updated.OCOStatus)
	})

	t.Run("Update into an existing triple conflicts", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")
		_, err := s.Alerts.Create(ctx, decode[models.AlertInput](t, alertBody))
		require.NoError(t, err)
		in := decode[models.AlertInput](t, alertBody)
		in.Symbol = payload.Set("TCS")
		second, err := s.Alerts.Create(ctx, in)
		require.NoError(t, err)

		_, err = s.Alerts.Update(ctx, second.RowID, decode[models.AlertInput](t, `{"Symbol": "RELIANCE"}`))
		assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)

		stored, err := s.Alerts.Get(ctx, second.RowID)
		require.NoError(t, err)
		assert.Equal(t, "TCS", stored.Symbol)
	})

	t.Run("Delete returns snapshot", func(t *testing.T) {
		s := setupTest(t)
		mustCreateUser(t, s, "u1", "alice")
		created, err := s.Alerts.Create(ctx, decode[models.AlertInput](t, alertBody))
		require.NoError(t, err)

		deleted, err := s.Alerts.Delete(ctx, created.RowID)
		require.NoError(t, err)
		assert.Equal(t, *created, *deleted)

		_, err = s.Alerts.Get(ctx, created.RowID)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("Missing row", func(t *testing.T) {
		s := setupTest(t)
		_, err := s.Alerts.Update(ctx, 42, decode[models.AlertInput](t, `{"Symbol": "TCS"}`))
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
		_, err = s.Alerts.Delete(ctx, 42)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

func TestSignalStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Create with only required keys", func(t *testing.T) {
		s := setupTest(t)
		signal, err := s.Signals.Create(ctx, decode[models.SignalInput](t, `{"adate": "2024-05-20", "asymbol": "NIFTY", "astrategy": "Breakout"}`))
		require.NoError(t, err)
		assert.Equal(t, models.Signal{RowID: 1, Date: "2024-05-20", Symbol: "NIFTY", Strategy: "Breakout"}, *signal)
	})

	t.Run("Missing strategy is rejected", func(t *testing.T) {
		s := setupTest(t)
		_, err := s.Signals.Create(ctx, decode[models.SignalInput](t, `{"adate": "2024-05-20", "asymbol": "NIFTY"}`))
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("Uniqueness on date, strategy and symbol", func(t *testing.T) {
		s := setupTest(t)
		body := `{"adate": "2024-05-20", "asymbol": "NIFTY", "astrategy": "Breakout", "aprice": 22500.5, "acounter": 2, "atime": "09:15:00"}`
		_, err := s.Signals.Create(ctx, decode[models.SignalInput](t, body))
		require.NoError(t, err)

		_, err = s.Signals.Create(ctx, decode[models.SignalInput](t, body))
		assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)

		for _, other := range []string{
			`{"adate": "2024-05-21", "asymbol": "NIFTY", "astrategy": "Breakout"}`,
			`{"adate": "2024-05-20", "asymbol": "BANKNIFTY", "astrategy": "Breakout"}`,
			`{"adate": "2024-05-20", "asymbol": "NIFTY", "astrategy": "Momentum"}`,
		} {
			_, err := s.Signals.Create(ctx, decode[models.SignalInput](t, other))
			assert.NoError(t, err, other)
		}
	})

	t.Run("Partial update and delete", func(t *testing.T) {
		s := setupTest(t)
		created, err := s.Signals.Create(ctx, decode[models.SignalInput](t, `{"adate": "2024-05-20", "asymbol": "NIFTY", "astrategy": "Breakout", "aprice": 22500.5}`))
		require.NoError(t, err)

		updated, err := s.Signals.Update(ctx, created.RowID, decode[models.SignalInput](t, `{"acounter": 4}`))
		require.NoError(t, err)
		require.NotNil(t, updated.Counter)
		assert.Equal(t, int64(4), *updated.Counter)
		require.NotNil(t, updated.Price)
		assert.Equal(t, 22500.5, *updated.Price)

		deleted, err := s.Signals.Delete(ctx, created.RowID)
		require.NoError(t, err)
		assert.Equal(t, *updated, *deleted)
	})

	t.Run("Update of unknown id", func(t *testing.T) {
		s := setupTest(t)
		_, err := s.Signals.Update(ctx, 9999, decode[models.SignalInput](t, `{"aprice": 1.5}`))
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

func TestConfigStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Fallback then configured", func(t *testing.T) {
		s := setupTest(t)

		ri, configured, err := s.Config.Get(ctx)
		require.NoError(t, err)
		assert.False(t, configured)
		assert.Equal(t, int64(models.DefaultRefreshIntervalSeconds), ri.IntervalSeconds)

		_, err = s.Config.Create(ctx, models.RefreshIntervalInput{IntervalSeconds: payload.Set(int64(120))})
		require.NoError(t, err)

		ri, configured, err = s.Config.Get(ctx)
		require.NoError(t, err)
		assert.True(t, configured)
		assert.Equal(t, int64(120), ri.IntervalSeconds)
	})

	t.Run("Create validates type and uniqueness", func(t *testing.T) {
		s := setupTest(t)

		_, err := s.Config.Create(ctx, models.RefreshIntervalInput{})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		_, err = s.Config.Create(ctx, models.RefreshIntervalInput{IntervalSeconds: payload.Null[int64]()})
		assert.True(t, apperr.Is(err, apperr.KindValidation))

		_, err = s.Config.Create(ctx, models.RefreshIntervalInput{IntervalSeconds: payload.Set(int64(60))})
		require.NoError(t, err)
		_, err = s.Config.Create(ctx, models.RefreshIntervalInput{IntervalSeconds: payload.Set(int64(60))})
		assert.True(t, apperr.Is(err, apperr.KindConflict))

		// Distinct values may coexist; readers see the first row.
		_, err = s.Config.Create(ctx, models.RefreshIntervalInput{IntervalSeconds: payload.Set(int64(90))})
		require.NoError(t, err)
		ri, _, err := s.Config.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(60), ri.IntervalSeconds)
	})

	t.Run("Update", func(t *testing.T) {
		s := setupTest(t)
		created, err := s.Config.Create(ctx, models.RefreshIntervalInput{IntervalSeconds: payload.Set(int64(60))})
		require.NoError(t, err)

		updated, err := s.Config.Update(ctx, created.ID, models.RefreshIntervalInput{IntervalSeconds: payload.Set(int64(30))})
		require.NoError(t, err)
		assert.Equal(t, models.RefreshInterval{ID: created.ID, IntervalSeconds: 30}, *updated)

		_, err = s.Config.Update(ctx, 77, models.RefreshIntervalInput{IntervalSeconds: payload.Set(int64(30))})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

// setupFileTest creates all managers over a fresh database file, so the backend runs
// with a real connection pool.
func setupFileTest(t *testing.T) *Stores {
	dsn := filepath.Join(t.TempDir(), "konnect.db")
	db, err := database.NewDatabase(config.Database{DSN: dsn}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return New(database.NewBackend(db))
}

// runConcurrently calls fn from n goroutines at once and collects the errors.
func runConcurrently(n int, fn func(i int) error) []error {
	errs := make([]error, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = fn(i)
		}()
	}
	close(start)
	wg.Wait()
	return errs
}

func kinds(errs []error) map[string]int {
	out := make(map[string]int)
	for _, err := range errs {
		if err == nil {
			out["ok"]++
			continue
		}
		out[apperr.KindOf(err).String()]++
	}
	return out
}

func TestStores_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	const workers = 50

	t.Run("Updates of one row all succeed", func(t *testing.T) {
		s := setupFileTest(t)
		signal, err := s.Signals.Create(ctx, decode[models.SignalInput](t,
			`{"adate": "2024-05-20", "asymbol": "TCS", "astrategy": "Breakout"}`))
		require.NoError(t, err)

		errs := runConcurrently(workers, func(i int) error {
			_, err := s.Signals.Update(ctx, signal.RowID, models.SignalInput{Counter: payload.Set(int64(i))})
			return err
		})
		assert.Equal(t, map[string]int{"ok": workers}, kinds(errs))

		got, err := s.Signals.Get(ctx, signal.RowID)
		require.NoError(t, err)
		require.NotNil(t, got.Counter)
		assert.True(t, *got.Counter >= 0 && *got.Counter < workers)
	})

	t.Run("Duplicate creates yield one success", func(t *testing.T) {
		s := setupFileTest(t)

		errs := runConcurrently(workers, func(i int) error {
			_, err := s.Users.Create(ctx, models.UserInput{
				UserID:      payload.Set("u1"),
				Username:    payload.Set(fmt.Sprintf("alice %d", i)),
				Stockbroker: payload.Set("Zerodha"),
			})
			return err
		})
		assert.Equal(t, map[string]int{"ok": 1, apperr.KindConflict.String(): workers - 1}, kinds(errs))

		users, err := s.Users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("Deletes of one row yield one success", func(t *testing.T) {
		s := setupFileTest(t)
		mustCreateUser(t, s, "u1", "alice")

		errs := runConcurrently(workers, func(int) error {
			_, err := s.Users.Delete(ctx, "u1")
			return err
		})
		assert.Equal(t, map[string]int{"ok": 1, apperr.KindNotFound.String(): workers - 1}, kinds(errs))
	})
}
