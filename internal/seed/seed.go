// Package seed fills empty tables with demo data on startup.
package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"konnect-service-go/internal/apperr"
	"konnect-service-go/internal/models"
)

// Backend is the subset of database.Backend the seeder needs.
type Backend interface {
	Count(ctx context.Context, model any) (int64, error)
	Insert(ctx context.Context, record any) error
	List(ctx context.Context, dest any) error
}

const batchSize = 10

// RefreshIntervalSeconds is the interval stored when the config table is empty.
const RefreshIntervalSeconds = 200

var (
	brokers         = []string{"Zerodha", "Upstox", "Groww"}
	alertSymbols    = []string{"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK", "HINDUNILVR", "SBIN", "BAJFINANCE", "BHARTIARTL", "KOTAKBANK"}
	orderStatuses   = []string{"Filled", "Pending", "Cancelled"}
	ocoStatuses     = []string{"Active", "Cancelled"}
	overallStatuses = []string{"Open", "Closed"}
	signalSymbols   = []string{"NIFTY", "BANKNIFTY", "FINNIFTY", "RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK", "HINDUNILVR", "SBIN"}
	strategies      = []string{"Breakout", "MeanReversion", "Momentum", "Scalping"}
)

// Seeder writes demo rows into whichever tables are empty.
type Seeder struct {
	backend Backend
	log     *zap.Logger
	rnd     *rand.Rand
}

// NewSeeder creates a Seeder. rnd drives every generated value.
func NewSeeder(backend Backend, log *zap.Logger, rnd *rand.Rand) *Seeder {
	return &Seeder{backend: backend, log: log.Named("seed"), rnd: rnd}
}

// Run seeds users, the refresh interval, alerts and signals in that order. Each table
// is written in one batch; a failing table does not stop the others.
func (s *Seeder) Run(ctx context.Context) error {
	var errs error
	errs = multierr.Append(errs, s.seedUsers(ctx))
	errs = multierr.Append(errs, s.seedRefreshInterval(ctx))
	errs = multierr.Append(errs, s.seedAlerts(ctx))
	errs = multierr.Append(errs, s.seedSignals(ctx))
	return errs
}

func (s *Seeder) empty(ctx context.Context, model any) (bool, error) {
	n, err := s.backend.Count(ctx, model)
	if err != nil {
		return false, fmt.Errorf("count %T: %w", model, err)
	}
	return n == 0, nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	if ok, err := s.empty(ctx, &models.User{}); !ok {
		return err
	}
	users := make([]models.User, 0, batchSize)
	for i := 1; i <= batchSize; i++ {
		users = append(users, models.User{
			UserID:      fmt.Sprintf("user %d", i),
			Username:    fmt.Sprintf("user name %d", i),
			Stockbroker: pick(s.rnd, brokers),
		})
	}
	if err := s.backend.Insert(ctx, &users); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	s.log.Info("Seeded users", zap.Int("count", len(users)))
	return nil
}

func (s *Seeder) seedRefreshInterval(ctx context.Context) error {
	if ok, err := s.empty(ctx, &models.RefreshInterval{}); !ok {
		return err
	}
	if err := s.backend.Insert(ctx, &models.RefreshInterval{IntervalSeconds: RefreshIntervalSeconds}); err != nil {
		return fmt.Errorf("seed refresh interval: %w", err)
	}
	s.log.Info("Seeded refresh interval", zap.Int("interval_seconds", RefreshIntervalSeconds))
	return nil
}

func (s *Seeder) seedAlerts(ctx context.Context) error {
	if ok, err := s.empty(ctx, &models.Alert{}); !ok {
		return err
	}
	var users []models.User
	if err := s.backend.List(ctx, &users); err != nil {
		return fmt.Errorf("list users for alerts: %w", err)
	}
	if len(users) == 0 {
		s.log.Warn("No users to attach alerts to, skipping alert seeding")
		return nil
	}

	alerts := make([]models.Alert, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		ocoOrderNo := orderNo(s.rnd)
		ocoStatus := pick(s.rnd, ocoStatuses)
		alerts = append(alerts, models.Alert{
			Date:           fmt.Sprintf("2024-05-%02d", 10+i),
			UserID:         users[s.rnd.IntN(len(users))].UserID,
			Symbol:         pick(s.rnd, alertSymbols),
			OrderNo:        orderNo(s.rnd),
			OrderStatus:    pick(s.rnd, orderStatuses),
			Quantity:       int64(1 + s.rnd.IntN(100)),
			BuyPrice:       uniform(s.rnd, 100, 4000),
			LastTradePrice: uniform(s.rnd, 100, 4000),
			ProfitLoss:     uniform(s.rnd, -500, 500),
			ProfitLossPct:  uniform(s.rnd, -10, 10),
			OCOOrderNo:     &ocoOrderNo,
			OCOStatus:      &ocoStatus,
			OverallStatus:  pick(s.rnd, overallStatuses),
		})
	}
	if err := s.backend.Insert(ctx, &alerts); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			s.log.Warn("Could not seed alerts due to a duplicate entry", zap.Error(err))
			return nil
		}
		return fmt.Errorf("seed alerts: %w", err)
	}
	s.log.Info("Seeded alerts", zap.Int("count", len(alerts)))
	return nil
}

func (s *Seeder) seedSignals(ctx context.Context) error {
	if ok, err := s.empty(ctx, &models.Signal{}); !ok {
		return err
	}
	signals := make([]models.Signal, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		price := uniform(s.rnd, 100, 50000)
		counter := int64(1 + s.rnd.IntN(5))
		at := fmt.Sprintf("%02d:%02d:%02d", 9+s.rnd.IntN(6), s.rnd.IntN(60), s.rnd.IntN(60))
		signals = append(signals, models.Signal{
			Date:     fmt.Sprintf("2024-05-%02d", 20+i),
			Symbol:   pick(s.rnd, signalSymbols),
			Strategy: pick(s.rnd, strategies),
			Price:    &price,
			Counter:  &counter,
			Time:     &at,
		})
	}
	if err := s.backend.Insert(ctx, &signals); err != nil {
		return fmt.Errorf("seed signals: %w", err)
	}
	s.log.Info("Seeded signals", zap.Int("count", len(signals)))
	return nil
}

func pick(rnd *rand.Rand, values []string) string {
	return values[rnd.IntN(len(values))]
}

func orderNo(rnd *rand.Rand) string {
	return fmt.Sprintf("%d", 10000+rnd.IntN(90000))
}

// uniform returns a value in [lo, hi) rounded to two decimals.
func uniform(rnd *rand.Rand, lo, hi float64) float64 {
	return math.Round((lo+rnd.Float64()*(hi-lo))*100) / 100
}
