// Package service internal/application/service/tracker_service.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/damon-houk/expense-tracker/internal/domain/currency"
	"github.com/damon-houk/expense-tracker/internal/domain/entity"
	"github.com/damon-houk/expense-tracker/internal/domain/repository"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/middleware"
)

// TrackerService owns the expense store and the display currency. It is
// initialized from the snapshot repository and writes back after every
// successful mutation. Operations run one at a time.
type TrackerService struct {
	mu      sync.Mutex
	repo    repository.SnapshotRepository
	table   *currency.Table
	store   *ExpenseStore
	display string
	logger  logger.Logger
	closed  bool
}

type trackerOptions struct {
	logger logger.Logger
	now    func() time.Time
	table  *currency.Table
}

// TrackerOption configures OpenTracker
type TrackerOption func(*trackerOptions)

// WithLogger sets the logger used by the tracker
func WithLogger(log logger.Logger) TrackerOption {
	return func(o *trackerOptions) { o.logger = log }
}

// WithClock sets the clock used to derive expense ids
func WithClock(now func() time.Time) TrackerOption {
	return func(o *trackerOptions) { o.now = now }
}

// WithRateTable replaces the built-in rate table
func WithRateTable(table *currency.Table) TrackerOption {
	return func(o *trackerOptions) { o.table = table }
}

// OpenTracker loads the persisted snapshot and returns a ready tracker. An
// unsupported stored display currency falls back to the reference currency.
func OpenTracker(ctx context.Context, repo repository.SnapshotRepository, opts ...TrackerOption) (*TrackerService, error) {
	o := trackerOptions{
		logger: logger.GetDefaultLogger(),
		now:    time.Now,
		table:  currency.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.GetDefaultLogger()
	}

	snapshot, err := repo.Load(ctx)
	if err != nil {
		o.logger.Error("Failed to load snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	t := &TrackerService{
		repo:    repo,
		table:   o.table,
		store:   NewExpenseStore(o.table, o.now),
		display: currency.Reference,
		logger:  o.logger,
	}

	if dropped := t.store.Seed(snapshot.Expenses); dropped > 0 {
		t.logger.Warn("Dropped stored expenses with duplicate ids", map[string]interface{}{
			"dropped": dropped,
		})
	}

	for _, e := range t.store.List() {
		if !t.table.IsSupported(e.Currency) {
			t.logger.Warn("Stored expense has an unsupported currency", map[string]interface{}{
				"id":       e.ID,
				"currency": e.Currency,
			})
		}
	}

	switch {
	case snapshot.DisplayCurrency == "":
	case t.table.IsSupported(snapshot.DisplayCurrency):
		t.display = snapshot.DisplayCurrency
	default:
		t.logger.Warn("Ignoring unsupported stored display currency", map[string]interface{}{
			"currency": snapshot.DisplayCurrency,
			"fallback": currency.Reference,
		})
	}

	t.logger.Info("Tracker opened", map[string]interface{}{
		"expenses":         t.store.Len(),
		"display_currency": t.display,
	})

	return t, nil
}

// AddExpense records a new expense denominated in the current display currency.
// If storage fails the expense stays in memory and is returned along with an
// error wrapping entity.ErrPersistence.
func (t *TrackerService) AddExpense(ctx context.Context, title string, amount float64) (entity.Expense, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.add(ctx, title, amount, t.display)
}

// AddExpenseIn records a new expense denominated in code
func (t *TrackerService) AddExpenseIn(ctx context.Context, title string, amount float64, code string) (entity.Expense, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.add(ctx, title, amount, code)
}

func (t *TrackerService) add(ctx context.Context, title string, amount float64, code string) (entity.Expense, error) {
	if t.closed {
		return entity.Expense{}, entity.ErrClosed
	}

	requestID := middleware.GetRequestID(ctx)

	e, err := t.store.Add(title, amount, code)
	if err != nil {
		t.logger.Warn("Rejected new expense", map[string]interface{}{
			"request_id": requestID,
			"title":      title,
			"amount":     amount,
			"currency":   code,
			"error":      err.Error(),
		})
		return entity.Expense{}, err
	}

	t.logger.Info("Expense added", map[string]interface{}{
		"request_id": requestID,
		"id":         e.ID,
		"amount":     e.Amount,
		"currency":   e.Currency,
	})

	return e, t.saveExpenses(ctx)
}

// EditExpense replaces title and amount of an expense, keeping its currency
func (t *TrackerService) EditExpense(ctx context.Context, id int64, title string, amount float64) (entity.Expense, error) {
	return t.UpdateExpense(ctx, id, entity.ExpenseUpdate{Title: title, Amount: amount})
}

// UpdateExpense applies upd to the expense with id
func (t *TrackerService) UpdateExpense(ctx context.Context, id int64, upd entity.ExpenseUpdate) (entity.Expense, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return entity.Expense{}, entity.ErrClosed
	}

	requestID := middleware.GetRequestID(ctx)

	e, err := t.store.Update(id, upd)
	if err != nil {
		t.logger.Warn("Rejected expense update", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		return entity.Expense{}, err
	}

	t.logger.Info("Expense updated", map[string]interface{}{
		"request_id": requestID,
		"id":         e.ID,
		"amount":     e.Amount,
		"currency":   e.Currency,
	})

	return e, t.saveExpenses(ctx)
}

// DeleteExpense permanently removes the expense with id
func (t *TrackerService) DeleteExpense(ctx context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return entity.ErrClosed
	}

	requestID := middleware.GetRequestID(ctx)

	if err := t.store.Remove(id); err != nil {
		t.logger.Warn("Rejected expense removal", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		return err
	}

	t.logger.Info("Expense deleted", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	return t.saveExpenses(ctx)
}

// GetExpense returns the expense with id
func (t *TrackerService) GetExpense(id int64) (entity.Expense, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.store.Get(id)
}

// ListExpenses returns every expense in insertion order
func (t *TrackerService) ListExpenses() []entity.Expense {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.store.List()
}

// DisplayCurrency returns the selected display currency
func (t *TrackerService) DisplayCurrency() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.display
}

// SetDisplayCurrency selects the currency used for display conversion
func (t *TrackerService) SetDisplayCurrency(ctx context.Context, code string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return entity.ErrClosed
	}

	requestID := middleware.GetRequestID(ctx)

	if _, err := t.table.Lookup(code); err != nil {
		t.logger.Warn("Rejected display currency", map[string]interface{}{
			"request_id": requestID,
			"currency":   code,
		})
		return err
	}

	previous := t.display
	t.display = code

	t.logger.Info("Display currency changed", map[string]interface{}{
		"request_id": requestID,
		"from":       previous,
		"to":         code,
	})

	return t.saveCurrency(ctx)
}

// RateTable returns the rate table the tracker validates against
func (t *TrackerService) RateTable() *currency.Table {
	return t.table
}

// Close flushes the full state to storage. Later mutations fail with
// entity.ErrClosed; reads keep working.
func (t *TrackerService) Close(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	if err := t.saveExpenses(ctx); err != nil {
		return err
	}
	if err := t.saveCurrency(ctx); err != nil {
		return err
	}

	t.logger.Info("Tracker closed", map[string]interface{}{
		"expenses":         t.store.Len(),
		"display_currency": t.display,
	})
	return nil
}

func (t *TrackerService) saveExpenses(ctx context.Context) error {
	if err := t.repo.SaveExpenses(ctx, t.store.List()); err != nil {
		t.logger.Error("Failed to save expenses", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"error":      err.Error(),
		})
		return fmt.Errorf("%w: %v", entity.ErrPersistence, err)
	}
	return nil
}

func (t *TrackerService) saveCurrency(ctx context.Context) error {
	if err := t.repo.SaveCurrency(ctx, t.display); err != nil {
		t.logger.Error("Failed to save display currency", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"currency":   t.display,
			"error":      err.Error(),
		})
		return fmt.Errorf("%w: %v", entity.ErrPersistence, err)
	}
	return nil
}
