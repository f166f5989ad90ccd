// Package db internal/infrastructure/db/badger_snapshot_repository.go
package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/damon-houk/expense-tracker/internal/domain/currency"
	"github.com/damon-houk/expense-tracker/internal/domain/entity"
	"github.com/damon-houk/expense-tracker/internal/domain/repository"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/logger"
	"github.com/dgraph-io/badger/v3"
)

// errMalformed marks stored data that could not be decoded
var errMalformed = errors.New("malformed stored expenses")

// storedExpense is the on-disk record. Currency is optional for records written
// before expenses carried a currency; Amount may be a number or a numeric string.
type storedExpense struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Amount   json.RawMessage `json:"amount"`
	Currency *string         `json:"currency,omitempty"`
}

// BadgerSnapshotRepository implements repository.SnapshotRepository using BadgerDB
type BadgerSnapshotRepository struct {
	db     *badger.DB
	logger logger.Logger
}

// NewBadgerSnapshotRepository creates a new BadgerDB snapshot repository
func NewBadgerSnapshotRepository(db *badger.DB, log logger.Logger) *BadgerSnapshotRepository {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &BadgerSnapshotRepository{db: db, logger: log}
}

var _ repository.SnapshotRepository = (*BadgerSnapshotRepository)(nil)

// Load reads both keys. A missing key leaves its part of the snapshot empty and
// an unparsable expense list is treated as no prior data. Single records with
// an unreadable amount are skipped; their siblings are kept.
func (r *BadgerSnapshotRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	var rawExpenses, rawCurrency []byte

	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		if rawExpenses, err = getValue(txn, repository.ExpensesKey); err != nil {
			return err
		}
		rawCurrency, err = getValue(txn, repository.CurrencyKey)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snapshot := &entity.Snapshot{
		Expenses:        []entity.Expense{},
		DisplayCurrency: decodeCurrency(rawCurrency),
	}

	if rawExpenses == nil {
		return snapshot, nil
	}

	decoded, err := decodeExpenses(rawExpenses)
	if err != nil {
		r.logger.Warn("Ignoring unreadable stored expenses", map[string]interface{}{
			"key":   repository.ExpensesKey,
			"bytes": len(rawExpenses),
			"error": err.Error(),
		})
		return snapshot, nil
	}

	for _, rec := range decoded.skipped {
		r.logger.Warn("Skipping unreadable stored expense", map[string]interface{}{
			"index": rec.index,
			"id":    rec.id,
			"error": rec.err.Error(),
		})
	}

	if decoded.legacy > 0 {
		r.logger.Info("Upgraded legacy expenses without currency", map[string]interface{}{
			"count":    decoded.legacy,
			"currency": currency.Reference,
		})
	}

	snapshot.Expenses = decoded.expenses
	return snapshot, nil
}

// SaveExpenses replaces the stored expense list
func (r *BadgerSnapshotRepository) SaveExpenses(ctx context.Context, expenses []entity.Expense) error {
	if expenses == nil {
		expenses = []entity.Expense{}
	}

	data, err := json.Marshal(expenses)
	if err != nil {
		return fmt.Errorf("failed to marshal expenses: %w", err)
	}

	if err := r.set(repository.ExpensesKey, data); err != nil {
		return fmt.Errorf("failed to store expenses: %w", err)
	}

	r.logger.Debug("Expenses saved", map[string]interface{}{
		"count": len(expenses),
		"bytes": len(data),
	})
	return nil
}

// SaveCurrency replaces the stored display currency
func (r *BadgerSnapshotRepository) SaveCurrency(ctx context.Context, code string) error {
	if err := r.set(repository.CurrencyKey, []byte(code)); err != nil {
		return fmt.Errorf("failed to store currency: %w", err)
	}

	r.logger.Debug("Display currency saved", map[string]interface{}{
		"currency": code,
	})
	return nil
}

func (r *BadgerSnapshotRepository) set(key string, value []byte) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// getValue returns a copy of the value at key, or nil when the key is absent
func getValue(txn *badger.Txn, key string) ([]byte, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

// decodeCurrency accepts the raw code as well as a JSON-quoted code
func decodeCurrency(raw []byte) string {
	code := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(code); err == nil {
		code = unquoted
	}
	return code
}

type skippedRecord struct {
	index int
	id    int64
	err   error
}

type decodedExpenses struct {
	expenses []entity.Expense
	legacy   int
	skipped  []skippedRecord
}

// decodeExpenses parses the stored list, assigning the reference currency to
// records that have none. Only a list that does not parse as a whole is an
// error; records with an unreadable amount are reported in skipped.
func decodeExpenses(raw []byte) (decodedExpenses, error) {
	var records []storedExpense
	if err := json.Unmarshal(raw, &records); err != nil {
		return decodedExpenses{}, fmt.Errorf("%w: %v", errMalformed, err)
	}

	out := decodedExpenses{expenses: make([]entity.Expense, 0, len(records))}

	for i, rec := range records {
		amount, err := decodeAmount(rec.Amount)
		if err != nil {
			out.skipped = append(out.skipped, skippedRecord{index: i, id: rec.ID, err: err})
			continue
		}

		code := ""
		if rec.Currency != nil {
			code = strings.TrimSpace(*rec.Currency)
		}
		if code == "" {
			code = currency.Reference
			out.legacy++
		}

		out.expenses = append(out.expenses, entity.Expense{
			ID:       rec.ID,
			Title:    rec.Title,
			Amount:   amount,
			Currency: code,
		})
	}

	return out, nil
}

func decodeAmount(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errors.New("amount is missing")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("amount %q is not finite", s)
		}
		return f, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return f, nil
}
