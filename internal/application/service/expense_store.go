package service

import (
	"fmt"
	"time"

	"github.com/damon-houk/expense-tracker/internal/domain/currency"
	"github.com/damon-houk/expense-tracker/internal/domain/entity"
)

// ExpenseStore is the ordered in-memory collection of expenses. Insertion
// order is display order. It is not safe for concurrent use; TrackerService
// serializes access.
type ExpenseStore struct {
	table    *currency.Table
	now      func() time.Time
	expenses []entity.Expense
	lastID   int64
}

// NewExpenseStore creates an empty store. Ids are derived from now in Unix
// milliseconds and bumped past the last issued id on collision.
func NewExpenseStore(table *currency.Table, now func() time.Time) *ExpenseStore {
	if table == nil {
		table = currency.Default()
	}
	if now == nil {
		now = time.Now
	}

	return &ExpenseStore{table: table, now: now}
}

// Seed replaces the contents with previously persisted expenses. Records
// repeating an earlier id are dropped; the number dropped is returned.
func (s *ExpenseStore) Seed(expenses []entity.Expense) int {
	seen := make(map[int64]struct{}, len(expenses))
	s.expenses = make([]entity.Expense, 0, len(expenses))
	dropped := 0

	for _, e := range expenses {
		if _, dup := seen[e.ID]; dup {
			dropped++
			continue
		}
		seen[e.ID] = struct{}{}
		s.expenses = append(s.expenses, e)
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}

	return dropped
}

// Add validates and appends a new expense denominated in code
func (s *ExpenseStore) Add(title string, amount float64, code string) (entity.Expense, error) {
	e := entity.Expense{
		Title:    entity.NormalizeTitle(title),
		Amount:   amount,
		Currency: code,
	}

	if err := s.validate(&e); err != nil {
		return entity.Expense{}, err
	}

	e.ID = s.nextID()
	s.expenses = append(s.expenses, e)
	return e, nil
}

// Update replaces title and amount of the expense with id. The currency is
// kept unless upd.Currency is set.
func (s *ExpenseStore) Update(id int64, upd entity.ExpenseUpdate) (entity.Expense, error) {
	i := s.indexOf(id)
	if i < 0 {
		return entity.Expense{}, fmt.Errorf("%w: %d", entity.ErrNotFound, id)
	}

	e := s.expenses[i]
	e.Title = entity.NormalizeTitle(upd.Title)
	e.Amount = upd.Amount

	// A kept currency is not re-checked so records loaded in a currency the
	// table no longer lists stay editable.
	if upd.Currency != nil {
		e.Currency = *upd.Currency
		if err := s.validate(&e); err != nil {
			return entity.Expense{}, err
		}
	} else if err := e.Validate(); err != nil {
		return entity.Expense{}, err
	}

	s.expenses[i] = e
	return e, nil
}

// Remove deletes the expense with id. Removing an unknown id fails with
// entity.ErrNotFound and leaves the collection untouched.
func (s *ExpenseStore) Remove(id int64) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", entity.ErrNotFound, id)
	}

	s.expenses = append(s.expenses[:i:i], s.expenses[i+1:]...)
	return nil
}

// Get returns the expense with id
func (s *ExpenseStore) Get(id int64) (entity.Expense, error) {
	i := s.indexOf(id)
	if i < 0 {
		return entity.Expense{}, fmt.Errorf("%w: %d", entity.ErrNotFound, id)
	}
	return s.expenses[i], nil
}

// List returns a copy of all expenses in insertion order
func (s *ExpenseStore) List() []entity.Expense {
	return append([]entity.Expense{}, s.expenses...)
}

// Len returns the number of stored expenses
func (s *ExpenseStore) Len() int {
	return len(s.expenses)
}

func (s *ExpenseStore) validate(e *entity.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if !s.table.IsSupported(e.Currency) {
		return fmt.Errorf("%w: %q", entity.ErrUnknownCurrency, e.Currency)
	}
	return nil
}

func (s *ExpenseStore) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *ExpenseStore) indexOf(id int64) int {
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			return i
		}
	}
	return -1
}
