// Package repository defines the storage ports of the tracker
package repository

import (
	"context"

	"github.com/damon-houk/expense-tracker/internal/domain/entity"
)

// Storage keys of the persisted snapshot
const (
	ExpensesKey = "expenses"
	CurrencyKey = "currency"
)

// SnapshotRepository defines the interface for durable tracker state
type SnapshotRepository interface {
	// Load reads the persisted snapshot. Missing or unparsable data yields an
	// empty snapshot rather than an error.
	Load(ctx context.Context) (*entity.Snapshot, error)

	// SaveExpenses replaces the stored expense list
	SaveExpenses(ctx context.Context, expenses []entity.Expense) error

	// SaveCurrency replaces the stored display currency
	SaveCurrency(ctx context.Context, code string) error
}
