// internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/damon-houk/expense-tracker/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockSnapshotRepository mocks the SnapshotRepository interface
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) SaveExpenses(ctx context.Context, expenses []entity.Expense) error {
	args := m.Called(ctx, expenses)
	return args.Error(0)
}

func (m *MockSnapshotRepository) SaveCurrency(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// EmptySnapshot is what Load returns for a fresh database
func EmptySnapshot() *entity.Snapshot {
	return &entity.Snapshot{Expenses: []entity.Expense{}}
}
