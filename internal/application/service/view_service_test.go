package service

import (
	"testing"

	"github.com/damon-houk/expense-tracker/internal/domain/entity"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	expenses []entity.Expense
	display  string
}

func (s *stubSource) ListExpenses() []entity.Expense { return s.expenses }
func (s *stubSource) DisplayCurrency() string        { return s.display }

func TestExpenseList(t *testing.T) {
	source := &stubSource{
		expenses: []entity.Expense{
			{ID: 1, Title: "Coffee", Amount: 10, Currency: "USD"},
			{ID: 2, Title: "Croissant", Amount: 9.1, Currency: "EUR"},
			{ID: 3, Title: "Imported", Amount: 5, Currency: "CHF"},
		},
		display: "EUR",
	}
	views := NewViewService(source, nil, logger.Nop())

	view, err := views.ExpenseList()
	require.NoError(t, err)

	assert.Equal(t, "EUR", view.DisplayCurrency)
	assert.Equal(t, "€", view.Symbol)
	require.Len(t, view.Expenses, 3)

	coffee := view.Expenses[0]
	assert.True(t, coffee.Convertible)
	assert.True(t, coffee.ShowOriginal)
	assert.InDelta(t, 9.1, coffee.ConvertedAmount, 1e-9)
	assert.Equal(t, "€9.10", coffee.Formatted)
	assert.Equal(t, "$10.00", coffee.OriginalFormatted)
	assert.Equal(t, 10.0, coffee.OriginalAmount, "stored amount is carried unchanged")

	croissant := view.Expenses[1]
	assert.False(t, croissant.ShowOriginal)
	assert.Equal(t, 9.1, croissant.ConvertedAmount)

	imported := view.Expenses[2]
	assert.False(t, imported.Convertible)
	assert.True(t, imported.ShowOriginal)
	assert.Equal(t, "CHF 5.00", imported.OriginalFormatted)
	assert.Empty(t, imported.Formatted)

	assert.InDelta(t, 18.2, view.Total, 1e-9)
	assert.Equal(t, "€18.20", view.TotalFormatted)
}

func TestExpenseListSwitchingBack(t *testing.T) {
	source := &stubSource{
		expenses: []entity.Expense{{ID: 1, Title: "Coffee", Amount: 10, Currency: "USD"}},
		display:  "EUR",
	}
	views := NewViewService(source, nil, logger.Nop())

	view, err := views.ExpenseList()
	require.NoError(t, err)
	assert.InDelta(t, 9.1, view.Expenses[0].ConvertedAmount, 1e-9)

	source.display = "USD"
	view, err = views.ExpenseList()
	require.NoError(t, err)
	assert.Equal(t, 10.0, view.Expenses[0].ConvertedAmount)
	assert.False(t, view.Expenses[0].ShowOriginal)
}

func TestExpenseListEmpty(t *testing.T) {
	views := NewViewService(&stubSource{display: "JPY"}, nil, logger.Nop())

	view, err := views.ExpenseList()
	require.NoError(t, err)
	assert.NotNil(t, view.Expenses)
	assert.Empty(t, view.Expenses)
	assert.Equal(t, "¥0", view.TotalFormatted)
}

func TestChartUsesRawAmounts(t *testing.T) {
	source := &stubSource{
		expenses: []entity.Expense{
			{ID: 1, Title: "Coffee", Amount: 10, Currency: "USD"},
			{ID: 2, Title: "Ramen", Amount: 1200, Currency: "JPY"},
		},
		display: "EUR",
	}
	views := NewViewService(source, nil, logger.Nop())

	chart := views.Chart()
	assert.Equal(t, []string{"Coffee", "Ramen"}, chart.Labels)
	assert.Equal(t, []float64{10, 1200}, chart.Values)
	assert.Equal(t, []string{"USD", "JPY"}, chart.Currencies)
}

func TestAmountLabel(t *testing.T) {
	source := &stubSource{display: "GBP"}
	views := NewViewService(source, nil, logger.Nop())

	label, err := views.AmountLabel(nil)
	require.NoError(t, err)
	assert.Equal(t, "£", label)

	label, err = views.AmountLabel(&entity.Expense{ID: 1, Currency: "GBP"})
	require.NoError(t, err)
	assert.Equal(t, "£", label)

	label, err = views.AmountLabel(&entity.Expense{ID: 1, Currency: "PKR"})
	require.NoError(t, err)
	assert.Equal(t, "PKR", label)
}
