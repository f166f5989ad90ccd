package currency

import (
	"errors"
	"math"
	"testing"

	"github.com/damon-houk/expense-tracker/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func within(t *testing.T, want, got float64) {
	t.Helper()
	tolerance := 1e-9 * math.Max(1, math.Abs(want))
	assert.InDelta(t, want, got, tolerance)
}

func TestDefaultTable(t *testing.T) {
	table := Default()

	assert.Equal(t, []string{"USD", "EUR", "GBP", "JPY", "INR", "PKR"}, table.Codes())

	rate, err := table.Rate(Reference)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)

	for _, c := range table.All() {
		assert.Greater(t, c.Rate, 0.0, c.Code)
		assert.NotEmpty(t, c.Symbol, c.Code)
	}

	symbol, err := table.Symbol("EUR")
	require.NoError(t, err)
	assert.Equal(t, "€", symbol)
}

func TestUnknownCurrency(t *testing.T) {
	table := Default()

	_, err := table.Rate("XYZ")
	assert.True(t, errors.Is(err, entity.ErrUnknownCurrency))

	_, err = table.Convert(10, "USD", "XYZ")
	assert.True(t, errors.Is(err, entity.ErrUnknownCurrency))

	_, err = table.Convert(10, "XYZ", "USD")
	assert.True(t, errors.Is(err, entity.ErrUnknownCurrency))

	_, err = table.Convert(10, "XYZ", "XYZ")
	assert.True(t, errors.Is(err, entity.ErrUnknownCurrency), "identity conversion still rejects unknown codes")

	assert.False(t, table.IsSupported("usd"))
}

func TestConvertIdentity(t *testing.T) {
	amounts := []float64{0, 0.01, 1, 10, 123.45, 99999.99}
	for _, code := range Default().Codes() {
		for _, amount := range amounts {
			got, err := Convert(amount, code, code)
			require.NoError(t, err)
			within(t, amount, got)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	amounts := []float64{0, 1, 10, 250.5, 1e6}
	codes := Default().Codes()

	for _, from := range codes {
		for _, to := range codes {
			for _, amount := range amounts {
				there, err := Convert(amount, from, to)
				require.NoError(t, err)
				back, err := Convert(there, to, from)
				require.NoError(t, err)
				within(t, amount, back)
			}
		}
	}
}

func TestConvertMonotonic(t *testing.T) {
	prev := -1.0
	for _, amount := range []float64{0, 1, 2, 10, 100, 1000} {
		got, err := Convert(amount, "PKR", "GBP")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestConvertCoffeeScenario(t *testing.T) {
	eur, err := Convert(10, "USD", "EUR")
	require.NoError(t, err)
	within(t, 9.1, eur)

	usd, err := Convert(10, "USD", "USD")
	require.NoError(t, err)
	assert.Equal(t, 10.0, usd)

	jpy, err := Convert(100, "EUR", "JPY")
	require.NoError(t, err)
	within(t, 100/0.91*142.5, jpy)
}

func TestFormat(t *testing.T) {
	table := Default()

	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{10, "USD", "$10.00"},
		{9.100000000000001, "EUR", "€9.10"},
		{1424.6, "JPY", "¥1425"},
		{2.345, "GBP", "£2.35"},
		{0, "PKR", "₨0.00"},
	}

	for _, tt := range tests {
		got, err := table.Format(tt.amount, tt.code)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := table.Format(1, "XYZ")
	assert.True(t, errors.Is(err, entity.ErrUnknownCurrency))
}

func TestNewTable(t *testing.T) {
	t.Run("missing reference", func(t *testing.T) {
		_, err := NewTable(Currency{Code: "EUR", Rate: 0.91})
		assert.Error(t, err)
	})

	t.Run("reference rate not one", func(t *testing.T) {
		_, err := NewTable(Currency{Code: "USD", Rate: 2})
		assert.Error(t, err)
	})

	t.Run("non-positive rate", func(t *testing.T) {
		_, err := NewTable(Currency{Code: "USD", Rate: 1}, Currency{Code: "EUR", Rate: 0})
		assert.Error(t, err)
	})

	t.Run("duplicate code", func(t *testing.T) {
		_, err := NewTable(Currency{Code: "USD", Rate: 1}, Currency{Code: "USD", Rate: 1})
		assert.Error(t, err)
	})

	t.Run("valid", func(t *testing.T) {
		table, err := NewTable(Currency{Code: "USD", Symbol: "$", Rate: 1}, Currency{Code: "EUR", Symbol: "€", Rate: 0.91})
		require.NoError(t, err)
		assert.Equal(t, []string{"USD", "EUR"}, table.Codes())
	})
}
