// Package currency holds the fixed rate table and the conversion between
// supported currencies. Every conversion routes through the reference currency.
package currency

import (
	"fmt"

	"github.com/damon-houk/expense-tracker/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Reference is the currency whose rate is exactly 1
const Reference = "USD"

// Currency describes a supported currency
type Currency struct {
	Code      string  `json:"code"`
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Rate      float64 `json:"rate"` // units of this currency per one unit of Reference
	Precision int32   `json:"precision"`
}

// Table is a closed set of currencies keyed by code
type Table struct {
	order  []string
	byCode map[string]Currency
}

// NewTable builds a rate table. The reference currency must be present with a
// rate of 1 and every rate must be positive.
func NewTable(currencies ...Currency) (*Table, error) {
	t := &Table{byCode: make(map[string]Currency, len(currencies))}

	for _, c := range currencies {
		if c.Rate <= 0 {
			return nil, fmt.Errorf("rate for %s must be positive, got %v", c.Code, c.Rate)
		}
		if _, dup := t.byCode[c.Code]; dup {
			return nil, fmt.Errorf("duplicate currency %s", c.Code)
		}
		t.order = append(t.order, c.Code)
		t.byCode[c.Code] = c
	}

	ref, ok := t.byCode[Reference]
	if !ok || ref.Rate != 1 {
		return nil, fmt.Errorf("reference currency %s must be present with rate 1", Reference)
	}

	return t, nil
}

var defaultTable = mustTable(
	Currency{Code: "USD", Symbol: "$", Name: "US Dollar", Rate: 1, Precision: 2},
	Currency{Code: "EUR", Symbol: "€", Name: "Euro", Rate: 0.91, Precision: 2},
	Currency{Code: "GBP", Symbol: "£", Name: "British Pound", Rate: 0.78, Precision: 2},
	Currency{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", Rate: 142.5, Precision: 0},
	Currency{Code: "INR", Symbol: "₹", Name: "Indian Rupee", Rate: 83.2, Precision: 2},
	Currency{Code: "PKR", Symbol: "₨", Name: "Pakistani Rupee", Rate: 278.0, Precision: 2},
)

func mustTable(currencies ...Currency) *Table {
	t, err := NewTable(currencies...)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the built-in static rate table
func Default() *Table {
	return defaultTable
}

// Lookup returns the currency for code
func (t *Table) Lookup(code string) (Currency, error) {
	c, ok := t.byCode[code]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", entity.ErrUnknownCurrency, code)
	}
	return c, nil
}

// Rate returns the units of code per one unit of the reference currency
func (t *Table) Rate(code string) (float64, error) {
	c, err := t.Lookup(code)
	if err != nil {
		return 0, err
	}
	return c.Rate, nil
}

// Symbol returns the display symbol for code
func (t *Table) Symbol(code string) (string, error) {
	c, err := t.Lookup(code)
	if err != nil {
		return "", err
	}
	return c.Symbol, nil
}

// IsSupported reports whether code is in the table
func (t *Table) IsSupported(code string) bool {
	_, ok := t.byCode[code]
	return ok
}

// Codes returns the supported codes in table order
func (t *Table) Codes() []string {
	return append([]string(nil), t.order...)
}

// All returns the supported currencies in table order
func (t *Table) All() []Currency {
	out := make([]Currency, 0, len(t.order))
	for _, code := range t.order {
		out = append(out, t.byCode[code])
	}
	return out
}

// Convert converts amount from one currency to another through the reference
// currency. Converting a currency to itself returns amount unchanged.
func (t *Table) Convert(amount float64, from, to string) (float64, error) {
	fromRate, err := t.Rate(from)
	if err != nil {
		return 0, err
	}
	toRate, err := t.Rate(to)
	if err != nil {
		return 0, err
	}

	if from == to {
		return amount, nil
	}

	inReference := amount / fromRate
	return inReference * toRate, nil
}

// Format renders amount with the symbol of code, rounded half-up to the
// currency's display precision.
func (t *Table) Format(amount float64, code string) (string, error) {
	c, err := t.Lookup(code)
	if err != nil {
		return "", err
	}

	rounded := decimal.NewFromFloat(amount).Round(c.Precision)
	return c.Symbol + rounded.StringFixed(c.Precision), nil
}

// Convert converts amount using the default table
func Convert(amount float64, from, to string) (float64, error) {
	return defaultTable.Convert(amount, from, to)
}

// IsSupported reports whether code is in the default table
func IsSupported(code string) bool {
	return defaultTable.IsSupported(code)
}
