package entity

import (
	"fmt"
	"math"
	"strings"
)

// Expense is a single recorded expense. Amount is denominated in Currency and is
// never normalized to the reference currency.
type Expense struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ExpenseUpdate carries the fields replaced by an edit. A nil Currency keeps the
// expense's existing currency.
type ExpenseUpdate struct {
	Title    string
	Amount   float64
	Currency *string
}

// NormalizeTitle trims surrounding whitespace from a title
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// ValidateAmount ensures the amount is finite and not negative
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount must be a finite number", ErrInvalidExpense)
	}

	if amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidExpense)
	}

	return nil
}

// Validate ensures the expense meets all requirements. Currency support is
// checked by the caller against the rate table.
func (e *Expense) Validate() error {
	if NormalizeTitle(e.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidExpense)
	}

	return ValidateAmount(e.Amount)
}
