package service

import "github.com/shopspring/decimal"

// formatPlain renders an amount with two decimals for currencies that are not
// in the rate table
func formatPlain(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
