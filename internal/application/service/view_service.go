package service

import (
	"github.com/damon-houk/expense-tracker/internal/domain/currency"
	"github.com/damon-houk/expense-tracker/internal/domain/entity"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/logger"
)

// ExpenseSource is the read side of the tracker used to build views
type ExpenseSource interface {
	ListExpenses() []entity.Expense
	DisplayCurrency() string
}

// ConvertedExpense is an expense as shown in the list, converted to the
// display currency. The stored amount and currency are carried unchanged.
type ConvertedExpense struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	OriginalAmount    float64 `json:"original_amount"`
	OriginalCurrency  string  `json:"original_currency"`
	OriginalSymbol    string  `json:"original_symbol,omitempty"`
	OriginalFormatted string  `json:"original_formatted"`
	Convertible       bool    `json:"convertible"`
	ConvertedAmount   float64 `json:"converted_amount"`
	Formatted         string  `json:"formatted,omitempty"`
	ShowOriginal      bool    `json:"show_original"`
}

// ExpenseListView is the full list in a display currency
type ExpenseListView struct {
	DisplayCurrency string             `json:"display_currency"`
	Symbol          string             `json:"symbol"`
	Expenses        []ConvertedExpense `json:"expenses"`
	Total           float64            `json:"total"`
	TotalFormatted  string             `json:"total_formatted"`
}

// ChartSeries is the bar chart data: one bar per expense labeled by title.
// Values are the stored amounts, not converted.
type ChartSeries struct {
	Labels     []string  `json:"labels"`
	Values     []float64 `json:"values"`
	Currencies []string  `json:"currencies"`
}

// ViewService builds the list, chart and form views
type ViewService struct {
	source ExpenseSource
	table  *currency.Table
	logger logger.Logger
}

// NewViewService creates a new view service
func NewViewService(source ExpenseSource, table *currency.Table, log logger.Logger) *ViewService {
	if table == nil {
		table = currency.Default()
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ViewService{source: source, table: table, logger: log}
}

// ExpenseList converts every expense to the current display currency. An
// expense whose own currency is not in the rate table is listed with its
// stored amount and Convertible set to false.
func (s *ViewService) ExpenseList() (*ExpenseListView, error) {
	display := s.source.DisplayCurrency()
	target, err := s.table.Lookup(display)
	if err != nil {
		return nil, err
	}

	expenses := s.source.ListExpenses()
	view := &ExpenseListView{
		DisplayCurrency: target.Code,
		Symbol:          target.Symbol,
		Expenses:        make([]ConvertedExpense, 0, len(expenses)),
	}

	for _, e := range expenses {
		row := ConvertedExpense{
			ID:                e.ID,
			Title:             e.Title,
			OriginalAmount:    e.Amount,
			OriginalCurrency:  e.Currency,
			OriginalFormatted: e.Currency + " " + formatPlain(e.Amount),
			ShowOriginal:      e.Currency != target.Code,
		}

		if src, err := s.table.Lookup(e.Currency); err == nil {
			row.OriginalSymbol = src.Symbol
			row.OriginalFormatted, _ = s.table.Format(e.Amount, src.Code)
		}

		converted, err := s.table.Convert(e.Amount, e.Currency, target.Code)
		if err != nil {
			s.logger.Warn("Expense cannot be converted", map[string]interface{}{
				"id":       e.ID,
				"currency": e.Currency,
				"target":   target.Code,
				"error":    err.Error(),
			})
			view.Expenses = append(view.Expenses, row)
			continue
		}

		row.Convertible = true
		row.ConvertedAmount = converted
		row.Formatted, _ = s.table.Format(converted, target.Code)
		view.Total += converted
		view.Expenses = append(view.Expenses, row)
	}

	view.TotalFormatted, _ = s.table.Format(view.Total, target.Code)

	s.logger.Debug("Expense list built", map[string]interface{}{
		"display_currency": target.Code,
		"count":            len(view.Expenses),
		"total":            view.Total,
	})

	return view, nil
}

// Chart returns one bar per expense with its stored amount. Amounts in
// different currencies are plotted on the same axis without conversion.
func (s *ViewService) Chart() ChartSeries {
	expenses := s.source.ListExpenses()
	series := ChartSeries{
		Labels:     make([]string, 0, len(expenses)),
		Values:     make([]float64, 0, len(expenses)),
		Currencies: make([]string, 0, len(expenses)),
	}

	for _, e := range expenses {
		series.Labels = append(series.Labels, e.Title)
		series.Values = append(series.Values, e.Amount)
		series.Currencies = append(series.Currencies, e.Currency)
	}

	return series
}

// AmountLabel returns the label of the amount field in the expense form. When
// adding it is the display currency symbol; when editing an expense stored in
// another currency it is that expense's code.
func (s *ViewService) AmountLabel(editing *entity.Expense) (string, error) {
	display := s.source.DisplayCurrency()

	if editing != nil && editing.Currency != display {
		return editing.Currency, nil
	}

	return s.table.Symbol(display)
}
