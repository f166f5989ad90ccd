package handler

// CreateExpenseRequest is the add-form payload. The currency is bound to the
// display currency by the tracker.
type CreateExpenseRequest struct {
	Title  string   `json:"title"`
	Amount *float64 `json:"amount" validate:"required"`
}

// UpdateExpenseRequest is the edit-form payload. Currency is only sent to
// change an expense's currency explicitly.
type UpdateExpenseRequest struct {
	Title    string   `json:"title"`
	Amount   *float64 `json:"amount" validate:"required"`
	Currency *string  `json:"currency,omitempty" validate:"omitempty,len=3"`
}

// SetCurrencyRequest selects the display currency
type SetCurrencyRequest struct {
	Code string `json:"code" validate:"required,len=3"`
}

// CurrencyResponse describes the selected display currency
type CurrencyResponse struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// AmountLabelResponse is the label shown next to the form's amount field
type AmountLabelResponse struct {
	Label string `json:"label"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}
