package entity

import "errors"

var (
	// ErrInvalidExpense indicates an empty title or a negative/non-finite amount
	ErrInvalidExpense = errors.New("invalid expense")

	// ErrNotFound indicates that no expense has the requested id
	ErrNotFound = errors.New("expense not found")

	// ErrUnknownCurrency indicates a currency code outside the supported set
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrPersistence indicates that the in-memory state could not be written to storage
	ErrPersistence = errors.New("failed to persist state")

	// ErrClosed is returned by a tracker after Close
	ErrClosed = errors.New("tracker is closed")
)
