package domain

import "errors"

var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrZeroAmount       = errors.New("amount must not be zero")
	ErrInvalidAmount    = errors.New("amount must be positive")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")

	// Lookup errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrEntryNotFound        = errors.New("ledger entry not found")
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrPayoutMethodNotFound = errors.New("payout method not found")

	// State errors
	ErrConflict          = errors.New("illegal state transition")
	ErrInvalidState      = errors.New("invalid state for this operation")
	ErrAlreadyRefunded   = errors.New("entry has already been refunded")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// External collaborator errors
	ErrPaymentProcessor = errors.New("payment processor error")
)
