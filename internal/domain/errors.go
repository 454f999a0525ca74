package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "invalid amount"

	// Catalog errors
	ErrMsgUnknownCase = "unknown case"
	ErrMsgUnknownItem = "unknown item"

	// Storage errors
	ErrMsgStorageUnavailable = "storage unavailable"
	ErrMsgCorruptState       = "corrupt persisted state"

	// Action errors
	ErrMsgActionInProgress = "action already in progress"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)

	// Catalog errors - a correct build never produces these at runtime
	ErrUnknownCase = errors.New(ErrMsgUnknownCase)
	ErrUnknownItem = errors.New(ErrMsgUnknownItem)

	// Storage errors
	ErrStorageUnavailable = errors.New(ErrMsgStorageUnavailable)
	ErrCorruptState       = errors.New(ErrMsgCorruptState)

	// Action errors
	ErrActionInProgress = errors.New(ErrMsgActionInProgress)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
