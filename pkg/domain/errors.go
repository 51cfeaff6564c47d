package domain

import "errors"

// Conversion errors
var (
	// ErrValidation is returned when an amount or a selection fails validation
	ErrValidation = errors.New("validation error")
	// ErrNetworkFailure is returned when live exchange rates could not be fetched
	ErrNetworkFailure = errors.New("exchange rate fetch failed")
	// ErrRateUnavailable is returned when a currency rate is missing and has no fallback constant
	ErrRateUnavailable = errors.New("currency rate unavailable")
	// ErrInvalidRate is returned when a rate is zero, negative, NaN or infinite
	ErrInvalidRate = errors.New("invalid exchange rate")
	// ErrUnknownOperation is returned when an operation label does not belong to a category
	ErrUnknownOperation = errors.New("unknown conversion operation")
)
