// Package errors provides the standardized error taxonomy for the assist pipeline.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// User input
	ErrCodeEmptyQuery     ErrorCode = "EMPTY_QUERY"
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// Resolution misses: valid "no answer" outcomes, never system faults
	ErrCodePlaceUnresolved  ErrorCode = "PLACE_UNRESOLVED"
	ErrCodeLocationNotFound ErrorCode = "LOCATION_NOT_FOUND"
	ErrCodeNoSearchResults  ErrorCode = "NO_SEARCH_RESULTS"

	// Collaborator failures
	ErrCodeGeocodeFailed   ErrorCode = "GEOCODE_FAILED"
	ErrCodeForecastFailed  ErrorCode = "FORECAST_FAILED"
	ErrCodeForecastTimeout ErrorCode = "FORECAST_TIMEOUT"
	ErrCodeSearchFailed    ErrorCode = "SEARCH_FAILED"
	ErrCodeSearchTimeout   ErrorCode = "SEARCH_TIMEOUT"

	// Configuration gaps
	ErrCodeSearchDisabled ErrorCode = "SEARCH_DISABLED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewEmptyQueryError creates the non-retryable bad-request error.
func NewEmptyQueryError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyQuery,
		Message:   "Query is empty after trimming",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable request validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request body failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLocationNotFoundError creates a non-retryable resolution miss.
func NewLocationNotFoundError(place string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocationNotFound,
		Message:   "Geocoding returned no match",
		Details:   fmt.Sprintf("place: %s", place),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGeocodeFailedError creates a retryable geocoding collaborator error.
func NewGeocodeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeocodeFailed,
		Message:   "Geocoding API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewForecastFailedError creates a retryable forecast collaborator error.
func NewForecastFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeForecastFailed,
		Message:   "Forecast API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewForecastTimeoutError creates a non-retryable forecast timeout error.
// The call is abandoned after the deadline; no partial fallback is attempted.
func NewForecastTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeForecastTimeout,
		Message:   "Forecast API timeout",
		Details:   "call exceeded the forecast deadline",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchFailedError creates a retryable search collaborator error.
func NewSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchFailed,
		Message:   "Web search API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a non-retryable search timeout error.
func NewSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Web search API timeout",
		Details:   "call exceeded the search deadline",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchDisabledError creates the configuration-gap error for a missing or
// non-ASCII search credential. Surfaced gracefully, never as a fault.
func NewSearchDisabledError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchDisabled,
		Message:   "Web search credential missing or not ASCII",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsResolutionMiss reports whether the code is a valid "no answer" outcome
// rather than a system fault. Misses keep the HTTP status at 200.
func IsResolutionMiss(code ErrorCode) bool {
	switch code {
	case ErrCodePlaceUnresolved, ErrCodeLocationNotFound, ErrCodeNoSearchResults:
		return true
	default:
		return false
	}
}

// IsCollaboratorFailure reports whether the code represents an external service
// failure that must be converted to the generic error envelope.
func IsCollaboratorFailure(code ErrorCode) bool {
	switch code {
	case ErrCodeGeocodeFailed, ErrCodeForecastFailed, ErrCodeForecastTimeout,
		ErrCodeSearchFailed, ErrCodeSearchTimeout:
		return true
	default:
		return false
	}
}
