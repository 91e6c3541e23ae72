package pokeapi

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the upstream catalog has no record for the
// requested resource. Callers treat this as "absent", not as a failure.
var ErrNotFound = errors.New("resource not found")

// ErrorClass represents a classification of upstream failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx responses other than 404.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx responses.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents transport-level failures.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents responses whose body did not match the
	// expected shape. Treated like transport failures by callers.
	ErrorClassDecode ErrorClass = "decode"
)

// APIError represents an upstream error response with additional context.
type APIError struct {
	StatusCode int
	Endpoint   string
	Class      ErrorClass
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pokeapi %s error on %s (status %d): %v",
			e.Class, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("pokeapi %s error on %s (status %d)",
		e.Class, e.Endpoint, e.StatusCode)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus categorizes an HTTP status code for observability.
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}
