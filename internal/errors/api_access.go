package errors

import (
	stdErrors "errors"
	"fmt"
)

// APIAccessError represents an authorization or access failure from the
// Airtable API (invalid key, missing base permissions, etc.)
type APIAccessError struct {
	Message    string
	StatusCode int
	APIMessage string // Error message from the Airtable response body if available
}

func (e *APIAccessError) Error() string {
	if e.APIMessage != "" {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Message, e.StatusCode, e.APIMessage)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// NewAPIAccessError creates a new access error from a response status
func NewAPIAccessError(statusCode int, apiMessage string) *APIAccessError {
	var message string

	switch statusCode {
	case 401:
		message = "Invalid Airtable API key"
	case 403:
		message = "Access forbidden - check that the token can read the base"
	default:
		message = "Airtable API access error"
	}

	return &APIAccessError{
		Message:    message,
		StatusCode: statusCode,
		APIMessage: apiMessage,
	}
}

// IsAPIAccessError checks if error is an APIAccessError
func IsAPIAccessError(err error) bool {
	var accessErr *APIAccessError
	return stdErrors.As(err, &accessErr)
}
