package service

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
)

// APIError is a non-2xx response from the task API.
type APIError struct {
	// Status is the HTTP status code.
	Status int

	// Message is the "message" field of the error body, if any.
	Message string

	// Fields holds per-field validation messages from a 422 response.
	Fields map[string][]string

	// Order lists the keys of Fields in the order the server sent them.
	Order []string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
}

// FirstValidationMessage returns the first message of the first field the
// server reported. Fields missing from Order follow in sorted order.
func (e *APIError) FirstValidationMessage() string {
	keys := slices.Clone(e.Order)
	var rest []string
	for k := range e.Fields {
		if !slices.Contains(e.Order, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	keys = append(keys, rest...)
	for _, k := range keys {
		if msgs := e.Fields[k]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return e.Message
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// IsValidation reports whether err is a 422 from the API.
func IsValidation(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusUnprocessableEntity
}
