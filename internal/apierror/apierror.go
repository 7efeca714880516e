// Package apierror normalizes every failure coming back from the tenant API
// into a single shape: message, HTTP status and the raw response data. A
// non-2xx or non-JSON response is coerced into this shape before being
// returned, so callers never see transport details.
package apierror

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is the canonical error for all API failures.
type APIError struct {
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	return e.Message
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// errorBody matches the fields the backend uses across endpoints for error
// payloads. Only one of them is populated per response.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Error   string `json:"error"`
}

// FromResponse builds an APIError from a non-2xx response body. A body that
// is not JSON, or JSON without a recognizable message field, falls back to a
// generic message so the status is never lost.
func FromResponse(status int, body []byte) *APIError {
	apiErr := &APIError{
		Message: fmt.Sprintf("error del servidor (HTTP %d)", status),
		Status:  status,
	}
	if strings.TrimSpace(string(body)) == "" {
		return apiErr
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Non-JSON body (HTML error page, proxy text) — keep the generic message.
		return apiErr
	}
	apiErr.Data = json.RawMessage(body)
	switch {
	case parsed.Message != "":
		apiErr.Message = parsed.Message
	case parsed.Detail != "":
		apiErr.Message = parsed.Detail
	case parsed.Error != "":
		apiErr.Message = parsed.Error
	}
	return apiErr
}

// ValidationError wraps field-level errors detected before any network call.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "Error de validación", Fields: fields}
}
