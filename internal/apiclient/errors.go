package apiclient

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the studio API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func newAPIError(status int, message string) *APIError {
	message = strings.TrimSpace(message)
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = "request failed"
	}
	return &APIError{Status: status, Message: message}
}

// FormError lists the form fields that stopped a request from being sent.
type FormError struct {
	Missing []string
	Invalid map[string]string
}

func (e *FormError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	for _, field := range sortedKeys(e.Invalid) {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Invalid[field]))
	}
	return strings.Join(parts, "; ")
}

// DecodeError describes one fetched booking that was dropped at the
// decode boundary.
type DecodeError struct {
	Index  int
	ID     string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("booking %s (item %d): %s", e.ID, e.Index, e.Reason)
	}
	return fmt.Sprintf("booking item %d: %s", e.Index, e.Reason)
}
