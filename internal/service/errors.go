package service

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrClientNotFound  = errors.New("client not found")
	ErrClientExists    = errors.New("a client with this email already exists")
	ErrInvalidStatus   = errors.New("invalid booking status")
	ErrInvalidRange    = errors.New("end of range is before its start")
)

// ValidationError is returned for input the caller can fix.
type ValidationError struct {
	Field string
	msg   string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, msg: fmt.Sprintf(format, args...)}
}
