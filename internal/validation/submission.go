package validation

import (
	"errors"
	"fmt"
)

// Server-side submission errors. The endpoints report only the first problem.
var (
	ErrMissingField = errors.New("validation: missing required field")
	ErrInvalidEmail = errors.New("validation: invalid email format")
	ErrInvalidPhone = errors.New("validation: invalid phone number format")
)

// MissingFieldError names the first required field that was empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("validation: missing required field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// CheckSubmission walks required in order and returns the first missing field,
// then checks the email and phone shape.
func CheckSubmission(required []string, value func(field string) string, email, phone string) error {
	for _, field := range required {
		if !Required(value(field)) {
			return &MissingFieldError{Field: field}
		}
	}
	if !IsEmail(email) {
		return ErrInvalidEmail
	}
	if !IsPhone(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// Message returns the caller-facing text for a submission error, and false
// when err is not one.
func Message(err error) (string, bool) {
	var missing *MissingFieldError
	switch {
	case errors.As(err, &missing):
		return "Missing required field: " + missing.Field, true
	case errors.Is(err, ErrInvalidEmail):
		return "Invalid email format", true
	case errors.Is(err, ErrInvalidPhone):
		return "Invalid phone number format", true
	default:
		return "", false
	}
}
