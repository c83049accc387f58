package bookings

import "github.com/hplandscaping/booking-platform/internal/validation"

// Validation errors returned by Request.Validate.
var (
	ErrMissingField = validation.ErrMissingField
	ErrInvalidEmail = validation.ErrInvalidEmail
	ErrInvalidPhone = validation.ErrInvalidPhone
)

// MissingFieldError names the first required field that was empty.
type MissingFieldError = validation.MissingFieldError

// ProcessingError is the body text for any unexpected failure.
const ProcessingError = "Failed to process booking request"
