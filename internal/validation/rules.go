// Package validation holds the field rules shared by the form wizards and the
// submission endpoints so both sides accept and reject the same input.
package validation

import (
	"regexp"
	"strings"
)

var (
	// EmailPattern is the local@domain.tld shape accepted everywhere.
	EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// PhonePattern accepts digits with space, dash, plus and parenthesis
	// separators, at least 10 characters long.
	PhonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]{10,}$`)
)

// Required reports whether s has any non-whitespace content.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return EmailPattern.MatchString(strings.TrimSpace(s))
}

// IsPhone reports whether s looks like a phone number.
func IsPhone(s string) bool {
	return PhonePattern.MatchString(strings.TrimSpace(s))
}

// OneOf reports whether value is one of allowed.
func OneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Email checks a required email field and records the first problem.
func Email(errs FieldErrors, field, value string) {
	switch {
	case !Required(value):
		errs.Add(field, "Email is required")
	case !IsEmail(value):
		errs.Add(field, "Email is invalid")
	}
}

// Phone checks a required phone field and records the first problem.
func Phone(errs FieldErrors, field, value string) {
	switch {
	case !Required(value):
		errs.Add(field, "Phone number is required")
	case !IsPhone(value):
		errs.Add(field, "Phone number is invalid")
	}
}

// Text records message when value is blank.
func Text(errs FieldErrors, field, value, message string) {
	if !Required(value) {
		errs.Add(field, message)
	}
}

// Choice records message when value is not one of allowed.
func Choice(errs FieldErrors, field, value string, allowed []string, message string) {
	if !OneOf(value, allowed) {
		errs.Add(field, message)
	}
}
