package validation

import (
	"sort"
	"strings"
)

// FieldErrors maps a field name to a human readable message.
type FieldErrors map[string]string

// Add records message for field unless the field already has one.
func (e FieldErrors) Add(field, message string) {
	if _, ok := e[field]; ok {
		return
	}
	e[field] = message
}

// Has reports whether field has an error.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Clear removes the error for field.
func (e FieldErrors) Clear(field string) {
	delete(e, field)
}

// Merge copies every entry of other into e, overwriting existing messages.
func (e FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		e[k] = v
	}
}

// Fields returns the field names in sorted order.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Err returns nil when there are no errors.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &Error{Fields: e.Clone()}
}

// Error is the error form of FieldErrors.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
