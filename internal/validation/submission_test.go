package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSubmission(t *testing.T) {
	values := map[string]string{"name": "Jane", "address": " "}
	get := func(f string) string { return values[f] }

	err := CheckSubmission([]string{"name", "address"}, get, "jane@example.com", "619-555-0123")
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "address", missing.Field)
	assert.ErrorIs(t, err, ErrMissingField)

	values["address"] = "1 Main St"
	assert.NoError(t, CheckSubmission([]string{"name", "address"}, get, "jane@example.com", "619-555-0123"))
	assert.ErrorIs(t, CheckSubmission(nil, get, "@example.com", "619-555-0123"), ErrInvalidEmail)
	assert.ErrorIs(t, CheckSubmission(nil, get, "jane@example.com", "12345"), ErrInvalidPhone)
}

func TestMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
		ok   bool
	}{
		{&MissingFieldError{Field: "email"}, "Missing required field: email", true},
		{ErrInvalidEmail, "Invalid email format", true},
		{ErrInvalidPhone, "Invalid phone number format", true},
		{errors.New("boom"), "", false},
	}
	for _, tc := range cases {
		got, ok := Message(tc.err)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.ok, ok)
	}
}
