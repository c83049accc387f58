package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []EmailMessage
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg EmailMessage) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func sampleSummary() Summary {
	s := Summary{
		Title:       "Booking request",
		ReferenceID: "BOOK-1700000000000",
		SubmittedAt: time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC),
		Notes:       "<b>Gate</b> code is 1234 & dog is friendly",
	}
	s.Add("Service", "Maintenance")
	s.Add("Alternate date", "")
	s.Add("Name", "Jane <script>alert(1)</script>Doe")
	return s
}

func TestSummaryRender(t *testing.T) {
	body, err := sampleSummary().Render()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(body, "Booking request\nReference: BOOK-1700000000000\n"))
	assert.Contains(t, body, "Service: Maintenance")
	assert.NotContains(t, body, "Alternate date")
	assert.Contains(t, body, "Name: Jane Doe")
	assert.Contains(t, body, "Notes:\nGate code is 1234 & dog is friendly")
	assert.NotContains(t, body, "<")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "O'Brien & Sons", Sanitize("  <i>O'Brien</i> & Sons "))
}

func TestNotifier_BookingRequested(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender, "office@example.com", nil)

	require.NoError(t, n.BookingRequested(context.Background(), sampleSummary()))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "office@example.com", sender.sent[0].To)
	assert.Equal(t, "New booking request BOOK-1700000000000", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Body, "Service: Maintenance")
}

func TestNotifier_QuoteRequestedWrapsError(t *testing.T) {
	boom := errors.New("smtp down")
	n := NewNotifier(&recordingSender{err: boom}, "office@example.com", nil)

	err := n.QuoteRequested(context.Background(), Summary{Title: "Quote request", ReferenceID: "QUOTE-1"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "QUOTE-1")
}

func TestNotifier_NilSafe(t *testing.T) {
	var n *Notifier
	assert.NoError(t, n.BookingRequested(context.Background(), Summary{}))
}
