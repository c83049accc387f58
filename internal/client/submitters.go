package client

import (
	"context"

	"github.com/hplandscaping/booking-platform/internal/forms"
	"github.com/hplandscaping/booking-platform/internal/wizard"
)

// BookingSubmitter delivers booking wizard forms through a Client.
type BookingSubmitter struct {
	Client *Client
}

// Submit posts the form to /api/booking.
func (s BookingSubmitter) Submit(ctx context.Context, form forms.BookingForm) (wizard.Receipt, error) {
	conf, err := s.Client.SubmitBooking(ctx, form.Request())
	if err != nil {
		return wizard.Receipt{}, err
	}
	return wizard.Receipt{ID: conf.BookingID, Message: conf.Message}, nil
}

// QuoteSubmitter delivers quote wizard forms through a Client.
type QuoteSubmitter struct {
	Client *Client
}

// Submit posts the form to /api/quote.
func (s QuoteSubmitter) Submit(ctx context.Context, form forms.QuoteForm) (wizard.Receipt, error) {
	conf, err := s.Client.SubmitQuote(ctx, form.Request())
	if err != nil {
		return wizard.Receipt{}, err
	}
	return wizard.Receipt{ID: conf.QuoteID, Message: conf.Message}, nil
}

var (
	_ wizard.Submitter[forms.BookingForm] = BookingSubmitter{}
	_ wizard.Submitter[forms.QuoteForm]   = QuoteSubmitter{}
)
