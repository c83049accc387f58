package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hplandscaping/booking-platform/internal/archive"
	"github.com/hplandscaping/booking-platform/internal/notify"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

var fixedNow = time.Date(2026, 10, 14, 22, 30, 0, 0, time.UTC)

func validRequest() Request {
	return Request{
		SelectedService: "landscape-design",
		ServiceType:     "consultation",
		PreferredDate:   "2026-10-19",
		PreferredTime:   "09:00 AM",
		ContactName:     "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "(619) 555-0123",
		PropertyAddress: "1 Main St",
		PropertyType:    "residential",
	}
}

type stubArchiver struct {
	records []archive.Record
	err     error
}

func (s *stubArchiver) Archive(_ context.Context, r archive.Record) error {
	s.records = append(s.records, r)
	return s.err
}

type stubNotifier struct {
	summaries []notify.Summary
	err       error
}

func (s *stubNotifier) BookingRequested(_ context.Context, summary notify.Summary) error {
	s.summaries = append(s.summaries, summary)
	return s.err
}

func newTestService(opts ...Option) *Service {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewService(nil, logging.Discard(), opts...)
}

func TestRequestValidate_FirstMissingField(t *testing.T) {
	for _, field := range RequiredFields {
		t.Run(field, func(t *testing.T) {
			req := validRequest()
			clearField(&req, field)

			var missing *MissingFieldError
			err := req.Validate()
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, field, missing.Field)
			assert.ErrorIs(t, err, ErrMissingField)
		})
	}
}

func TestRequestValidate_ReportsEarliestMissing(t *testing.T) {
	req := validRequest()
	req.Email = ""
	req.PreferredTime = "   "

	var missing *MissingFieldError
	require.ErrorAs(t, req.Validate(), &missing)
	assert.Equal(t, "preferredTime", missing.Field)
}

func TestRequestValidate_Formats(t *testing.T) {
	req := validRequest()
	req.Email = "jane@"
	assert.ErrorIs(t, req.Validate(), ErrInvalidEmail)

	req = validRequest()
	req.Phone = "123"
	assert.ErrorIs(t, req.Validate(), ErrInvalidPhone)

	req = validRequest()
	req.Phone = "619-555-0123"
	assert.NoError(t, req.Validate())
}

func TestServiceSubmit_Accepted(t *testing.T) {
	arch := &stubArchiver{}
	notifier := &stubNotifier{}
	svc := newTestService(WithArchiver(arch), WithNotifier(notifier))

	conf, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, conf.Success)
	assert.Equal(t, SuccessMessage, conf.Message)
	assert.Equal(t, "BOOK-1792017000000", conf.BookingID)

	require.Len(t, arch.records, 1)
	assert.Equal(t, archive.KindBooking, arch.records[0].Kind)
	assert.Equal(t, conf.BookingID, arch.records[0].ReferenceID)

	require.Len(t, notifier.summaries, 1)
	summary := notifier.summaries[0]
	assert.Equal(t, conf.BookingID, summary.ReferenceID)
	assert.Contains(t, summary.Fields, notify.Field{Label: "Service", Value: "Landscape Design & Installation"})
	assert.Contains(t, summary.Fields, notify.Field{Label: "Preferred", Value: "Monday, October 19, 2026 at 09:00 AM"})
}

func TestServiceSubmit_DistinctIDsWithinSameMillisecond(t *testing.T) {
	svc := newTestService()

	first, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.BookingID, second.BookingID)
}

func TestServiceSubmit_BackendFailuresDoNotFailAcknowledgment(t *testing.T) {
	arch := &stubArchiver{err: errors.New("db down")}
	notifier := &stubNotifier{err: errors.New("smtp down")}
	svc := newTestService(WithArchiver(arch), WithNotifier(notifier))

	conf, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, conf.Success)
	assert.Len(t, arch.records, 1)
	assert.Len(t, notifier.summaries, 1)
}

func TestServiceSubmit_InvalidSkipsSideEffects(t *testing.T) {
	arch := &stubArchiver{}
	notifier := &stubNotifier{}
	svc := newTestService(WithArchiver(arch), WithNotifier(notifier))

	req := validRequest()
	req.Phone = "123"
	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidPhone)
	assert.Empty(t, arch.records)
	assert.Empty(t, notifier.summaries)
}

func clearField(r *Request, field string) {
	switch field {
	case "selectedService":
		r.SelectedService = ""
	case "serviceType":
		r.ServiceType = ""
	case "preferredDate":
		r.PreferredDate = ""
	case "preferredTime":
		r.PreferredTime = ""
	case "contactName":
		r.ContactName = ""
	case "email":
		r.Email = ""
	case "phone":
		r.Phone = ""
	case "propertyAddress":
		r.PropertyAddress = ""
	case "propertyType":
		r.PropertyType = ""
	}
}

func TestSummary_AlternateNeedsDateAndTime(t *testing.T) {
	svc := newTestService()
	hasAlternate := func(req Request) (string, bool) {
		for _, f := range svc.Summary("BOOK-1", fixedNow, req).Fields {
			if f.Label == "Alternate" {
				return f.Value, true
			}
		}
		return "", false
	}

	req := validRequest()
	req.AlternateDate = "2026-10-20"
	_, ok := hasAlternate(req)
	assert.False(t, ok, "date without time")

	req = validRequest()
	req.AlternateTime = "10:00 AM"
	_, ok = hasAlternate(req)
	assert.False(t, ok, "time without date")

	req.AlternateDate = "2026-10-20"
	value, ok := hasAlternate(req)
	require.True(t, ok)
	assert.Equal(t, "Tuesday, October 20, 2026 at 10:00 AM", value)
}
