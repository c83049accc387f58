package bookings

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hplandscaping/booking-platform/internal/archive"
	"github.com/hplandscaping/booking-platform/internal/availability"
	"github.com/hplandscaping/booking-platform/internal/catalog"
	"github.com/hplandscaping/booking-platform/internal/notify"
	"github.com/hplandscaping/booking-platform/internal/observability/metrics"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

var bookingsTracer = otel.Tracer("hpl.internal.bookings")

// Notifier receives a summary of every accepted booking.
type Notifier interface {
	BookingRequested(ctx context.Context, summary notify.Summary) error
}

// Service accepts booking requests. It acknowledges them; storing and
// forwarding are best effort.
type Service struct {
	catalog  *catalog.Catalog
	archive  archive.Archiver
	notifier Notifier
	metrics  *metrics.BookingMetrics
	refs     *archive.References
	logger   *logging.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithArchiver stores accepted bookings.
func WithArchiver(a archive.Archiver) Option {
	return func(s *Service) { s.archive = a }
}

// WithNotifier forwards accepted bookings.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithMetrics records submission counters.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the clock used for booking ids.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.refs = archive.NewReferences("BOOK", now) }
}

// NewService constructs a bookings service. Without options it archives
// nothing and logs the summary instead of mailing it.
func NewService(cat *catalog.Catalog, logger *logging.Logger, opts ...Option) *Service {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		catalog: cat,
		archive: archive.Noop{},
		refs:    archive.NewReferences("BOOK", nil),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = notify.NewNotifier(nil, "", logger)
	}
	return s
}

// Submit validates req and acknowledges it with a BOOK- identifier.
func (s *Service) Submit(ctx context.Context, req Request) (*Confirmation, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.submit")
	defer span.End()
	start := time.Now()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		s.metrics.ObserveSubmission(archive.KindBooking, "invalid", time.Since(start).Seconds())
		return nil, err
	}

	id, at := s.refs.Next()
	span.SetAttributes(
		attribute.String("hpl.booking_id", id),
		attribute.String("hpl.service", req.SelectedService),
		attribute.String("hpl.appointment_type", req.ServiceType),
	)

	record, err := archive.NewRecord(archive.KindBooking, id, at, req.ContactName, req.Email, req.Phone, req)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveSubmission(archive.KindBooking, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("bookings: build record: %w", err)
	}

	s.logger.Info("booking request received",
		"booking_id", id,
		"service", req.SelectedService,
		"appointment_type", req.ServiceType,
		"preferred_date", req.PreferredDate,
		"preferred_time", req.PreferredTime,
	)

	if err := s.archive.Archive(ctx, record); err != nil {
		span.RecordError(err)
		s.logger.Error("failed to archive booking", "error", err, "booking_id", id)
	}
	if err := s.notifier.BookingRequested(ctx, s.Summary(id, at, req)); err != nil {
		span.RecordError(err)
		s.logger.Error("failed to send booking notification", "error", err, "booking_id", id)
	}

	s.metrics.ObserveSubmission(archive.KindBooking, "accepted", time.Since(start).Seconds())
	return &Confirmation{Success: true, Message: SuccessMessage, BookingID: id}, nil
}

// Summary builds the business-facing digest of a booking.
func (s *Service) Summary(id string, at time.Time, req Request) notify.Summary {
	summary := notify.Summary{
		Title:       "Booking request",
		ReferenceID: id,
		SubmittedAt: at,
		Notes:       req.AdditionalNotes,
	}
	service := req.SelectedService
	if svc, err := s.catalog.Service(req.SelectedService); err == nil {
		service = svc.Name
	}
	summary.Add("Service", service)
	summary.Add("Appointment type", s.catalog.Label(catalog.AppointmentTypes, req.ServiceType))
	summary.Add("Preferred", displayDate(req.PreferredDate)+" at "+req.PreferredTime)
	if req.AlternateDate != "" && req.AlternateTime != "" {
		summary.Add("Alternate", displayDate(req.AlternateDate)+" at "+req.AlternateTime)
	}
	summary.Add("Name", req.ContactName)
	summary.Add("Email", req.Email)
	summary.Add("Phone", req.Phone)
	summary.Add("Property address", req.PropertyAddress)
	summary.Add("Property type", s.catalog.Label(catalog.BookingPropertyTypes, req.PropertyType))
	summary.Add("Heard about us", s.catalog.Label(catalog.ReferralSources, req.HearAboutUs))
	return summary
}

func displayDate(raw string) string {
	d, err := availability.ParseDate(raw)
	if err != nil {
		return raw
	}
	return d.Long()
}
