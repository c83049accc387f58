package quotes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hplandscaping/booking-platform/internal/archive"
	"github.com/hplandscaping/booking-platform/internal/catalog"
	"github.com/hplandscaping/booking-platform/internal/notify"
	"github.com/hplandscaping/booking-platform/internal/observability/metrics"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

var quotesTracer = otel.Tracer("hpl.internal.quotes")

// Notifier receives a summary of every accepted quote request.
type Notifier interface {
	QuoteRequested(ctx context.Context, summary notify.Summary) error
}

// Service accepts commercial quote requests.
type Service struct {
	catalog  *catalog.Catalog
	archive  archive.Archiver
	notifier Notifier
	metrics  *metrics.BookingMetrics
	refs     *archive.References
	logger   *logging.Logger
}

// Deps are the optional collaborators of a Service; zero values fall back to
// a no-op archive and a log-only notifier.
type Deps struct {
	Archive  archive.Archiver
	Notifier Notifier
	Metrics  *metrics.BookingMetrics
	Now      func() time.Time
}

// NewService constructs a quotes service.
func NewService(cat *catalog.Catalog, deps Deps, logger *logging.Logger) *Service {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if deps.Archive == nil {
		deps.Archive = archive.Noop{}
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.NewNotifier(nil, "", logger)
	}
	return &Service{
		catalog:  cat,
		archive:  deps.Archive,
		notifier: deps.Notifier,
		metrics:  deps.Metrics,
		refs:     archive.NewReferences("QUOTE", deps.Now),
		logger:   logger,
	}
}

// Submit validates req and acknowledges it with a QUOTE- identifier.
func (s *Service) Submit(ctx context.Context, req Request) (*Confirmation, error) {
	ctx, span := quotesTracer.Start(ctx, "quotes.submit")
	defer span.End()
	start := time.Now()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		s.metrics.ObserveSubmission(archive.KindQuote, "invalid", time.Since(start).Seconds())
		return nil, err
	}

	id, at := s.refs.Next()
	span.SetAttributes(
		attribute.String("hpl.quote_id", id),
		attribute.StringSlice("hpl.services", req.SelectedServices),
		attribute.String("hpl.property_type", req.PropertyType),
	)

	record, err := archive.NewRecord(archive.KindQuote, id, at, req.ContactName, req.Email, req.Phone, req)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveSubmission(archive.KindQuote, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("quotes: build record: %w", err)
	}

	s.logger.Info("quote request received",
		"quote_id", id,
		"services", req.SelectedServices,
		"property_type", req.PropertyType,
		"project_type", req.ProjectType,
	)

	if err := s.archive.Archive(ctx, record); err != nil {
		span.RecordError(err)
		s.logger.Error("failed to archive quote", "error", err, "quote_id", id)
	}
	if err := s.notifier.QuoteRequested(ctx, s.Summary(id, at, req)); err != nil {
		span.RecordError(err)
		s.logger.Error("failed to send quote notification", "error", err, "quote_id", id)
	}

	s.metrics.ObserveSubmission(archive.KindQuote, "accepted", time.Since(start).Seconds())
	return &Confirmation{Success: true, Message: SuccessMessage, QuoteID: id}, nil
}

// Summary builds the business-facing digest of a quote request.
func (s *Service) Summary(id string, at time.Time, req Request) notify.Summary {
	summary := notify.Summary{
		Title:       "Commercial quote request",
		ReferenceID: id,
		SubmittedAt: at,
		Notes:       req.ProjectDescription,
	}
	services := make([]string, 0, len(req.SelectedServices))
	for _, sid := range req.SelectedServices {
		if svc, err := s.catalog.Service(sid); err == nil {
			services = append(services, svc.Name)
			continue
		}
		services = append(services, sid)
	}

	summary.Add("Company", req.CompanyName)
	summary.Add("Contact", req.ContactName)
	summary.Add("Email", req.Email)
	summary.Add("Phone", req.Phone)
	summary.Add("Property address", req.PropertyAddress)
	summary.Add("Property type", s.catalog.Label(catalog.QuotePropertyTypes, req.PropertyType))
	summary.Add("Property size", req.PropertySize)
	summary.Add("Services", strings.Join(services, ", "))
	summary.Add("Project type", s.catalog.Label(catalog.ProjectTypes, req.ProjectType))
	summary.Add("Timeline", req.Timeline)
	summary.Add("Budget", req.Budget)
	summary.Add("Preferred contact", s.catalog.Label(catalog.ContactMethods, req.PreferredContactMethod))
	summary.Add("Best time", req.PreferredContactTime)
	return summary
}
