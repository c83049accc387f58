package notify

import (
	"context"
	"fmt"

	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// Notifier tells the business about new booking and quote requests.
type Notifier struct {
	sender EmailSender
	to     string
	logger *logging.Logger
}

// NewNotifier creates a notifier that mails summaries to the business inbox.
// A nil sender falls back to LogSender.
func NewNotifier(sender EmailSender, businessEmail string, logger *logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.Default()
	}
	if sender == nil {
		sender = NewLogSender(logger)
	}
	return &Notifier{sender: sender, to: businessEmail, logger: logger}
}

// BookingRequested sends the summary of a new appointment request.
func (n *Notifier) BookingRequested(ctx context.Context, summary Summary) error {
	return n.send(ctx, "New booking request "+summary.ReferenceID, summary)
}

// QuoteRequested sends the summary of a new commercial quote request.
func (n *Notifier) QuoteRequested(ctx context.Context, summary Summary) error {
	return n.send(ctx, "New quote request "+summary.ReferenceID, summary)
}

func (n *Notifier) send(ctx context.Context, subject string, summary Summary) error {
	if n == nil {
		return nil
	}
	body, err := summary.Render()
	if err != nil {
		return err
	}
	if err := n.sender.Send(ctx, EmailMessage{
		To:      n.to,
		ToName:  defaultFromName,
		Subject: subject,
		Body:    body,
	}); err != nil {
		return fmt.Errorf("notify: %s: %w", summary.ReferenceID, err)
	}
	n.logger.Debug("notification sent", "reference_id", summary.ReferenceID)
	return nil
}
