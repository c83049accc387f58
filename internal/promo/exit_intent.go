// Package promo decides when the exit-intent offer is shown. The "already
// shown" flag lives in a FlagStore keyed by visitor session instead of in
// browser storage, so the rule can be evaluated and tested server-side.
package promo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hplandscaping/booking-platform/internal/observability/metrics"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// ErrMissingSession is returned when a visit has no session id.
var ErrMissingSession = errors.New("promo: session id required")

// DefaultDelay is how long a page must be open before the popup can appear.
const DefaultDelay = 5 * time.Second

// Reasons reported with a negative decision.
const (
	ReasonNotArmed      = "not_armed"
	ReasonPointerInside = "pointer_inside"
	ReasonAlreadyShown  = "already_shown"
)

// Visit describes the pointer event being evaluated.
type Visit struct {
	SessionID string
	OpenedAt  time.Time
	// PointerY is the vertical pointer position when it left the page;
	// zero or less means it left through the top edge.
	PointerY int
	// Now defaults to the wall clock.
	Now time.Time
}

// Decision is the outcome of one evaluation.
type Decision struct {
	Show   bool   `json:"show"`
	Reason string `json:"reason,omitempty"`
}

// ExitIntent evaluates exit-intent events.
type ExitIntent struct {
	store   FlagStore
	delay   time.Duration
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewExitIntent creates an evaluator. delay <= 0 uses DefaultDelay.
func NewExitIntent(store FlagStore, delay time.Duration, m *metrics.BookingMetrics, logger *logging.Logger) *ExitIntent {
	if store == nil {
		store = NewMemoryFlagStore(0)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ExitIntent{store: store, delay: delay, metrics: m, logger: logger}
}

// Evaluate shows the popup only when the page has been open for the arming
// delay, the pointer left through the top edge, and the session has not seen
// it yet. A positive decision marks the session.
func (e *ExitIntent) Evaluate(ctx context.Context, v Visit) (Decision, error) {
	if v.SessionID == "" {
		return Decision{}, ErrMissingSession
	}
	now := v.Now
	if now.IsZero() {
		now = time.Now()
	}

	decision, err := e.decide(ctx, v, now)
	if err != nil {
		return Decision{}, err
	}
	e.metrics.ObserveExitIntent(decision.Show)
	return decision, nil
}

func (e *ExitIntent) decide(ctx context.Context, v Visit, now time.Time) (Decision, error) {
	if v.OpenedAt.IsZero() || now.Sub(v.OpenedAt) < e.delay {
		return Decision{Reason: ReasonNotArmed}, nil
	}
	if v.PointerY > 0 {
		return Decision{Reason: ReasonPointerInside}, nil
	}

	first, err := e.store.MarkIfUnseen(ctx, v.SessionID)
	if err != nil {
		return Decision{}, fmt.Errorf("promo: evaluate: %w", err)
	}
	if !first {
		return Decision{Reason: ReasonAlreadyShown}, nil
	}
	e.logger.Debug("exit intent popup shown", "session", v.SessionID)
	return Decision{Show: true}, nil
}
