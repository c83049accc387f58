// Package wizard drives a fixed sequence of validated data-collection steps
// over a typed form record and submits the result once.
//
// A Session is owned by a single host (a terminal prompt loop, a UI adapter).
// All mutators run to completion without I/O; Submit is the only call that
// blocks. The mutex only protects the Submitting window, where the host may
// still read state while the request is in flight.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hplandscaping/booking-platform/internal/validation"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

var (
	// ErrSessionClosed is returned by mutators once a submission succeeded.
	ErrSessionClosed = errors.New("wizard: session already submitted")

	// ErrSubmissionInFlight is returned while a submission is awaiting a response.
	ErrSubmissionInFlight = errors.New("wizard: submission in progress")

	// ErrNotFinalStep is returned when Submit is called before the last step.
	ErrNotFinalStep = errors.New("wizard: submit is only available on the final step")

	// ErrUnknownField is returned for field names the form does not have.
	ErrUnknownField = errors.New("wizard: unknown field")

	// ErrNotMultiValue is returned when Toggle targets a scalar field.
	ErrNotMultiValue = errors.New("wizard: field does not hold multiple values")

	// ErrInvalidValue is returned when a value does not fit the field's type.
	ErrInvalidValue = errors.New("wizard: invalid value for field")

	// ErrNoSubmitter is returned by Submit when the session has nowhere to send the form.
	ErrNoSubmitter = errors.New("wizard: no submitter configured")
)

// SubmitErrorKey is the Errors key used for submission failures.
const SubmitErrorKey = "submit"

// RetryMessage is shown after any failed submission.
const RetryMessage = "Failed to submit. Please try again."

// Status is the submission state of a session.
type Status int

const (
	NotSubmitted Status = iota
	Submitting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case NotSubmitted:
		return "not_submitted"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText lets Status appear as a string in JSON snapshots.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Step is one stage of the wizard. Fields lists the form fields the step
// owns so their errors can be recomputed independently of other steps.
type Step[T any] struct {
	Name        string
	Title       string
	Description string
	Fields      []string
	Validate    func(form T) validation.FieldErrors
}

func (s Step[T]) validate(form T) validation.FieldErrors {
	if s.Validate == nil {
		return validation.FieldErrors{}
	}
	errs := s.Validate(form)
	if errs == nil {
		errs = validation.FieldErrors{}
	}
	return errs
}

// Receipt acknowledges an accepted submission.
type Receipt struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Submitter delivers a completed form.
type Submitter[T any] interface {
	Submit(ctx context.Context, form T) (Receipt, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc[T any] func(ctx context.Context, form T) (Receipt, error)

// Submit calls f.
func (f SubmitterFunc[T]) Submit(ctx context.Context, form T) (Receipt, error) {
	return f(ctx, form)
}

type options struct {
	submitTimeout time.Duration
	logger        *logging.Logger
}

// Option configures a Session.
type Option func(*options)

// WithSubmitTimeout bounds how long Submit waits for a response. Zero means
// the caller's context alone decides.
func WithSubmitTimeout(d time.Duration) Option {
	return func(o *options) { o.submitTimeout = d }
}

// WithLogger sets the session logger.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Session is the mutable state of one wizard run.
type Session[T any] struct {
	mu sync.Mutex

	steps     []Step[T]
	initial   T
	submitter Submitter[T]
	opts      options

	form    T
	current int
	errors  validation.FieldErrors
	status  Status
	failure string
	receipt Receipt
}

// New starts a session on step 1 with initial as the empty form. It panics
// when steps is empty.
func New[T any](steps []Step[T], initial T, submitter Submitter[T], opts ...Option) *Session[T] {
	if len(steps) == 0 {
		panic("wizard: at least one step required")
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	return &Session[T]{
		steps:     append([]Step[T](nil), steps...),
		initial:   clone(initial),
		submitter: submitter,
		opts:      o,
		form:      clone(initial),
		current:   1,
		errors:    validation.FieldErrors{},
	}
}

// Len returns the number of steps.
func (s *Session[T]) Len() int {
	return len(s.steps)
}

// Step returns the 1-based index of the active step.
func (s *Session[T]) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Current returns the active step definition.
func (s *Session[T]) Current() Step[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps[s.current-1]
}

// Steps returns the step definitions in order.
func (s *Session[T]) Steps() []Step[T] {
	return append([]Step[T](nil), s.steps...)
}

// Form returns a copy of the collected fields.
func (s *Session[T]) Form() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.form)
}

// Errors returns a copy of the current field errors.
func (s *Session[T]) Errors() validation.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors.Clone()
}

// Status returns the submission state.
func (s *Session[T]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// FailureReason returns the message of the last failed submission.
func (s *Session[T]) FailureReason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// Receipt returns the acknowledgment of a successful submission.
func (s *Session[T]) Receipt() (Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.receipt, s.status == Succeeded
}

// Next validates the active step and advances when it passes. On the last
// step a passing validation leaves the session where it is. A failing step
// returns a *validation.Error and does not move.
func (s *Session[T]) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutableLocked(); err != nil {
		return err
	}

	errs := s.validateLocked(s.current)
	if len(errs) > 0 {
		s.opts.logger.Debug("wizard step invalid", "step", s.current, "fields", errs.Fields())
		return errs.Err()
	}
	if s.current < len(s.steps) {
		s.current++
	}
	s.opts.logger.Debug("wizard step advanced", "step", s.current)
	return nil
}

// Previous moves back one step without validating. Entered values are kept.
func (s *Session[T]) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutableLocked(); err != nil {
		return err
	}
	if s.current > 1 {
		s.current--
	}
	return nil
}

// SetField overwrites one field. Validation is deferred to Next and Submit;
// an existing error on the field is cleared.
func (s *Session[T]) SetField(name string, value any) error {
	return s.Apply(Replace(name, value))
}

// Toggle adds value to a multi-value field when absent and removes it when present.
func (s *Session[T]) Toggle(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutableLocked(); err != nil {
		return err
	}
	values, err := toggled(s.form, name, value)
	if err != nil {
		return err
	}
	return s.applyLocked([]Operation{Replace(name, values)})
}

// Apply applies a batch of RFC 6902 operations atomically.
func (s *Session[T]) Apply(ops ...Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutableLocked(); err != nil {
		return err
	}
	return s.applyLocked(ops)
}

func (s *Session[T]) applyLocked(ops []Operation) error {
	updated, err := applyPatch(s.form, ops)
	if err != nil {
		return err
	}
	s.form = updated
	for _, op := range ops {
		s.errors.Clear(fieldFromPointer(op.Path))
	}
	return nil
}

// Submit validates the final step and sends the form. While the request is
// in flight the session reports Submitting and rejects further mutation. Any
// failure moves the session to Failed with RetryMessage; values are kept so
// the caller can retry.
func (s *Session[T]) Submit(ctx context.Context) (Receipt, error) {
	s.mu.Lock()
	if err := s.mutableLocked(); err != nil {
		s.mu.Unlock()
		return Receipt{}, err
	}
	if s.current != len(s.steps) {
		s.mu.Unlock()
		return Receipt{}, ErrNotFinalStep
	}
	if s.submitter == nil {
		s.mu.Unlock()
		return Receipt{}, ErrNoSubmitter
	}
	errs := s.validateLocked(s.current)
	if len(errs) > 0 {
		s.mu.Unlock()
		return Receipt{}, errs.Err()
	}
	s.status = Submitting
	s.failure = ""
	s.errors.Clear(SubmitErrorKey)
	form := clone(s.form)
	s.mu.Unlock()

	if s.opts.submitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.submitTimeout)
		defer cancel()
	}
	receipt, err := s.submitter.Submit(ctx, form)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = Failed
		s.failure = RetryMessage
		s.errors[SubmitErrorKey] = RetryMessage
		s.opts.logger.Warn("wizard submission failed", "error", err)
		return Receipt{}, fmt.Errorf("wizard: submit: %w", err)
	}
	s.status = Succeeded
	s.receipt = receipt
	s.opts.logger.Info("wizard submission accepted", "receipt_id", receipt.ID)
	return receipt, nil
}

// Reset discards every entered value and returns to step 1. It is the only
// mutator allowed after a successful submission.
func (s *Session[T]) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == Submitting {
		return ErrSubmissionInFlight
	}
	s.form = clone(s.initial)
	s.current = 1
	s.errors = validation.FieldErrors{}
	s.status = NotSubmitted
	s.failure = ""
	s.receipt = Receipt{}
	return nil
}

// Validate runs the rules of step index (1-based) against the current form
// without recording anything.
func (s *Session[T]) Validate(index int) validation.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 1 || index > len(s.steps) {
		return validation.FieldErrors{}
	}
	return s.steps[index-1].validate(s.form)
}

// validateLocked recomputes the errors owned by step index and returns them.
func (s *Session[T]) validateLocked(index int) validation.FieldErrors {
	step := s.steps[index-1]
	errs := step.validate(s.form)
	for _, f := range step.Fields {
		s.errors.Clear(f)
	}
	s.errors.Merge(errs)
	return errs
}

func (s *Session[T]) mutableLocked() error {
	switch s.status {
	case Succeeded:
		return ErrSessionClosed
	case Submitting:
		return ErrSubmissionInFlight
	}
	return nil
}

// StepState describes one step for progress display.
type StepState struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Active    bool   `json:"active"`
	Completed bool   `json:"completed"`
}

// Progress reports every step relative to the active one.
func (s *Session[T]) Progress() []StepState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StepState, 0, len(s.steps))
	for i, step := range s.steps {
		idx := i + 1
		out = append(out, StepState{
			Index:     idx,
			Name:      step.Name,
			Title:     step.Title,
			Active:    idx == s.current,
			Completed: idx < s.current,
		})
	}
	return out
}

// Snapshot is a serialisable view of a session.
type Snapshot[T any] struct {
	CurrentStep int                    `json:"currentStep"`
	Fields      T                      `json:"fields"`
	Errors      validation.FieldErrors `json:"errors"`
	Status      Status                 `json:"status"`
	Failure     string                 `json:"failure,omitempty"`
	Receipt     *Receipt               `json:"receipt,omitempty"`
}

// Snapshot captures the session state.
func (s *Session[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot[T]{
		CurrentStep: s.current,
		Fields:      clone(s.form),
		Errors:      s.errors.Clone(),
		Status:      s.status,
		Failure:     s.failure,
	}
	if s.status == Succeeded {
		r := s.receipt
		snap.Receipt = &r
	}
	return snap
}
