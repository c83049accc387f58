package cli

import (
	"context"
	"errors"
	"io"

	"github.com/hplandscaping/booking-platform/internal/forms"
	"github.com/hplandscaping/booking-platform/internal/validation"
	"github.com/hplandscaping/booking-platform/internal/wizard"
)

const (
	actionContinue = "Continue"
	actionBack     = "Back"
	actionSubmit   = "Submit"
)

// stepAsker prompts for the fields of the session's current step and writes
// the answers into the session.
type stepAsker[T any] func(ctx context.Context, s *wizard.Session[T]) error

// runWizard drives a session from its current step to a successful
// submission. Failed steps are shown and asked again; a failed submission
// can be retried without re-entering anything.
func runWizard[T any](ctx context.Context, w io.Writer, d PromptDriver, s *wizard.Session[T], ask stepAsker[T], review func(T) []forms.Line, title string) (wizard.Receipt, error) {
	retrying := false
	for {
		index := s.Step()
		if !retrying {
			step := s.Current()
			printStepHeader(w, index, s.Len(), step.Title, step.Description)
			if err := ask(ctx, s); err != nil {
				return wizard.Receipt{}, err
			}
		}
		retrying = false

		if index < s.Len() {
			options := []string{actionContinue}
			if index > 1 {
				options = append(options, actionBack)
			}
			choice, err := d.Select(ctx, SelectConfig{Message: "Next", Options: options})
			if err != nil {
				return wizard.Receipt{}, err
			}
			if choice > 0 && options[choice] == actionBack {
				if err := s.Previous(); err != nil {
					return wizard.Receipt{}, err
				}
				continue
			}
			if err := s.Next(); err != nil {
				if !showFieldErrors(w, err) {
					return wizard.Receipt{}, err
				}
			}
			continue
		}

		printReview(w, title, review(s.Form()))
		options := []string{actionSubmit, actionBack}
		choice, err := d.Select(ctx, SelectConfig{Message: "Ready to send?", Options: options})
		if err != nil {
			return wizard.Receipt{}, err
		}
		if choice > 0 && options[choice] == actionBack {
			if err := s.Previous(); err != nil {
				return wizard.Receipt{}, err
			}
			continue
		}

		receipt, err := s.Submit(ctx)
		if err == nil {
			return receipt, nil
		}
		if showFieldErrors(w, err) {
			continue
		}
		if s.Status() != wizard.Failed {
			return wizard.Receipt{}, err
		}
		red.Fprintln(w, s.FailureReason())
		again, cerr := d.Confirm(ctx, "Try again?", true)
		if cerr != nil {
			return wizard.Receipt{}, cerr
		}
		if !again {
			return wizard.Receipt{}, err
		}
		retrying = true
	}
}

func showFieldErrors(w io.Writer, err error) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	printFieldErrors(w, verr.Fields)
	return true
}
