package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hplandscaping/booking-platform/internal/api/router"
	"github.com/hplandscaping/booking-platform/internal/bookings"
	"github.com/hplandscaping/booking-platform/internal/catalog"
	"github.com/hplandscaping/booking-platform/internal/quotes"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// Wednesday 2026-10-14, 3:30 PM in San Diego.
var now = time.Date(2026, 10, 14, 22, 30, 0, 0, time.UTC)

func clock() time.Time { return now }

// keep answers a prompt with its default.
type keep struct{}

// scriptedDriver answers prompts in order. Select answers are option labels,
// MultiSelect answers are label slices.
type scriptedDriver struct {
	answers []any
	asked   []string
}

func (d *scriptedDriver) next(message string) (any, error) {
	d.asked = append(d.asked, message)
	if len(d.answers) == 0 {
		return nil, fmt.Errorf("unexpected prompt %q", message)
	}
	a := d.answers[0]
	d.answers = d.answers[1:]
	return a, nil
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	a, err := d.next(cfg.Message)
	if err != nil {
		return "", err
	}
	if _, ok := a.(keep); ok {
		return cfg.Default, nil
	}
	s, ok := a.(string)
	if !ok {
		return "", fmt.Errorf("prompt %q: want string answer, got %T", cfg.Message, a)
	}
	return s, nil
}

func (d *scriptedDriver) TextArea(ctx context.Context, cfg InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(_ context.Context, message string, def bool) (bool, error) {
	a, err := d.next(message)
	if err != nil {
		return false, err
	}
	if _, ok := a.(keep); ok {
		return def, nil
	}
	b, ok := a.(bool)
	if !ok {
		return false, fmt.Errorf("prompt %q: want bool answer, got %T", message, a)
	}
	return b, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	a, err := d.next(cfg.Message)
	if err != nil {
		return 0, err
	}
	if _, ok := a.(keep); ok {
		return cfg.DefaultIndex, nil
	}
	label, ok := a.(string)
	if !ok {
		return 0, fmt.Errorf("prompt %q: want label answer, got %T", cfg.Message, a)
	}
	i := indexOf(cfg.Options, label)
	if i < 0 {
		return 0, fmt.Errorf("prompt %q: %q not in %v", cfg.Message, label, cfg.Options)
	}
	return i, nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	a, err := d.next(cfg.Message)
	if err != nil {
		return nil, err
	}
	labels, ok := a.([]string)
	if !ok {
		return nil, fmt.Errorf("prompt %q: want []string answer, got %T", cfg.Message, a)
	}
	return indicesOf(cfg.Options, labels), nil
}

func newAPI(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.Discard()
	cat := catalog.Default()
	return router.New(&router.Config{
		Bookings: bookings.NewHandler(bookings.NewService(cat, logger, bookings.WithClock(clock)), nil, logger),
		Quotes:   quotes.NewHandler(quotes.NewService(cat, quotes.Deps{Now: clock}, logger), logger),
	})
}

func run(t *testing.T, h http.Handler, d PromptDriver, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	cmd := NewRootCmd(&App{Driver: d, HTTPClient: srv.Client(), Now: clock}, "test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api-url", srv.URL, "--no-color", "--config", writeConfig(t, "")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookingctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func bookingScript() []any {
	return []any{
		// service
		"Landscape Design & Installation", "Free Consultation", actionContinue,
		// schedule
		"Monday, October 19, 2026", "09:00 AM", noAlternate, actionContinue,
		// contact, first with a bad email
		"Jane Doe", "jane@example", "(619) 555-0123", "1 Main St", "Residential", actionContinue,
		keep{}, "jane@example.com", keep{}, keep{}, keep{}, actionContinue,
		// confirm
		"Side gate is unlocked", "Yard Sign",
	}
}

func TestBookCommand(t *testing.T) {
	d := &scriptedDriver{answers: append(bookingScript(), actionSubmit)}

	out, err := run(t, newAPI(t), d, "book")
	require.NoError(t, err, out)
	assert.Empty(t, d.answers)

	assert.Contains(t, out, "Step 1 of 4: Service")
	assert.Contains(t, out, "Email is invalid")
	assert.Contains(t, out, "Preferred:")
	assert.Contains(t, out, "Monday, October 19, 2026 09:00 AM")
	assert.Contains(t, out, bookings.SuccessMessage)
	assert.Contains(t, out, "Reference: BOOK-1792017000000")
}

func TestBookCommandRetriesFailedSubmission(t *testing.T) {
	api := newAPI(t)
	var posts atomic.Int32
	flaky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && posts.Add(1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Failed to process booking request"}`))
			return
		}
		api.ServeHTTP(w, r)
	})

	d := &scriptedDriver{answers: append(bookingScript(), actionSubmit, true, actionSubmit)}
	out, err := run(t, flaky, d, "book")
	require.NoError(t, err, out)
	assert.Empty(t, d.answers)
	assert.Contains(t, out, "Failed to submit. Please try again.")
	assert.Contains(t, out, "Reference: BOOK-")
	assert.Equal(t, int32(2), posts.Load())
}

func TestBookCommandGiveUpAfterFailure(t *testing.T) {
	api := newAPI(t)
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		api.ServeHTTP(w, r)
	})

	d := &scriptedDriver{answers: append(bookingScript(), actionSubmit, false)}
	_, err := run(t, failing, d, "book")
	require.Error(t, err)
}

func TestQuoteCommandWithBackNavigation(t *testing.T) {
	d := &scriptedDriver{answers: []any{
		// company
		"Acme Property Group", "Sam Lee", "sam@acme.example", "858-555-0199", actionContinue,
		// property, then back to company
		"500 Commerce Way", "Commercial", "2 acres", actionBack,
		keep{}, keep{}, keep{}, keep{}, actionContinue,
		keep{}, keep{}, keep{}, actionContinue,
		// services
		[]string{"Landscape Maintenance", "Smart Irrigation Systems"}, "Recurring Service", "Q1 2027", keep{}, actionContinue,
		// contact
		"Monthly grounds care for an office park", "Email", keep{},
		actionSubmit,
	}}

	out, err := run(t, newAPI(t), d, "quote")
	require.NoError(t, err, out)
	assert.Empty(t, d.answers)

	assert.Contains(t, out, "Services:")
	assert.Contains(t, out, "Smart Irrigation Systems, Landscape Maintenance")
	assert.Contains(t, out, "Recurring Service")
	assert.Contains(t, out, quotes.SuccessMessage)
	assert.Contains(t, out, "Reference: QUOTE-1792017000000")
}

func TestSlotsCommand(t *testing.T) {
	out, err := run(t, newAPI(t), &scriptedDriver{}, "slots", "--date", "2026-10-19")
	require.NoError(t, err)
	assert.Contains(t, out, "Available times for Monday, October 19, 2026")
	assert.Contains(t, out, "  - 08:00 AM")
	assert.Contains(t, out, "  - 05:00 PM")
}

func TestCalendarCommand(t *testing.T) {
	out, err := run(t, newAPI(t), &scriptedDriver{}, "calendar", "--month", "2026-11", "--months", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "November 2026")
	assert.Contains(t, out, "December 2026")
	assert.Contains(t, out, "Su Mo Tu We Th Fr Sa")
	// November 2026 starts on a Sunday, so the first row has no padding.
	assert.Contains(t, out, "Su Mo Tu We Th Fr Sa\n 1  2  3  4  5  6  7\n")

	_, err = run(t, newAPI(t), &scriptedDriver{}, "calendar", "--month", "11/2026")
	require.Error(t, err)
}

func TestServicesCommand(t *testing.T) {
	for _, args := range [][]string{{"services"}, {"services", "--offline"}} {
		out, err := run(t, newAPI(t), &scriptedDriver{}, args...)
		require.NoError(t, err)
		assert.Contains(t, out, "Smart Irrigation Systems (irrigation-systems)")
		assert.Contains(t, out, "Hardscaping (hardscaping)")
	}
}

func TestSettingsFromEnvAndConfigFile(t *testing.T) {
	srv := httptest.NewServer(newAPI(t))
	t.Cleanup(srv.Close)

	// env var
	t.Setenv("BOOKINGCTL_API_URL", srv.URL)
	var out bytes.Buffer
	cmd := NewRootCmd(&App{Driver: &scriptedDriver{}, Now: clock}, "test")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-color", "--config", writeConfig(t, ""), "slots", "--date", "2026-10-19"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "05:00 PM")

	// config file
	t.Setenv("BOOKINGCTL_API_URL", "")
	out.Reset()
	cfg := writeConfig(t, "api-url: "+srv.URL+"\ntimezone: America/Los_Angeles\n")
	cmd = NewRootCmd(&App{Driver: &scriptedDriver{}, Now: clock}, "test")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-color", "--config", cfg, "slots", "--date", "2026-10-19"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "05:00 PM")

	// unknown timezone
	cmd = NewRootCmd(&App{Driver: &scriptedDriver{}, Now: clock}, "test")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--api-url", srv.URL, "--timezone", "Nowhere/Else", "--config", writeConfig(t, ""), "services", "--offline"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Nowhere/Else"))
}
