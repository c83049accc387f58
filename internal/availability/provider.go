// Package availability decides which calendar days and time slots can be
// picked for an appointment. The rules are static: no past days, no Sundays,
// and a fixed list of hourly slots. Booked capacity is not consulted.
package availability

import (
	"time"
)

var timeSlots = []string{
	"08:00 AM",
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
}

// TimeSlots returns the selectable time-of-day slots in display order.
func TimeSlots() []string {
	return append([]string(nil), timeSlots...)
}

// IsSlot reports whether s is one of the fixed slots.
func IsSlot(s string) bool {
	for _, slot := range timeSlots {
		if slot == s {
			return true
		}
	}
	return false
}

// ClosedWeekday is the day the business takes no appointments.
const ClosedWeekday = time.Sunday

// Provider evaluates day availability relative to "today" in a fixed zone.
type Provider struct {
	now func() time.Time
	loc *time.Location
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProvider returns a provider that computes "today" in loc (UTC when nil).
func NewProvider(loc *time.Location, opts ...Option) *Provider {
	if loc == nil {
		loc = time.UTC
	}
	p := &Provider{now: time.Now, loc: loc}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Location returns the provider's zone.
func (p *Provider) Location() *time.Location {
	return p.loc
}

// Today returns the current calendar day in the provider's zone.
func (p *Provider) Today() Date {
	return DateOf(p.now().In(p.loc))
}

// IsAvailable reports whether d can be selected.
func (p *Provider) IsAvailable(d Date) bool {
	if d.IsZero() {
		return false
	}
	if d.Before(p.Today()) {
		return false
	}
	return d.Weekday() != ClosedWeekday
}

// Day is one cell of a month grid.
type Day struct {
	Date      Date `json:"date"`
	Available bool `json:"available"`
}

// MonthView is the grid shown for one month. LeadingBlanks is the number of
// empty cells before the 1st when weeks start on Sunday.
type MonthView struct {
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	Name          string     `json:"name"`
	LeadingBlanks int        `json:"leadingBlanks"`
	Days          []Day      `json:"days"`
}

// Month builds the grid for the given month.
func (p *Provider) Month(year int, month time.Month) MonthView {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// normalise overflowing months such as 13
	year, month = first.Year(), first.Month()
	last := first.AddDate(0, 1, -1).Day()

	view := MonthView{
		Year:          year,
		Month:         month,
		Name:          month.String(),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]Day, 0, last),
	}
	for day := 1; day <= last; day++ {
		d := Date{Year: year, Month: month, Day: day}
		view.Days = append(view.Days, Day{Date: d, Available: p.IsAvailable(d)})
	}
	return view
}

// CurrentMonth builds the grid for the month containing today.
func (p *Provider) CurrentMonth() MonthView {
	today := p.Today()
	return p.Month(today.Year, today.Month)
}

// Next returns the year and month after the view.
func (v MonthView) Next() (int, time.Month) {
	t := time.Date(v.Year, v.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Prev returns the year and month before the view.
func (v MonthView) Prev() (int, time.Month) {
	t := time.Date(v.Year, v.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// AvailableDates lists the selectable days of the view.
func (v MonthView) AvailableDates() []Date {
	var out []Date
	for _, d := range v.Days {
		if d.Available {
			out = append(out, d.Date)
		}
	}
	return out
}

// NextAvailable returns the first selectable day on or after from.
func (p *Provider) NextAvailable(from Date) Date {
	if from.Before(p.Today()) {
		from = p.Today()
	}
	for !p.IsAvailable(from) {
		from = from.AddDays(1)
	}
	return from
}
