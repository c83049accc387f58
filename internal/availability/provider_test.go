package availability

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laProvider(t *testing.T, now time.Time) *Provider {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return NewProvider(loc, WithClock(func() time.Time { return now }))
}

// Wednesday 2026-10-14, mid afternoon in San Diego.
var fixedNow = time.Date(2026, 10, 14, 22, 30, 0, 0, time.UTC)

func TestIsAvailable(t *testing.T) {
	p := laProvider(t, fixedNow)

	cases := []struct {
		date string
		want bool
	}{
		{"2026-10-13", false}, // yesterday
		{"2026-10-14", true},  // today, time of day ignored
		{"2026-10-15", true},
		{"2026-10-18", false}, // Sunday
		{"2026-10-19", true},  // Monday
		{"2026-11-01", false}, // Sunday
		{"2025-12-25", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.IsAvailable(MustParseDate(tc.date)), tc.date)
	}
	assert.False(t, p.IsAvailable(Date{}))
}

func TestTodayUsesProviderZone(t *testing.T) {
	// 02:00 UTC on the 15th is still the evening of the 14th in San Diego.
	p := laProvider(t, time.Date(2026, 10, 15, 2, 0, 0, 0, time.UTC))
	assert.Equal(t, MustParseDate("2026-10-14"), p.Today())
	assert.True(t, p.IsAvailable(MustParseDate("2026-10-14")))

	utc := NewProvider(nil, WithClock(func() time.Time { return time.Date(2026, 10, 15, 2, 0, 0, 0, time.UTC) }))
	assert.False(t, utc.IsAvailable(MustParseDate("2026-10-14")))
}

func TestMonthView(t *testing.T) {
	p := laProvider(t, fixedNow)
	view := p.Month(2026, time.October)

	assert.Equal(t, "October", view.Name)
	assert.Equal(t, 4, view.LeadingBlanks, "October 1st 2026 is a Thursday")
	require.Len(t, view.Days, 31)
	assert.Len(t, view.AvailableDates(), 16)

	today := p.Today()
	for _, day := range view.Days {
		want := !day.Date.Before(today) && day.Date.Weekday() != time.Sunday
		assert.Equal(t, want, day.Available, day.Date.String())
	}
}

func TestMonthNavigation(t *testing.T) {
	p := laProvider(t, fixedNow)

	dec := p.Month(2026, time.December)
	y, m := dec.Next()
	assert.Equal(t, 2027, y)
	assert.Equal(t, time.January, m)

	jan := p.Month(2026, time.January)
	y, m = jan.Prev()
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)
	assert.Empty(t, jan.AvailableDates(), "a past month has nothing selectable")

	overflow := p.Month(2026, 13)
	assert.Equal(t, 2027, overflow.Year)
	assert.Equal(t, time.January, overflow.Month)

	feb := p.Month(2028, time.February)
	assert.Len(t, feb.Days, 29)
}

func TestNextAvailable(t *testing.T) {
	p := laProvider(t, fixedNow)
	assert.Equal(t, MustParseDate("2026-10-19"), p.NextAvailable(MustParseDate("2026-10-18")))
	assert.Equal(t, MustParseDate("2026-10-14"), p.NextAvailable(MustParseDate("2026-01-01")))
}

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()
	require.Len(t, slots, 10)
	assert.Equal(t, "08:00 AM", slots[0])
	assert.Equal(t, "05:00 PM", slots[9])

	slots[0] = "mutated"
	assert.Equal(t, "08:00 AM", TimeSlots()[0], "callers get a copy")
	assert.True(t, IsSlot("12:00 PM"))
	assert.False(t, IsSlot("06:00 PM"))
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Preferred Date `json:"preferred"`
		Alternate Date `json:"alternate"`
		FromJS    Date `json:"fromJs"`
	}
	raw := `{"preferred":"2026-10-19","alternate":null,"fromJs":"2026-10-20T07:00:00Z"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, MustParseDate("2026-10-19"), payload.Preferred)
	assert.True(t, payload.Alternate.IsZero())
	assert.Equal(t, MustParseDate("2026-10-20"), payload.FromJS)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"preferred":"2026-10-19","alternate":null,"fromJs":"2026-10-20"}`, string(out))

	assert.Equal(t, "Monday, October 19, 2026", payload.Preferred.Long())

	var bad Date
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &bad))
}
