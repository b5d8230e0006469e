package timecalc

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// DayKeyLayout is the canonical day key format.
const DayKeyLayout = "2006-01-02"

// GenerateID creates an opaque, never reused entry ID.
func GenerateID() string {
	return uuid.NewString()
}

// DayKeyOf formats the calendar day of t as YYYY-MM-DD using t's own
// location, never its UTC fields.
func DayKeyOf(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseDayKey returns the start of the local day named by key. Full RFC 3339
// instants are accepted too and truncated to their local calendar date.
// Malformed keys are a caller error: the zero time is returned.
func ParseDayKey(key string) time.Time {
	t, err := ParseDayKeyStrict(key)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseDayKeyStrict is ParseDayKey with an error for malformed input.
func ParseDayKeyStrict(key string) (time.Time, error) {
	if t, err := time.Parse(DayKeyLayout, key); err == nil {
		y, m, d := t.Date()
		return DayStart(y, m, d, time.Local), nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, key); err == nil {
			return StartOfDay(t.In(time.Local)), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", key)
}

// ParseMonth parses a YYYY-MM month selector into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return DayStart(t.Year(), t.Month(), 1, time.Local), nil
}

// YearMonthKey returns the YYYY-MM prefix shared by all day keys of t's month.
func YearMonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// DayStart returns the first instant of the calendar day y-m-d in loc.
// Where a DST jump skips midnight, that is the end of the jump rather than
// a time on the previous day.
func DayStart(y int, m time.Month, d int, loc *time.Location) time.Time {
	// Normalise overflowing components (day 0, day 32) on a zone-free value.
	y, m, d = time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if ty, tm, td := t.Date(); ty == y && tm == m && td == d {
		return t
	}
	start, _ := time.Date(y, m, d, 12, 0, 0, 0, loc).ZoneBounds()
	return start
}

// CivilDate returns noon UTC of t's calendar day. Day stepping on the
// result never meets a missing or repeated local midnight; weekday and
// y/m/d are those of t's local day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// StartOfDay returns the first instant of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return DayStart(y, m, d, t.Location())
}

// FirstOfMonth returns the start of the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return DayStart(t.Year(), t.Month(), 1, t.Location())
}

// LastOfMonth returns the start of the last day of t's month.
func LastOfMonth(t time.Time) time.Time {
	return DayStart(t.Year(), t.Month()+1, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether two times fall in the same year and month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// NormalizeDuration carries minute overflow into the hour component.
func NormalizeDuration(hours, minutes int) (int, int) {
	if minutes >= 60 {
		hours += minutes / 60
		minutes %= 60
	}
	return hours, minutes
}

// SplitHours splits fractional hours into whole hours and rounded minutes.
// A minute component that rounds up to 60 is carried into the hours.
func SplitHours(hours float64) (int, int) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return 0, 0
	}
	h := math.Floor(hours)
	m := math.Round((hours - h) * 60)
	if m >= 60 {
		h++
		m = 0
	}
	return int(h), int(m)
}

// FormatHoursAndMinutes formats fractional hours like "4 hours 15 minutes",
// dropping the minute part when it is zero.
func FormatHoursAndMinutes(hours float64, hourLabel, minuteLabel string) string {
	h, m := SplitHours(hours)
	if m == 0 {
		return fmt.Sprintf("%d %s", h, hourLabel)
	}
	return fmt.Sprintf("%d %s %d %s", h, hourLabel, m, minuteLabel)
}

// FormatEntryDuration formats an entry's whole hours and minutes without any
// rounding, e.g. "2 hours 30 minutes" or "3 hours".
func FormatEntryDuration(hours, minutes int, hourLabel, minuteLabel string) string {
	if minutes > 0 {
		return fmt.Sprintf("%d %s %d %s", hours, hourLabel, minutes, minuteLabel)
	}
	return fmt.Sprintf("%d %s", hours, hourLabel)
}
