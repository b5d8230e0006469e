package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

func TestDayKeyOf(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local), "2024-03-05"},
		{time.Date(2024, 12, 31, 23, 59, 59, 0, time.Local), "2024-12-31"},
		{time.Date(987, 1, 9, 12, 0, 0, 0, time.Local), "0987-01-09"},
	}
	for _, tt := range tests {
		got := timecalc.DayKeyOf(tt.in)
		if got != tt.want {
			t.Errorf("DayKeyOf(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDayKeyOfUsesOwnLocation(t *testing.T) {
	// 00:30 in UTC+3 is still the previous day in UTC.
	msk := time.FixedZone("MSK", 3*60*60)
	late := time.Date(2024, 3, 5, 0, 30, 0, 0, msk)
	if got := timecalc.DayKeyOf(late); got != "2024-03-05" {
		t.Errorf("DayKeyOf = %q, want %q", got, "2024-03-05")
	}
	if got := timecalc.DayKeyOf(late.UTC()); got != "2024-03-04" {
		t.Errorf("DayKeyOf(UTC) = %q, want %q", got, "2024-03-04")
	}
}

func TestParseDayKeyRoundTrip(t *testing.T) {
	start := time.Date(2023, 12, 25, 0, 0, 0, 0, time.Local)
	for i := 0; i < 800; i++ {
		d := time.Date(start.Year(), start.Month(), start.Day()+i, 15, 4, 5, 0, time.Local)
		key := timecalc.DayKeyOf(d)
		parsed := timecalc.ParseDayKey(key)
		if got := timecalc.DayKeyOf(parsed); got != key {
			t.Fatalf("round trip %q -> %q", key, got)
		}
		if !timecalc.SameDay(parsed, d) {
			t.Fatalf("ParseDayKey(%q) = %v, not the same day as %v", key, parsed, d)
		}
		if parsed.Hour() != 0 || parsed.Minute() != 0 || parsed.Second() != 0 {
			t.Fatalf("ParseDayKey(%q) = %v, want local midnight", key, parsed)
		}
	}
}

func TestParseDayKeyAcceptsInstant(t *testing.T) {
	instant := time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local)
	got := timecalc.ParseDayKey(instant.Format(time.RFC3339Nano))
	if timecalc.DayKeyOf(got) != "2024-03-05" {
		t.Errorf("ParseDayKey(instant) = %v, want 2024-03-05", got)
	}
}

func TestParseDayKeyMalformed(t *testing.T) {
	for _, key := range []string{"", "2024-13-01", "2024-02-30", "yesterday"} {
		got := timecalc.ParseDayKey(key)
		if !got.IsZero() {
			t.Errorf("ParseDayKey(%q) = %v, want zero time", key, got)
		}
		if _, err := timecalc.ParseDayKeyStrict(key); err == nil {
			t.Errorf("ParseDayKeyStrict(%q): expected error", key)
		}
	}
}

func TestParseMonth(t *testing.T) {
	got, err := timecalc.ParseMonth("2024-02")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}
	if timecalc.DayKeyOf(got) != "2024-02-01" {
		t.Errorf("ParseMonth = %v, want 2024-02-01", got)
	}
	if _, err := timecalc.ParseMonth("02/2024"); err == nil {
		t.Error("ParseMonth: expected error for bad layout")
	}
}

func TestMonthBounds(t *testing.T) {
	d := time.Date(2024, 2, 17, 9, 0, 0, 0, time.Local)
	if got := timecalc.DayKeyOf(timecalc.FirstOfMonth(d)); got != "2024-02-01" {
		t.Errorf("FirstOfMonth = %q", got)
	}
	if got := timecalc.DayKeyOf(timecalc.LastOfMonth(d)); got != "2024-02-29" {
		t.Errorf("LastOfMonth = %q", got)
	}
	if got := timecalc.YearMonthKey(d); got != "2024-02" {
		t.Errorf("YearMonthKey = %q", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		h, m         int
		wantH, wantM int
	}{
		{1, 15, 1, 15},
		{0, 75, 1, 15},
		{2, 120, 4, 0},
		{0, 59, 0, 59},
	}
	for _, tt := range tests {
		h, m := timecalc.NormalizeDuration(tt.h, tt.m)
		if h != tt.wantH || m != tt.wantM {
			t.Errorf("NormalizeDuration(%d, %d) = %d, %d, want %d, %d", tt.h, tt.m, h, m, tt.wantH, tt.wantM)
		}
	}
}

func TestFormatHoursAndMinutes(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0 hours"},
		{4.25, "4 hours 15 minutes"},
		{2.5 + 1.75, "4 hours 15 minutes"},
		{8, "8 hours"},
		{1.0 / 3, "0 hours 20 minutes"},
		{1.999, "2 hours"},
		{0.9999, "1 hours"},
	}
	for _, tt := range tests {
		got := timecalc.FormatHoursAndMinutes(tt.hours, "hours", "minutes")
		if got != tt.want {
			t.Errorf("FormatHoursAndMinutes(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestFormatEntryDuration(t *testing.T) {
	if got := timecalc.FormatEntryDuration(2, 30, "ч", "мин"); got != "2 ч 30 мин" {
		t.Errorf("FormatEntryDuration = %q", got)
	}
	if got := timecalc.FormatEntryDuration(3, 0, "ч", "мин"); got != "3 ч" {
		t.Errorf("FormatEntryDuration = %q", got)
	}
}

func TestGenerateID(t *testing.T) {
	a := timecalc.GenerateID()
	b := timecalc.GenerateID()
	if a == b {
		t.Errorf("GenerateID returned duplicate %q", a)
	}
	if len(a) != len("xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx") {
		t.Errorf("GenerateID length = %d", len(a))
	}
}
