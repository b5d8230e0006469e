package calendar_test

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestBuildWeeksMarch2024MondayStart(t *testing.T) {
	// 2024-03-01 is a Friday.
	weeks := calendar.BuildWeeks(date(2024, 3, 15), date(2024, 3, 5), false, nil)

	require.Len(t, weeks, 5)
	assert.Equal(t, "2024-02-26", weeks[0][0].DayKey)
	assert.False(t, weeks[0][0].InCurrentMonth)
	assert.Equal(t, "2024-03-01", weeks[0][4].DayKey)
	assert.True(t, weeks[0][4].InCurrentMonth)
	assert.Equal(t, "2024-03-31", weeks[4][6].DayKey)
	assert.Equal(t, time.Monday, timecalc.ParseDayKey(weeks[0][0].DayKey).Weekday())
}

func TestBuildWeeksSundayStart(t *testing.T) {
	weeks := calendar.BuildWeeks(date(2024, 3, 1), date(2024, 3, 5), true, nil)

	require.Len(t, weeks, 6)
	assert.Equal(t, "2024-02-25", weeks[0][0].DayKey)
	assert.Equal(t, time.Sunday, timecalc.ParseDayKey(weeks[0][0].DayKey).Weekday())
	assert.Equal(t, "2024-03-31", weeks[5][0].DayKey)
	assert.Equal(t, "2024-04-06", weeks[5][6].DayKey)
}

func TestBuildWeeksNoLeadingPadding(t *testing.T) {
	// February 2021 starts on a Monday and has exactly 28 days.
	weeks := calendar.BuildWeeks(date(2021, 2, 10), date(2024, 1, 1), false, nil)

	require.Len(t, weeks, 4)
	assert.Equal(t, "2021-02-01", weeks[0][0].DayKey)
	assert.Equal(t, "2021-02-28", weeks[3][6].DayKey)
}

func TestBuildWeeksCompleteness(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for m := time.January; m <= time.December; m++ {
			for _, sunday := range []bool{false, true} {
				month := date(year, m, 1)
				weeks := calendar.BuildWeeks(month, month, sunday, nil)

				require.GreaterOrEqual(t, len(weeks), 4)
				require.LessOrEqual(t, len(weeks), 6)

				seen := map[string]bool{}
				inMonth := 0
				for _, w := range weeks {
					for _, d := range w {
						require.False(t, seen[d.DayKey], "duplicate cell %s", d.DayKey)
						seen[d.DayKey] = true
						if d.InCurrentMonth {
							inMonth++
							assert.True(t, strings.HasPrefix(d.DayKey, timecalc.YearMonthKey(month)))
						}
					}
				}
				assert.Equal(t, timecalc.LastOfMonth(month).Day(), inMonth,
					"%s sunday=%v", timecalc.YearMonthKey(month), sunday)

				// Consecutive cells are consecutive days.
				prev := timecalc.ParseDayKey(weeks[0][0].DayKey)
				for i, w := range weeks {
					for j, d := range w {
						if i == 0 && j == 0 {
							continue
						}
						cur := timecalc.ParseDayKey(d.DayKey)
						assert.Equal(t, timecalc.DayKeyOf(prev.AddDate(0, 0, 1)), d.DayKey)
						prev = cur
					}
				}
			}
		}
	}
}

func TestBuildWeeksTotalsOnlyInMonth(t *testing.T) {
	totals := map[string]float64{
		"2024-02-29": 5,
		"2024-03-05": 4.25,
	}
	weeks := calendar.BuildWeeks(date(2024, 3, 1), date(2024, 3, 5), false, totals)

	var feb29, mar5 calendar.Day
	for _, w := range weeks {
		for _, d := range w {
			switch d.DayKey {
			case "2024-02-29":
				feb29 = d
			case "2024-03-05":
				mar5 = d
			}
		}
	}
	assert.Zero(t, feb29.TotalHours)
	assert.False(t, feb29.InCurrentMonth)
	assert.InDelta(t, 4.25, mar5.TotalHours, 1e-9)
	assert.Equal(t, 5, mar5.Label)
	assert.True(t, mar5.IsToday)
	assert.True(t, mar5.HasActivity())
	assert.False(t, mar5.GoalMet(8))
	assert.True(t, mar5.GoalMet(4))
}

func TestBuildWeeksTodayFlag(t *testing.T) {
	weeks := calendar.BuildWeeks(date(2024, 3, 1), time.Date(2024, 3, 12, 18, 30, 0, 0, time.Local), false, nil)
	count := 0
	for _, w := range weeks {
		for _, d := range w {
			if d.IsToday {
				count++
				assert.Equal(t, "2024-03-12", d.DayKey)
			}
		}
	}
	assert.Equal(t, 1, count)

	other := calendar.BuildWeeks(date(2024, 5, 1), date(2024, 3, 12), false, nil)
	for _, w := range other {
		for _, d := range w {
			assert.False(t, d.IsToday)
		}
	}
}

func TestRender(t *testing.T) {
	weeks := calendar.BuildWeeks(date(2024, 3, 1), date(2024, 3, 5), false, map[string]float64{"2024-03-05": 8})
	out := calendar.Render(weeks, calendar.RenderOptions{
		Title:         "March 2024",
		WeekdayLabels: [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		HoursPerDay:   8,
	})

	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "Mon")
	assert.Contains(t, out, "31")
	assert.Contains(t, out, "●")
	assert.Equal(t, len(weeks)+2, strings.Count(out, "\n"))
}

func TestBuildWeeksCompleteAcrossMidnightDST(t *testing.T) {
	for _, zone := range []string{"America/Santiago", "America/Sao_Paulo", "Pacific/Apia"} {
		t.Run(zone, func(t *testing.T) {
			loc, err := time.LoadLocation(zone)
			require.NoError(t, err)
			prev := time.Local
			time.Local = loc
			t.Cleanup(func() { time.Local = prev })

			for y := 1990; y <= 2030; y++ {
				for m := time.January; m <= time.December; m++ {
					month := timecalc.DayStart(y, m, 1, time.Local)
					for _, sunday := range []bool{false, true} {
						checkGrid(t, calendar.BuildWeeks(month, month, sunday, nil), y, m, sunday)
					}
				}
			}
		})
	}
}

// checkGrid asserts the rows are consecutive days covering the whole month.
func checkGrid(t *testing.T, weeks []calendar.Week, y int, m time.Month, startFromSunday bool) {
	t.Helper()
	wantStart := time.Monday
	if startFromSunday {
		wantStart = time.Sunday
	}
	first, err := time.Parse(timecalc.DayKeyLayout, weeks[0][0].DayKey)
	require.NoError(t, err)
	if first.Weekday() != wantStart {
		t.Fatalf("%d-%02d: grid starts on %s (%s)", y, m, first.Weekday(), weeks[0][0].DayKey)
	}

	inMonth := 0
	for i, week := range weeks {
		for j, d := range week {
			want := first.AddDate(0, 0, i*7+j).Format(timecalc.DayKeyLayout)
			if d.DayKey != want {
				t.Fatalf("%d-%02d: cell %d/%d = %s, want %s", y, m, i, j, d.DayKey, want)
			}
			if d.InCurrentMonth {
				inMonth++
			}
		}
	}
	days := time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if inMonth != days {
		t.Fatalf("%d-%02d: %d in-month cells, want %d", y, m, inMonth, days)
	}
}
