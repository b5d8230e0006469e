// Package calendar builds the week-major month grid shown by the calendar view.
package calendar

import (
	"time"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

// Day is one cell of the grid.
type Day struct {
	DayKey         string  `json:"date"`
	Label          int     `json:"label"`
	InCurrentMonth bool    `json:"in_current_month"`
	IsToday        bool    `json:"is_today"`
	TotalHours     float64 `json:"total_hours"`
}

// HasActivity reports whether any time is logged on the day.
func (d Day) HasActivity() bool {
	return d.TotalHours > 0
}

// GoalMet reports whether the day's logged hours reach hoursPerDay.
func (d Day) GoalMet(hoursPerDay float64) bool {
	return d.HasActivity() && d.TotalHours >= hoursPerDay
}

// Week is one row of the grid, starting on the configured week-start day.
type Week [7]Day

// BuildWeeks lays out the month containing month as whole 7-day rows. The
// first row starts on the most recent Monday (or Sunday when startFromSunday)
// on or before the 1st; rows are emitted until the last day is covered.
// Padding cells outside the month always report zero hours.
func BuildWeeks(month, today time.Time, startFromSunday bool, perDayTotals map[string]float64) []Week {
	// Cells are laid out on civil dates; local midnight may not exist.
	first := timecalc.CivilDate(timecalc.FirstOfMonth(month))
	last := timecalc.CivilDate(timecalc.LastOfMonth(month))
	todayKey := timecalc.DayKeyOf(today)

	offset := int(first.Weekday())
	if !startFromSunday {
		offset = (offset + 6) % 7
	}

	var weeks []Week
	for row := 0; ; row++ {
		rowStart := first.AddDate(0, 0, row*7-offset)
		if rowStart.After(last) {
			break
		}
		var week Week
		for i := range week {
			d := rowStart.AddDate(0, 0, i)
			key := timecalc.DayKeyOf(d)
			inMonth := timecalc.SameMonth(d, first)
			var total float64
			if inMonth {
				total = perDayTotals[key]
			}
			week[i] = Day{
				DayKey:         key,
				Label:          d.Day(),
				InCurrentMonth: inMonth,
				IsToday:        key == todayKey,
				TotalHours:     total,
			}
		}
		weeks = append(weeks, week)
	}
	return weeks
}
