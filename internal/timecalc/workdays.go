package timecalc

import "time"

// IsWorkingDay reports whether t counts toward monthly targets.
func IsWorkingDay(t time.Time, includeWeekends bool) bool {
	if includeWeekends {
		return true
	}
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// CountWorkingDays counts the working days in [first, last] inclusive.
// Days are stepped on civil dates so DST transitions cannot skip or repeat one.
func CountWorkingDays(first, last time.Time, includeWeekends bool) int {
	from, to := CivilDate(first), CivilDate(last)
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, includeWeekends) {
			count++
		}
	}
	return count
}

// WorkingDaysInMonth counts the working days of month's whole calendar month.
func WorkingDaysInMonth(month time.Time, includeWeekends bool) int {
	return CountWorkingDays(FirstOfMonth(month), LastOfMonth(month), includeWeekends)
}

// RemainingWorkingDaysInMonth counts working days from today through the end
// of the month, today included. It is 0 unless month is today's month.
func RemainingWorkingDaysInMonth(month, today time.Time, includeWeekends bool) int {
	if !SameMonth(month, today) {
		return 0
	}
	return CountWorkingDays(today, LastOfMonth(month), includeWeekends)
}
