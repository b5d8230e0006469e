package earnings

import (
	"time"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/aggregate"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

// Projection describes what is still achievable in the current month if the
// user works exactly the per-day target on every remaining working day.
// It is illustrative only.
type Projection struct {
	RemainingWorkingDays int      `json:"remaining_working_days"`
	EarnedSoFar          int64    `json:"earned_so_far"`
	DailyPotential       int64    `json:"daily_potential"`
	RemainingPotential   int64    `json:"remaining_potential"`
	ProjectedTotal       int64    `json:"projected_total"`
	HoursPerDayNeeded    *float64 `json:"hours_per_day_needed"`
}

// RemainingPotential returns round(rate × hoursPerDay × remainingDays), or 0
// when any factor is not positive.
func RemainingPotential(hourlyRate, hoursPerDay float64, remainingWorkingDays int) int64 {
	if !finite(hourlyRate) || hourlyRate <= 0 {
		return 0
	}
	if !finite(hoursPerDay) || hoursPerDay <= 0 {
		return 0
	}
	if remainingWorkingDays <= 0 {
		return 0
	}
	return RoundCurrency(hourlyRate * hoursPerDay * float64(remainingWorkingDays))
}

// DailyPotential returns round(rate × hoursPerDay), or 0 when either is not positive.
func DailyPotential(hourlyRate, hoursPerDay float64) int64 {
	if !finite(hourlyRate) || hourlyRate <= 0 {
		return 0
	}
	if !finite(hoursPerDay) || hoursPerDay <= 0 {
		return 0
	}
	return RoundCurrency(hourlyRate * hoursPerDay)
}

// Project computes the remaining-potential figures for month as seen on today.
// Months other than today's have no remaining working days.
func Project(entries []model.Entry, month, today time.Time, settings model.Settings) Projection {
	rate := settings.Rate()
	hoursPerDay := settings.DailyHours()
	remainingDays := timecalc.RemainingWorkingDaysInMonth(month, today, settings.IncludeWeekends)

	monthEntries := aggregate.EntriesInMonth(entries, month.Year(), month.Month())
	var earned int64
	if rate > 0 {
		earned = RoundCurrency(aggregate.TotalHours(monthEntries) * rate)
	}

	p := Projection{
		RemainingWorkingDays: remainingDays,
		EarnedSoFar:          earned,
		DailyPotential:       DailyPotential(rate, hoursPerDay),
		RemainingPotential:   RemainingPotential(rate, hoursPerDay, remainingDays),
	}
	p.ProjectedTotal = p.EarnedSoFar + p.RemainingPotential

	summary := Summarize(entries, month, settings, timecalc.WorkingDaysInMonth(month, settings.IncludeWeekends))
	if summary.HoursRemaining != nil && remainingDays > 0 {
		perDay := *summary.HoursRemaining / float64(remainingDays)
		p.HoursPerDayNeeded = finitePtr(perDay)
	}
	return p
}
