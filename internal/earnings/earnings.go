// Package earnings derives the monthly earnings summary and the
// remaining-potential projection from an entry snapshot and settings.
//
// Currency amounts are whole units rounded half-up. Any non-finite
// intermediate collapses the value that depends on it to zero.
package earnings

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/aggregate"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
)

// Summary is the monthly earnings and progress view.
type Summary struct {
	HoursWorked          float64  `json:"hours_worked"`
	AmountEarned         int64    `json:"amount_earned"`
	TotalHoursNeeded     *float64 `json:"total_hours_needed"`
	HoursRemaining       *float64 `json:"hours_remaining"`
	MaxPossibleIncome    int64    `json:"max_possible_income"`
	DesiredMonthlyIncome float64  `json:"desired_monthly_income"`
	ProgressPercent      int      `json:"progress_percent"`
}

// Summarize computes the summary for the month containing month.
// workingDaysInMonth is only consulted in hours mode.
func Summarize(entries []model.Entry, month time.Time, settings model.Settings, workingDaysInMonth int) Summary {
	hoursWorked := aggregate.TotalHours(aggregate.EntriesInMonth(entries, month.Year(), month.Month()))

	rate := settings.Rate()
	desired := settings.IncomeTarget()

	var needed *float64
	switch settings.CalculationMode {
	case model.ModeIncome:
		if desired > 0 {
			needed = finitePtr(desired / rate)
		}
	default:
		needed = finitePtr(float64(workingDaysInMonth) * settings.DailyHours())
	}

	s := Summary{
		HoursWorked:          hoursWorked,
		AmountEarned:         RoundCurrency(hoursWorked * rate),
		TotalHoursNeeded:     needed,
		DesiredMonthlyIncome: desired,
		ProgressPercent:      Progress(hoursWorked, needed),
	}
	if needed != nil {
		s.MaxPossibleIncome = RoundCurrency(rate * *needed)
		remaining := math.Max(*needed-hoursWorked, 0)
		s.HoursRemaining = &remaining
	}
	return s
}

// Progress returns worked/needed as a whole percentage clamped to [0, 100].
// A missing or zero target yields 0.
func Progress(hoursWorked float64, needed *float64) int {
	if needed == nil || *needed <= 0 {
		return 0
	}
	ratio := hoursWorked / *needed * 100
	if !finite(ratio) || ratio <= 0 {
		return 0
	}
	p := RoundCurrency(ratio)
	if p > 100 {
		return 100
	}
	return int(p)
}

// RoundCurrency rounds x half-up to a whole currency unit.
func RoundCurrency(x float64) int64 {
	if !finite(x) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(0).IntPart()
}

// GoalMet reports whether a day's logged hours reach the per-day target.
func GoalMet(totalHours, hoursPerDay float64) bool {
	return totalHours > 0 && totalHours >= hoursPerDay
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func finitePtr(x float64) *float64 {
	if !finite(x) {
		return nil
	}
	return &x
}
