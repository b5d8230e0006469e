package earnings

import (
	"fmt"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

// DayTooltip renders the per-day hover text: the logged time and, when a rate
// is configured, the amount earned that day, e.g. "4 ч 15 мин • 4250₽".
// Days without logged time have no tooltip.
func DayTooltip(totalHours, hourlyRate float64, currencySymbol, hourLabel, minuteLabel string) string {
	if totalHours <= 0 || !finite(totalHours) {
		return ""
	}
	tooltip := timecalc.FormatHoursAndMinutes(totalHours, hourLabel, minuteLabel)
	if hourlyRate > 0 {
		tooltip += fmt.Sprintf(" • %d%s", RoundCurrency(totalHours*hourlyRate), currencySymbol)
	}
	return tooltip
}
