package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/aggregate"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/earnings"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/i18n"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's logged time and the month's progress",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a := openApp()
	defer a.close()
	settings := a.loadSettings(ctx)
	entries := a.listEntries(ctx)

	printStatus(cmd.OutOrStdout(), entries, settings)
	return nil
}

func printStatus(w io.Writer, entries []model.Entry, settings model.Settings) {
	today := now()
	lang := settings.Language
	hl, ml := i18n.T(lang, i18n.Hours), i18n.T(lang, i18n.Minutes)

	if settings.Incomplete() {
		fmt.Fprintln(w, i18n.T(lang, i18n.SettingsNotice))
	}

	total := aggregate.TotalHoursByDay(entries, timecalc.DayKeyOf(today))
	marker := ""
	if earnings.GoalMet(total, settings.DailyHours()) {
		marker = " ●"
	}
	fmt.Fprintf(w, "%s: %s%s\n", i18n.LongDayLabel(lang, today), earningsTooltip(total, settings, hl, ml), marker)

	month := timecalc.FirstOfMonth(today)
	summary := earnings.Summarize(entries, month, settings, timecalc.WorkingDaysInMonth(month, settings.IncludeWeekends))
	fmt.Fprintf(w, "%s: %s, %s: %s, %s: %d%%\n",
		i18n.MonthLabel(lang, month),
		i18n.FormatMoney(summary.AmountEarned, settings.Currency),
		i18n.T(lang, i18n.Worked),
		timecalc.FormatHoursAndMinutes(summary.HoursWorked, hl, ml),
		i18n.T(lang, i18n.Progress),
		summary.ProgressPercent,
	)
}

// earningsTooltip is the day tooltip, or "0 h" for a day without entries.
func earningsTooltip(total float64, settings model.Settings, hourLabel, minuteLabel string) string {
	tip := earnings.DayTooltip(total, settings.Rate(), i18n.CurrencySymbol(settings.Currency), hourLabel, minuteLabel)
	if tip == "" {
		return timecalc.FormatHoursAndMinutes(0, hourLabel, minuteLabel)
	}
	return tip
}
