package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/aggregate"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/i18n"
)

var calendarMonth string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month grid with logged days",
	Long: `Show a month grid. Days where the daily hour target was met are marked
with ●, other days with logged time with ·.`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month to show (YYYY-MM, default current)")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	month, err := resolveMonth(calendarMonth)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a := openApp()
	defer a.close()
	settings := a.loadSettings(ctx)
	entries := a.listEntries(ctx)

	lang := settings.Language
	weeks := calendar.BuildWeeks(month, now(), settings.StartFromSunday, aggregate.HoursByDay(entries))
	out := cmd.OutOrStdout()
	fmt.Fprint(out, calendar.Render(weeks, calendar.RenderOptions{
		Title:         i18n.MonthLabel(lang, month),
		WeekdayLabels: i18n.WeekdayLabels(lang, settings.StartFromSunday),
		HoursPerDay:   settings.DailyHours(),
	}))
	return nil
}
