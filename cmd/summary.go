package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/earnings"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/i18n"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/report"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

var (
	summaryMonth  string
	summaryFormat string
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"report"},
	Short:   "Show the month's earnings summary and projection",
	Args:    cobra.NoArgs,
	RunE:    runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryMonth, "month", "", "Month to summarize (YYYY-MM, default current)")
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "md", "Output format: md, json")
}

// monthReport is the JSON shape of the summary command.
type monthReport struct {
	Month      string              `json:"month"`
	Settings   model.Settings      `json:"settings"`
	Summary    earnings.Summary    `json:"summary"`
	Projection earnings.Projection `json:"projection"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	month, err := resolveMonth(summaryMonth)
	if err != nil {
		return err
	}
	if summaryFormat != "md" && summaryFormat != "json" {
		return fmt.Errorf("invalid --format %q: must be md or json", summaryFormat)
	}

	ctx := context.Background()
	a := openApp()
	defer a.close()
	settings := a.loadSettings(ctx)
	entries := a.listEntries(ctx)

	r := buildMonthReport(entries, month, now(), settings)
	out := cmd.OutOrStdout()
	if summaryFormat == "json" {
		if err := report.WriteJSON(out, r); err != nil {
			exitStorage(err)
		}
		return nil
	}
	printSummary(out, r)
	return nil
}

func buildMonthReport(entries []model.Entry, month, today time.Time, settings model.Settings) monthReport {
	workingDays := timecalc.WorkingDaysInMonth(month, settings.IncludeWeekends)
	return monthReport{
		Month:      timecalc.YearMonthKey(month),
		Settings:   settings,
		Summary:    earnings.Summarize(entries, month, settings, workingDays),
		Projection: earnings.Project(entries, month, today, settings),
	}
}

func printSummary(w io.Writer, r monthReport) {
	s := r.Settings
	lang := s.Language
	hl, ml := i18n.T(lang, i18n.Hours), i18n.T(lang, i18n.Minutes)
	hours := func(h float64) string { return timecalc.FormatHoursAndMinutes(h, hl, ml) }
	money := func(v int64) string { return i18n.FormatMoney(v, s.Currency) }
	month, _ := timecalc.ParseMonth(r.Month)

	if s.Incomplete() {
		fmt.Fprintln(w, i18n.T(lang, i18n.SettingsNotice))
	}
	fmt.Fprintln(w, i18n.MonthLabel(lang, month))
	fmt.Fprintln(w, "--------------------------------")
	fmt.Fprintf(w, "%-20s%s\n", i18n.T(lang, i18n.Worked), hours(r.Summary.HoursWorked))
	fmt.Fprintf(w, "%-20s%s\n", i18n.T(lang, i18n.Earned), money(r.Summary.AmountEarned))
	if r.Summary.TotalHoursNeeded != nil {
		fmt.Fprintf(w, "%-20s%s (%s)\n", i18n.T(lang, i18n.Goal), hours(*r.Summary.TotalHoursNeeded), money(r.Summary.MaxPossibleIncome))
	}
	if r.Summary.HoursRemaining != nil {
		fmt.Fprintf(w, "%-20s%s\n", i18n.T(lang, i18n.Remaining), hours(*r.Summary.HoursRemaining))
	}
	fmt.Fprintf(w, "%-20s%d%%\n", i18n.T(lang, i18n.Progress), r.Summary.ProgressPercent)

	p := r.Projection
	if p.RemainingWorkingDays > 0 {
		fmt.Fprintln(w, "--------------------------------")
		fmt.Fprintf(w, "%-20s%s %s %d %s\n",
			i18n.T(lang, i18n.Possible), money(p.RemainingPotential),
			i18n.T(lang, i18n.For), p.RemainingWorkingDays, i18n.DayWord(lang, p.RemainingWorkingDays))
		fmt.Fprintf(w, "%-20s%s\n", i18n.T(lang, i18n.Projected), money(p.ProjectedTotal))
		if p.HoursPerDayNeeded != nil {
			fmt.Fprintf(w, "%-20s%s\n", i18n.T(lang, i18n.PerDayNeeded), hours(*p.HoursPerDayNeeded))
		}
	}
}
