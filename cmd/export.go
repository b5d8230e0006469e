package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/aggregate"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/earnings"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/report"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

var (
	exportMonth  string
	exportDate   string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a month or a day to stdout",
	Long: `Export a month (current by default) or a single day with --date.
The text format is a shareable digest: "+" marks entries already in the
tracker, "-" entries still to be copied.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "Month to export (YYYY-MM, default current)")
	exportCmd.Flags().StringVar(&exportDate, "date", "", "Single day to export (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "text", "Output format: text, csv, json")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportDate != "" && exportMonth != "" {
		return fmt.Errorf("--date and --month are mutually exclusive")
	}
	switch exportFormat {
	case "text", "csv", "json":
	default:
		return fmt.Errorf("invalid --format %q: must be text, csv or json", exportFormat)
	}

	var (
		dayKey string
		month  time.Time
		err    error
	)
	if exportDate != "" {
		if dayKey, err = resolveDay(exportDate); err != nil {
			return err
		}
	} else if month, err = resolveMonth(exportMonth); err != nil {
		return err
	}

	ctx := context.Background()
	a := openApp()
	defer a.close()
	settings := a.loadSettings(ctx)
	entries := a.listEntries(ctx)

	if err := writeExport(cmd.OutOrStdout(), entries, exportFormat, dayKey, month, settings); err != nil {
		exitStorage(err)
	}
	return nil
}

// writeExport writes the day dayKey when set, the month otherwise, in format.
func writeExport(w io.Writer, entries []model.Entry, format, dayKey string, month time.Time, settings model.Settings) error {
	var selected []model.Entry
	if dayKey != "" {
		selected = aggregate.EntriesByDay(entries, dayKey)
	} else {
		selected = aggregate.EntriesInMonth(entries, month.Year(), month.Month())
	}

	switch format {
	case "json":
		if selected == nil {
			selected = []model.Entry{}
		}
		return report.WriteJSON(w, selected)
	case "csv":
		return report.WriteCSV(w, selected)
	}

	var text string
	if dayKey != "" {
		text = report.DayDigest(entries, dayKey, settings.Language)
	} else {
		workingDays := timecalc.WorkingDaysInMonth(month, settings.IncludeWeekends)
		summary := earnings.Summarize(entries, month, settings, workingDays)
		text = report.MonthDigest(entries, month, summary, settings)
	}
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
