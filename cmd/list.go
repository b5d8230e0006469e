package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/aggregate"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/i18n"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/report"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

var (
	listDate  string
	listMonth string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries of a day or a month",
	Long:  "List entries of a day (today by default) or, with --month, of a whole month.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "Day to list (YYYY-MM-DD, default today)")
	listCmd.Flags().StringVar(&listMonth, "month", "", "Month to list (YYYY-MM)")
}

func runList(cmd *cobra.Command, args []string) error {
	if listDate != "" && listMonth != "" {
		return fmt.Errorf("--date and --month are mutually exclusive")
	}

	var selected func([]model.Entry) []model.Entry
	if listMonth != "" {
		month, err := resolveMonth(listMonth)
		if err != nil {
			return err
		}
		selected = func(all []model.Entry) []model.Entry {
			return aggregate.EntriesInMonth(all, month.Year(), month.Month())
		}
	} else {
		dayKey, err := resolveDay(listDate)
		if err != nil {
			return err
		}
		selected = func(all []model.Entry) []model.Entry {
			return aggregate.EntriesByDay(all, dayKey)
		}
	}

	ctx := context.Background()
	a := openApp()
	defer a.close()
	settings := a.loadSettings(ctx)

	printList(cmd.OutOrStdout(), selected(a.listEntries(ctx)), settings)
	return nil
}

// printList groups entries by day and prints them with their short ids.
func printList(w io.Writer, entries []model.Entry, settings model.Settings) {
	lang := settings.Language
	if len(entries) == 0 {
		fmt.Fprintln(w, i18n.T(lang, i18n.NoEntries))
		return
	}

	hl, ml := i18n.T(lang, i18n.Hours), i18n.T(lang, i18n.Minutes)
	for i, g := range aggregate.GroupByDay(entries) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		total := aggregate.TotalHours(g.Entries)
		header := i18n.LongDayLabel(lang, timecalc.ParseDayKey(g.DayKey))
		tip := earningsTooltip(total, settings, hl, ml)
		fmt.Fprintf(w, "%s  %s  (%s)\n", g.DayKey, header, tip)

		for _, e := range g.Entries {
			line := fmt.Sprintf("  %-8s  %s  %s  %s", shortID(e.ID), report.TrackerPrefix(e), report.EntryDuration(e, lang), e.Title)
			if e.Link != nil {
				line += "  " + *e.Link
			}
			fmt.Fprintln(w, strings.TrimRight(line, " "))
		}
	}
}
