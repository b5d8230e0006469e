package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/report"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

// maxEntryHours bounds a single entry, matching a calendar day.
const maxEntryHours = 24

var (
	addDate      string
	addHours     int
	addMinutes   int
	addLink      string
	addInTracker bool
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Log time spent on a task",
	Long: `Log hours and minutes against a day (today by default).
Minutes above 59 are carried into hours, e.g. --minutes 90 becomes 1 h 30 min.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "Day to log against (YYYY-MM-DD, default today)")
	addCmd.Flags().IntVar(&addHours, "hours", 0, "Whole hours")
	addCmd.Flags().IntVar(&addMinutes, "minutes", 0, "Minutes")
	addCmd.Flags().StringVar(&addLink, "link", "", "Optional link, e.g. a ticket URL")
	addCmd.Flags().BoolVar(&addInTracker, "in-tracker", false, "Mark the entry as already copied to the external tracker")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, err := entryTitle(strings.Join(args, " "))
	if err != nil {
		return err
	}
	dayKey, err := resolveDay(addDate)
	if err != nil {
		return err
	}
	hours, minutes, err := entryDuration(addHours, addMinutes)
	if err != nil {
		return err
	}

	entry := model.Entry{
		ID:        timecalc.GenerateID(),
		DayKey:    dayKey,
		CreatedAt: now(),
		Title:     title,
		Hours:     hours,
		Minutes:   minutes,
		InTracker: addInTracker,
	}
	if link := strings.TrimSpace(addLink); link != "" {
		entry.Link = &link
	}

	ctx := context.Background()
	a := openApp()
	defer a.close()
	if err := a.entries.Add(ctx, entry); err != nil {
		exitStorage(err)
	}
	lang := a.loadSettings(ctx).Language

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s [%s]\n",
		entry.DayKey, report.EntryDuration(entry, lang), entry.Title, shortID(entry.ID))
	return nil
}

// entryTitle trims s and rejects an empty title.
func entryTitle(s string) (string, error) {
	title := strings.TrimSpace(s)
	if title == "" {
		return "", fmt.Errorf("title cannot be empty")
	}
	return title, nil
}

// entryDuration validates hours and minutes and carries minute overflow into hours.
func entryDuration(hours, minutes int) (int, int, error) {
	if hours < 0 || minutes < 0 {
		return 0, 0, fmt.Errorf("hours and minutes cannot be negative")
	}
	hours, minutes = timecalc.NormalizeDuration(hours, minutes)
	if hours > maxEntryHours || (hours == maxEntryHours && minutes > 0) {
		return 0, 0, fmt.Errorf("an entry cannot exceed %d hours", maxEntryHours)
	}
	return hours, minutes, nil
}
