package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/report"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/storage"
)

var (
	editDate      string
	editTitle     string
	editHours     int
	editMinutes   int
	editLink      string
	editInTracker bool
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of an entry",
	Long: `Change the given fields of an entry; omitted flags are left unchanged.
The id may be shortened to any unique prefix. Pass --link "" to remove a link.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editDate, "date", "", "Move the entry to another day (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().IntVar(&editHours, "hours", 0, "New whole hours")
	editCmd.Flags().IntVar(&editMinutes, "minutes", 0, "New minutes")
	editCmd.Flags().StringVar(&editLink, "link", "", "New link (empty removes it)")
	editCmd.Flags().BoolVar(&editInTracker, "in-tracker", false, "Set the in-tracker flag")
}

func runEdit(cmd *cobra.Command, args []string) error {
	patch, err := buildPatch(cmd.Flags())
	if err != nil {
		return err
	}

	ctx := context.Background()
	a := openApp()
	defer a.close()

	target, err := a.lookupEntry(ctx, args[0])
	if err != nil {
		return err
	}
	if err := checkPatchedDuration(target, patch); err != nil {
		return err
	}
	updated, err := a.entries.Update(ctx, target.ID, patch)
	if errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if err != nil {
		exitStorage(err)
	}
	lang := a.loadSettings(ctx).Language

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s %s [%s]\n",
		updated.DayKey, report.EntryDuration(updated, lang), updated.Title, shortID(updated.ID))
	return nil
}

// checkPatchedDuration rejects a patch that would push e over the entry limit
// once combined with the hours or minutes it leaves untouched.
func checkPatchedDuration(e model.Entry, patch model.EntryPatch) error {
	if patch.Hours == nil && patch.Minutes == nil {
		return nil
	}
	patched := patch.Apply(e)
	_, _, err := entryDuration(patched.Hours, patched.Minutes)
	return err
}

// buildPatch turns the explicitly set flags into a patch.
func buildPatch(flags *pflag.FlagSet) (model.EntryPatch, error) {
	var patch model.EntryPatch
	changed := false

	if flags.Changed("date") {
		key, err := resolveDay(editDate)
		if err != nil || strings.TrimSpace(editDate) == "" {
			return patch, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", editDate)
		}
		patch.DayKey = &key
		changed = true
	}
	if flags.Changed("title") {
		title, err := entryTitle(editTitle)
		if err != nil {
			return patch, err
		}
		patch.Title = &title
		changed = true
	}

	hoursSet, minutesSet := flags.Changed("hours"), flags.Changed("minutes")
	switch {
	case hoursSet && minutesSet:
		h, m, err := entryDuration(editHours, editMinutes)
		if err != nil {
			return patch, err
		}
		patch.Hours, patch.Minutes = &h, &m
		changed = true
	case hoursSet:
		if _, _, err := entryDuration(editHours, 0); err != nil {
			return patch, err
		}
		h := editHours
		patch.Hours = &h
		changed = true
	case minutesSet:
		// Without --hours an overflow cannot be carried.
		if editMinutes < 0 || editMinutes > 59 {
			return patch, fmt.Errorf("--minutes must be between 0 and 59 unless --hours is also given")
		}
		m := editMinutes
		patch.Minutes = &m
		changed = true
	}

	if flags.Changed("link") {
		link := strings.TrimSpace(editLink)
		patch.Link = &link
		changed = true
	}
	if flags.Changed("in-tracker") {
		v := editInTracker
		patch.InTracker = &v
		changed = true
	}

	if !changed {
		return patch, fmt.Errorf("nothing to change: pass at least one of --date, --title, --hours, --minutes, --link, --in-tracker")
	}
	return patch, nil
}
