package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/report"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/storage"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip whether an entry has been copied to the external tracker",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a := openApp()
	defer a.close()

	target, err := a.lookupEntry(ctx, args[0])
	if err != nil {
		return err
	}
	flipped := !target.InTracker
	updated, err := a.entries.Update(ctx, target.ID, model.EntryPatch{InTracker: &flipped})
	if errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if err != nil {
		exitStorage(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s [%s]\n", report.TrackerPrefix(updated), updated.Title, shortID(updated.ID))
	return nil
}
