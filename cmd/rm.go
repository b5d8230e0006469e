package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/storage"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Delete an entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a := openApp()
	defer a.close()

	target, err := a.lookupEntry(ctx, args[0])
	if err != nil {
		return err
	}
	err = a.entries.Remove(ctx, target.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if err != nil {
		exitStorage(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s [%s]\n", target.DayKey, target.Title, shortID(target.ID))
	return nil
}
