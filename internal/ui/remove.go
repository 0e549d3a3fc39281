package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			if err := a.store.Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("removing event: %w", err)
			}

			fmt.Printf("%s %s\n", formatOK("Removed"), args[0])
			return nil
		},
	}
}
