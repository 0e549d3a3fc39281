package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jfarrow/slotcal/internal/event"
	"github.com/jfarrow/slotcal/internal/ics"
	"github.com/jfarrow/slotcal/internal/log"
)

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file.ics]",
		Short: "Import events from an iCalendar file",
		Long: `Import all events from an .ics file into the calendar.

Events keep their iCalendar UID as ID; an event whose ID already exists
in the store is skipped rather than duplicated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			body, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			events, err := ics.Parse(body)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			imported, err := importEvents(context.Background(), a.store, events)
			if err != nil {
				return err
			}

			fmt.Printf("%s %d events from %s\n", formatOK("Imported"), imported, args[0])
			return nil
		},
	}
}

func importEvents(ctx context.Context, store event.Store, events []event.Event) (int, error) {
	imported := 0
	for _, ev := range events {
		if _, err := store.Get(ctx, ev.ID); err == nil {
			log.Debug("skipping already imported event", "id", ev.ID, "title", ev.Title)
			continue
		} else if err != event.ErrEventNotFound {
			return imported, fmt.Errorf("checking event %s: %w", ev.ID, err)
		}

		create := ev
		if err := store.Create(ctx, &create); err != nil {
			return imported, fmt.Errorf("importing event %q: %w", ev.Title, err)
		}
		imported++
	}
	return imported, nil
}

func (a *App) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all events as iCalendar",
		Example: `  slotcal export
  slotcal export --output=calendar.ics`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			events, err := a.store.ListAll(context.Background())
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			payload := ics.Export(events)
			if output == "" {
				fmt.Print(payload)
				return nil
			}

			if err := os.WriteFile(output, []byte(payload), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Printf("%s %d events to %s\n", formatOK("Exported"), len(events), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Write to a file instead of stdout")

	return cmd
}
