package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfarrow/slotcal/internal/dateutil"
	"github.com/jfarrow/slotcal/internal/event"
)

func (a *App) addCmd() *cobra.Command {
	var (
		start       string
		end         string
		date        string
		allDay      bool
		description string
		category    string
		colorTag    string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new event",
		Long: `Add a new event to the calendar.

Timed events take --start (and optionally --end; the default duration
comes from the config). All-day events take --date instead.`,
		Example: `  slotcal add "Design review" --start=2025-01-15T10:00 --end=2025-01-15T11:30
  slotcal add "Standup" --start=2025-01-15T09:15
  slotcal add "Conference" --date=2025-03-02 --all-day`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			if category == "" {
				category = a.config.Calendar.DefaultCategory
			}
			if colorTag == "" {
				colorTag = a.config.Calendar.DefaultColor
			}

			var startAt, endAt time.Time
			var err error
			if allDay {
				if startAt, err = dateutil.ParseDate(date); err != nil {
					return err
				}
			} else {
				if start == "" {
					return fmt.Errorf("--start is required for timed events")
				}
				if startAt, err = dateutil.ParseDateTime(start); err != nil {
					return err
				}
				if end != "" {
					if endAt, err = dateutil.ParseDateTime(end); err != nil {
						return err
					}
				} else {
					endAt = startAt.Add(time.Duration(a.config.Calendar.DefaultDuration) * time.Minute)
				}
			}

			ev, err := event.New(args[0], description, category, colorTag, startAt, endAt, allDay)
			if err != nil {
				return err
			}

			if err := a.store.Create(context.Background(), ev); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			if ev.AllDay {
				fmt.Printf("%s %s on %s %s\n",
					formatOK("Created"), ev.Title, ev.Start.Format("2006-01-02"), formatMuted("("+ev.ID+")"))
			} else {
				fmt.Printf("%s %s %s %s-%s %s\n",
					formatOK("Created"), ev.Title,
					ev.Start.Format("2006-01-02"),
					ev.Start.Format("15:04"), ev.End.Format("15:04"),
					formatMuted("("+ev.ID+")"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start (YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End (YYYY-MM-DDTHH:MM, default start+duration)")
	cmd.Flags().StringVar(&date, "date", "", "Date for all-day events (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Create an all-day event")
	cmd.Flags().StringVar(&description, "description", "", "Event description")
	cmd.Flags().StringVar(&category, "category", "", "Category tag")
	cmd.Flags().StringVar(&colorTag, "color", "", "Color tag")

	return cmd
}
