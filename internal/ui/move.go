package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfarrow/slotcal/internal/dateutil"
	"github.com/jfarrow/slotcal/internal/schedule"
)

func (a *App) moveCmd() *cobra.Command {
	var (
		to     string
		allDay string
		day    string
	)

	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move an event to another slot, day, or the all-day lane",
		Long: `Move an event on the calendar grid.

--to drops the event on a quarter-hour slot, preserving its duration
(an all-day event becomes a one-hour timed event). --all-day drops it
on a day's all-day lane. --day moves it to another date month-view
style: the date changes, the time-of-day stays.`,
		Example: `  slotcal move 42f1 --to=2025-01-16T10:15
  slotcal move 42f1 --all-day=2025-01-16
  slotcal move 42f1 --day=2025-02-03`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			set := 0
			for _, f := range []string{to, allDay, day} {
				if f != "" {
					set++
				}
			}
			if set != 1 {
				return fmt.Errorf("exactly one of --to, --all-day, --day is required")
			}

			ctx := context.Background()
			events, err := a.store.ListAll(ctx)
			if err != nil {
				return fmt.Errorf("loading events: %w", err)
			}
			board := schedule.Index(events)

			var result schedule.MoveResult
			if day != "" {
				date, err := dateutil.ParseDate(day)
				if err != nil {
					return err
				}
				month := schedule.NewMonthDrag(board, a.store)
				result = month.DragEnd(ctx, args[0], schedule.TimedKey(date).String())
			} else {
				var target schedule.CellKey
				if to != "" {
					dest, err := dateutil.ParseDateTime(to)
					if err != nil {
						return err
					}
					target = schedule.TimedKey(dest)
				} else {
					date, err := dateutil.ParseDate(allDay)
					if err != nil {
						return err
					}
					target = schedule.AllDayKey(date)
				}

				active, _, found := board.Find(args[0])
				if !found {
					return fmt.Errorf("event %s is not on the calendar", args[0])
				}

				engine := schedule.NewDragEngine(board, a.store)
				engine.SetGeometry(termGeometry{dayColumns: 7})
				engine.DragStart(active)
				result = engine.DragEnd(ctx, target.String())
			}

			if !result.Moved {
				fmt.Println("No change.")
				return nil
			}
			if result.PersistErr != nil {
				return fmt.Errorf("event moved locally but not saved: %w", result.PersistErr)
			}

			moved := result.Event
			if moved.AllDay {
				fmt.Printf("%s %s to all-day %s\n", formatOK("Moved"), moved.Title, moved.Start.Format("2006-01-02"))
			} else {
				fmt.Printf("%s %s to %s %s-%s\n",
					formatOK("Moved"), moved.Title,
					moved.Start.Format("2006-01-02"),
					moved.Start.Format("15:04"), moved.End.Format("15:04"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Destination slot (YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&allDay, "all-day", "", "Destination all-day date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&day, "day", "", "Destination date, keeping time-of-day (YYYY-MM-DD)")

	return cmd
}
