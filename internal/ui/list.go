package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfarrow/slotcal/internal/dateutil"
	"github.com/jfarrow/slotcal/internal/event"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		week      bool
		month     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List all events within a date range, grouped by date.

With no flags, lists today's events. --week and --month expand the
range around the start date.`,
		Example: `  slotcal list
  slotcal list --start=2025-01-15 --end=2025-01-20
  slotcal list --start=2025-01-15 --week`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}
			if week {
				dateRange.Start, dateRange.End = dateutil.WeekRange(dateRange.Start)
			} else if month {
				dateRange.Start, dateRange.End = dateutil.MonthRange(dateRange.Start)
			}

			events, err := a.store.List(context.Background(), dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			if len(events) == 0 {
				fmt.Println("No events found in the specified date range.")
				return nil
			}

			printEventsByDate(events)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVar(&week, "week", false, "List the whole week containing the start date")
	cmd.Flags().BoolVar(&month, "month", false, "List the whole month containing the start date")

	return cmd
}

func printEventsByDate(events []event.Event) {
	var currentDate string
	for _, ev := range events {
		date := ev.Start.Format("2006-01-02")
		if date != currentDate {
			if currentDate != "" {
				fmt.Println()
			}
			fmt.Println(formatHeader("=== " + date + " ==="))
			currentDate = date
		}

		if ev.AllDay {
			fmt.Printf("  %s %s %s\n", formatAllDay("all-day"), ev.Title, formatMuted("("+ev.ID+")"))
			continue
		}
		fmt.Printf("  %s-%s %s %s\n",
			ev.Start.Format("15:04"),
			ev.End.Format("15:04"),
			ev.Title,
			formatMuted("("+ev.ID+")"),
		)
	}
}
