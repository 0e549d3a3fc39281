package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jfarrow/slotcal/internal/dateutil"
	"github.com/jfarrow/slotcal/internal/schedule"
)

// colorTags maps event color tags to lipgloss colors. Unknown tags fall
// back to the zero entry.
var colorTags = map[string]lipgloss.Color{
	"":       lipgloss.Color("12"),
	"blue":   lipgloss.Color("12"),
	"green":  lipgloss.Color("10"),
	"red":    lipgloss.Color("9"),
	"yellow": lipgloss.Color("11"),
	"purple": lipgloss.Color("13"),
	"cyan":   lipgloss.Color("14"),
}

func (a *App) showCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one day as a packed grid",
		Long: `Show a day's events with overlap layout: events that share
time render as side-by-side lanes of equal width, mirroring how they
would pack in a graphical day view.`,
		Example: `  slotcal show
  slotcal show --date=2025-01-15`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			day, err := dateutil.ParseDate(date)
			if err != nil {
				return err
			}

			events, err := a.store.List(context.Background(), day, day)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			board := schedule.Index(events)
			fmt.Print(renderDay(board, day, termWidth()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to show (YYYY-MM-DD, defaults to today)")

	return cmd
}

// timeColWidth is the fixed left gutter holding "HH:MM-HH:MM ".
const timeColWidth = 13

// renderDay renders the all-day lane and the timed events of one day.
// Each timed event draws as a bar whose indent and length follow the
// layout engine's left/width percentages, so overlapping events appear
// as side-by-side lanes.
func renderDay(board *schedule.Board, day time.Time, width int) string {
	var b strings.Builder
	b.WriteString(formatHeader("=== "+day.Format("2006-01-02")+" ===") + "\n")

	for _, ev := range board.AllDayEvents(day) {
		b.WriteString("  " + formatAllDay("all-day") + " " + ev.Title + "\n")
	}

	events := board.DayEvents(day)
	if len(events) == 0 {
		b.WriteString("  no timed events\n")
		return b.String()
	}

	layout := schedule.Layout(events)
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return layout[events[i].ID].Left < layout[events[j].ID].Left
	})

	laneWidth := width - timeColWidth
	if laneWidth < 20 {
		laneWidth = 20
	}

	for _, ev := range events {
		entry := layout[ev.ID]
		b.WriteString(renderEventBar(ev, entry, laneWidth))
	}
	return b.String()
}

// renderEventBar draws one event line: the time range, an indent
// proportional to the lane's left offset, and a colored bar filling the
// lane's width with the title inside.
func renderEventBar(ev schedule.ScheduledEvent, entry schedule.LayoutEntry, laneWidth int) string {
	indent := int(entry.Left / 100 * float64(laneWidth))
	barWidth := int(entry.Width / 100 * float64(laneWidth))
	if barWidth < 3 {
		barWidth = 3
	}

	bg, ok := colorTags[ev.Color]
	if !ok {
		bg = colorTags[""]
	}
	bar := lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.Color("0")).
		Width(barWidth).
		MaxWidth(barWidth).
		Render(" " + ev.Title)

	times := ev.Start.Format("15:04") + "-" + ev.End.Format("15:04") + " "
	return times + strings.Repeat(" ", indent) + bar + "\n"
}
