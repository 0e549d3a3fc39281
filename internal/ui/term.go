package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/jfarrow/slotcal/internal/schedule"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// All-day lane: yellow so it stands apart from the timed grid
	colorAllDay = color.New(color.FgYellow)

	// Muted: for secondary information (IDs, timestamps)
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Success messages
	colorOK = color.New(color.FgGreen)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatAllDay formats all-day lane text.
func formatAllDay(s string) string {
	return colorAllDay.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatOK formats a success message.
func formatOK(s string) string {
	return colorOK.Sprint(s)
}

// termGeometry is the CLI's geometry provider: drop cells are one
// character row tall and one day column wide.
type termGeometry struct {
	dayColumns int
}

// CellSize reports the character dimensions of a drop cell.
func (g termGeometry) CellSize(key string) (width, height int) {
	cols := g.dayColumns
	if cols <= 0 {
		cols = 7
	}
	if _, ok := schedule.ParseCellKey(key); !ok {
		return 0, 0
	}
	return termWidth() / cols, 1
}
