// Package ui provides the slotcal command-line interface.
package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jfarrow/slotcal/internal/config"
	"github.com/jfarrow/slotcal/internal/db"
	"github.com/jfarrow/slotcal/internal/event"
	"github.com/jfarrow/slotcal/internal/log"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  event.Store
	config *config.Config
	root   *cobra.Command
	quiet  bool
	debug  bool
}

// NewApp creates a new CLI application. The store may be nil; commands
// that need one open it lazily from the configured path.
func NewApp(store event.Store, cfg *config.Config) *App {
	a := &App{store: store, config: cfg}

	a.root = &cobra.Command{
		Use:   "slotcal",
		Short: "A slot-grid calendar for timed and all-day events",
		Long: `Slotcal keeps a calendar of timed and all-day events on a
quarter-hour grid.

Events live in a local SQLite database. The day view packs overlapping
events into side-by-side columns; the move command reschedules an event
while preserving its duration.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.quiet {
				log.SetOutput(io.Discard)
			} else if a.debug {
				log.SetLevel(log.LevelDebug)
			}
			if !a.config.UI.Color {
				DisableColor()
			}
		},
		SilenceUsage: true,
	}

	a.root.PersistentFlags().BoolVar(&a.quiet, "quiet", false, "Suppress log output")
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("slotcal %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureStore opens the configured database if no store was injected.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	store, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.store = store
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store, if one was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
