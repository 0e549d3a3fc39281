package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jfarrow/slotcal/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show configuration, creating the file if missing",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()
			fmt.Printf("Config file: %s\n\n", path)

			cfg, err := config.LoadFrom(path)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Println("No config file found. Creating with default values...")
				if err := cfg.Save(path); err != nil {
					return fmt.Errorf("saving config: %w", err)
				}
			}

			printConfig(cfg)
			return nil
		},
	}
}

func printConfig(cfg *config.Config) {
	fmt.Println(formatHeader("[calendar]"))
	fmt.Printf("  day_start        = %s\n", cfg.Calendar.DayStart)
	fmt.Printf("  day_end          = %s\n", cfg.Calendar.DayEnd)
	fmt.Printf("  default_category = %s\n", cfg.Calendar.DefaultCategory)
	fmt.Printf("  default_color    = %s\n", cfg.Calendar.DefaultColor)
	fmt.Printf("  default_duration = %d\n", cfg.Calendar.DefaultDuration)
	fmt.Println(formatHeader("[storage]"))
	fmt.Printf("  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Println(formatHeader("[ui]"))
	fmt.Printf("  color            = %t\n", cfg.UI.Color)
}
