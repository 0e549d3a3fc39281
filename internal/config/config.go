// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// CalendarConfig holds calendar display and scheduling settings.
type CalendarConfig struct {
	DayStart        string `toml:"day_start"`        // first rendered hour, e.g. "08:00"
	DayEnd          string `toml:"day_end"`          // last rendered hour, e.g. "20:00"
	DefaultCategory string `toml:"default_category"` // category for new events
	DefaultColor    string `toml:"default_color"`    // color tag for new events
	DefaultDuration int    `toml:"default_duration"` // minutes for new events without an end
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	Color bool `toml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			DayStart:        "08:00",
			DayEnd:          "20:00",
			DefaultCategory: "general",
			DefaultColor:    "blue",
			DefaultDuration: 60,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Color: true,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "slotcal.db"
	}
	return filepath.Join(home, ".local", "share", "slotcal", "slotcal.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "slotcal", "config.toml")
}

// Load loads configuration from SLOTCAL_CONFIG or the default path,
// merging with defaults and env vars.
func Load() (*Config, error) {
	if path := os.Getenv("SLOTCAL_CONFIG"); path != "" {
		return LoadFrom(path)
	}
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SLOTCAL_DAY_START"); v != "" {
		cfg.Calendar.DayStart = v
	}
	if v := os.Getenv("SLOTCAL_DAY_END"); v != "" {
		cfg.Calendar.DayEnd = v
	}
	if v := os.Getenv("SLOTCAL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("SLOTCAL_NO_COLOR"); v != "" {
		cfg.UI.Color = false
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Calendar.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Calendar.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Calendar.DayStart >= c.Calendar.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if c.Calendar.DefaultDuration <= 0 {
		return errors.New("default_duration must be positive")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path cannot be empty")
	}
	return nil
}

func validateTime(s, field string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("%s must be in HH:MM format", field)
	}
	return nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
