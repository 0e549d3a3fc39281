package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Calendar.DayStart != "08:00" || cfg.Calendar.DayEnd != "20:00" {
		t.Errorf("default day window = %s-%s", cfg.Calendar.DayStart, cfg.Calendar.DayEnd)
	}
	if cfg.Calendar.DefaultDuration != 60 {
		t.Errorf("default duration = %d, want 60", cfg.Calendar.DefaultDuration)
	}
	if cfg.Storage.DBPath == "" {
		t.Error("default db path is empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Calendar.DayStart != Default().Calendar.DayStart {
		t.Error("missing file did not fall back to defaults")
	}
}

func TestLoadFromFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[calendar]
day_start = "07:00"
default_duration = 30

[storage]
db_path = "/tmp/cal.db"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Calendar.DayStart != "07:00" {
		t.Errorf("day_start = %s, want 07:00", cfg.Calendar.DayStart)
	}
	if cfg.Calendar.DefaultDuration != 30 {
		t.Errorf("default_duration = %d, want 30", cfg.Calendar.DefaultDuration)
	}
	// Unset fields keep their defaults.
	if cfg.Calendar.DayEnd != "20:00" {
		t.Errorf("day_end = %s, want default 20:00", cfg.Calendar.DayEnd)
	}
	if cfg.Storage.DBPath != "/tmp/cal.db" {
		t.Errorf("db_path = %s, want /tmp/cal.db", cfg.Storage.DBPath)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("SLOTCAL_DAY_START", "06:00")
	t.Setenv("SLOTCAL_DB_PATH", "/tmp/env.db")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Calendar.DayStart != "06:00" {
		t.Errorf("day_start = %s, want env override 06:00", cfg.Calendar.DayStart)
	}
	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("db_path = %s, want env override", cfg.Storage.DBPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "bad day_start", mutate: func(c *Config) { c.Calendar.DayStart = "8am" }},
		{name: "start after end", mutate: func(c *Config) { c.Calendar.DayStart = "21:00" }},
		{name: "zero duration", mutate: func(c *Config) { c.Calendar.DefaultDuration = 0 }},
		{name: "empty db path", mutate: func(c *Config) { c.Storage.DBPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Calendar.DefaultCategory = "personal"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Calendar.DefaultCategory != "personal" {
		t.Errorf("round trip lost default_category: %s", loaded.Calendar.DefaultCategory)
	}
}
