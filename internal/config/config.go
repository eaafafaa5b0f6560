// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/resched/internal/dateutil"
	"github.com/javiermolinar/resched/internal/demo"
	"github.com/javiermolinar/resched/internal/event"
	"github.com/javiermolinar/resched/internal/grid"
	"github.com/javiermolinar/resched/internal/scheduler"
)

// Config holds the application configuration.
type Config struct {
	Scheduler SchedulerConfig  `toml:"scheduler"`
	Resources []ResourceConfig `toml:"resources"`
	Storage   StorageConfig    `toml:"storage"`
	UI        UIConfig         `toml:"ui"`
}

// SchedulerConfig holds the grid engine settings.
type SchedulerConfig struct {
	Days          int    `toml:"days"`            // 1..7
	PrimaryAxis   string `toml:"primary_axis"`    // "days" or "resources"
	DayStart      string `toml:"day_start"`       // e.g., "08:00"
	DayEnd        string `toml:"day_end"`         // e.g., "20:00"
	SlotDuration  string `toml:"slot_duration"`   // e.g., "00:30"
	Timezone      string `toml:"timezone"`        // "local", "UTC" or an IANA id
	SnapToSlot    bool   `toml:"snap_to_slot"`    //
	Readonly      bool   `toml:"readonly"`        //
	ShowSlotLines bool   `toml:"show_slot_lines"` //
	SlotLineStyle string `toml:"slot_line_style"` // "slot", "hour" or "both"
}

// ResourceConfig is one resource row/column.
type ResourceConfig struct {
	ID        string   `toml:"id"`
	Title     string   `toml:"title"`
	ClassName []string `toml:"class_name,omitempty"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
	// Demo shows generated events instead of the store.
	Demo bool `toml:"demo"`
}

// Themes lists the built-in theme names.
var Themes = []string{"mocha", "macchiato", "frappe", "latte"}

// Default returns the default configuration.
func Default() *Config {
	cfg := &Config{
		Scheduler: SchedulerConfig{
			Days:          grid.DefaultDays,
			PrimaryAxis:   string(grid.AxisDays),
			DayStart:      scheduler.DefaultDayStart,
			DayEnd:        scheduler.DefaultDayEnd,
			SlotDuration:  scheduler.DefaultSlotDuration,
			Timezone:      "local",
			SnapToSlot:    true,
			ShowSlotLines: true,
			SlotLineStyle: string(scheduler.SlotLinesSlot),
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
	for _, r := range demo.Resources() {
		cfg.Resources = append(cfg.Resources, ResourceConfig{ID: r.ID, Title: r.Title})
	}
	return cfg
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "resched.db"
	}
	return filepath.Join(home, ".local", "share", "resched", "resched.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "resched", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	cfg.Normalize()
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
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	// A file with its own resource list replaces the defaults.
	var probe struct {
		Resources []ResourceConfig `toml:"resources"`
	}
	if err := toml.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if len(probe.Resources) > 0 {
		cfg.Resources = nil
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RESCHED_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scheduler.Days = n
		}
	}
	if v := os.Getenv("RESCHED_PRIMARY_AXIS"); v != "" {
		cfg.Scheduler.PrimaryAxis = v
	}
	if v := os.Getenv("RESCHED_DAY_START"); v != "" {
		cfg.Scheduler.DayStart = v
	}
	if v := os.Getenv("RESCHED_DAY_END"); v != "" {
		cfg.Scheduler.DayEnd = v
	}
	if v := os.Getenv("RESCHED_SLOT_DURATION"); v != "" {
		cfg.Scheduler.SlotDuration = v
	}
	if v := os.Getenv("RESCHED_TIMEZONE"); v != "" {
		cfg.Scheduler.Timezone = v
	}

	if v := os.Getenv("RESCHED_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("RESCHED_UI_THEME"); v != "" {
		cfg.UI.Theme = v
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

// Normalize silently replaces unusable scheduler and UI values with defaults.
// Configuration never fails on these; the engine applies the same rules.
func (c *Config) Normalize() {
	s := &c.Scheduler
	if s.Days == 0 {
		s.Days = grid.DefaultDays
	}
	s.Days = grid.ClampDays(s.Days)
	s.PrimaryAxis = string(grid.ParseAxis(s.PrimaryAxis))

	start := dateutil.ParseHM(s.DayStart, -1)
	if start < 0 {
		s.DayStart = scheduler.DefaultDayStart
		start = dateutil.ParseHM(s.DayStart, 0)
	}
	end := dateutil.ParseHM(s.DayEnd, -1)
	if end < 0 {
		s.DayEnd = scheduler.DefaultDayEnd
		end = dateutil.ParseHM(s.DayEnd, 0)
	}
	if end <= start {
		s.DayEnd = dateutil.FormatHM(min(dateutil.MinutesPerDay, start+600))
	}
	if dateutil.ParseHM(s.SlotDuration, 0) <= 0 {
		s.SlotDuration = scheduler.DefaultSlotDuration
	}
	if strings.TrimSpace(s.Timezone) == "" {
		s.Timezone = "local"
	}
	switch scheduler.SlotLineStyle(s.SlotLineStyle) {
	case scheduler.SlotLinesSlot, scheduler.SlotLinesHour, scheduler.SlotLinesBoth:
	default:
		s.SlotLineStyle = string(scheduler.SlotLinesSlot)
	}

	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	if !isTheme(c.UI.Theme) {
		c.UI.Theme = "mocha"
	}
}

func isTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Resources) == 0 {
		return errors.New("at least one resource must be configured")
	}
	if _, err := event.IndexResources(c.EventResources()); err != nil {
		return fmt.Errorf("resources: %w", err)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// EventResources converts the configured resources in order.
func (c *Config) EventResources() []event.Resource {
	out := make([]event.Resource, len(c.Resources))
	for i, r := range c.Resources {
		out[i] = event.Resource{ID: r.ID, Title: r.Title, ClassName: r.ClassName}
		if out[i].Title == "" {
			out[i].Title = r.ID
		}
	}
	return out
}

// SchedulerOptions maps the configuration onto engine options.
// startDate may be zero for today.
func (c *Config) SchedulerOptions(startDate time.Time) scheduler.Options {
	opts := scheduler.DefaultOptions()
	opts.StartDate = startDate
	opts.Days = c.Scheduler.Days
	opts.PrimaryAxis = grid.ParseAxis(c.Scheduler.PrimaryAxis)
	opts.DayStart = c.Scheduler.DayStart
	opts.DayEnd = c.Scheduler.DayEnd
	opts.SlotDuration = c.Scheduler.SlotDuration
	opts.Timezone = c.Scheduler.Timezone
	opts.SnapToSlot = c.Scheduler.SnapToSlot
	opts.Readonly = c.Scheduler.Readonly
	opts.ShowSlotLines = c.Scheduler.ShowSlotLines
	opts.SlotLineStyle = scheduler.SlotLineStyle(c.Scheduler.SlotLineStyle)
	return opts
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
