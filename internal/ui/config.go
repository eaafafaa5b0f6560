package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/resched/internal/config"
	"github.com/javiermolinar/resched/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var noEdit bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.
A running TUI picks up the saved file immediately.`,
		Example: `  resched config
  resched config --no-edit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), !noEdit)
		},
	}

	cmd.Flags().BoolVar(&noEdit, "no-edit", false, "Print the configuration without prompting")
	return cmd
}

func (a *App) runConfigInteractive(in io.Reader, out io.Writer, edit bool) error {
	configPath := a.configPath
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)
	if !edit {
		return nil
	}

	reader := bufio.NewReader(in)

	// Ask if user wants to edit
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	cfg.Scheduler.Days = promptInt(reader, out, "Days (1-7)", cfg.Scheduler.Days)
	cfg.Scheduler.PrimaryAxis = promptValue(reader, out, "Primary axis (days, resources)", cfg.Scheduler.PrimaryAxis)
	cfg.Scheduler.DayStart = promptValue(reader, out, "Day start", cfg.Scheduler.DayStart)
	cfg.Scheduler.DayEnd = promptValue(reader, out, "Day end", cfg.Scheduler.DayEnd)
	cfg.Scheduler.SlotDuration = promptValue(reader, out, "Slot duration (HH:MM)", cfg.Scheduler.SlotDuration)
	cfg.Scheduler.Timezone = promptValue(reader, out, "Timezone (local, UTC or IANA name)", cfg.Scheduler.Timezone)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	// Normalize and validate before saving
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[scheduler]")
	fmt.Fprintf(out, "  days             = %d\n", cfg.Scheduler.Days)
	fmt.Fprintf(out, "  primary_axis     = %s\n", cfg.Scheduler.PrimaryAxis)
	fmt.Fprintf(out, "  day_start        = %s\n", cfg.Scheduler.DayStart)
	fmt.Fprintf(out, "  day_end          = %s\n", cfg.Scheduler.DayEnd)
	fmt.Fprintf(out, "  slot_duration    = %s\n", cfg.Scheduler.SlotDuration)
	fmt.Fprintf(out, "  timezone         = %s\n", cfg.Scheduler.Timezone)
	fmt.Fprintf(out, "  snap_to_slot     = %t\n", cfg.Scheduler.SnapToSlot)
	fmt.Fprintf(out, "  readonly         = %t\n", cfg.Scheduler.Readonly)
	for _, r := range cfg.Resources {
		fmt.Fprintln(out, "\n[[resources]]")
		fmt.Fprintf(out, "  id               = %s\n", r.ID)
		fmt.Fprintf(out, "  title            = %s\n", r.Title)
	}
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "  demo             = %t\n", cfg.UI.Demo)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
