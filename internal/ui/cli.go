// Package ui implements the resched command line.
package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/resched/internal/config"
	"github.com/javiermolinar/resched/internal/db"
	"github.com/javiermolinar/resched/internal/demo"
	"github.com/javiermolinar/resched/internal/event"
	"github.com/javiermolinar/resched/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config     *config.Config
	configPath string
	repo       *db.SQLite
	root       *cobra.Command
	debug      bool // Enable debug logging
	now        func() time.Time
}

// NewApp creates a new CLI application for cfg, loaded from configPath.
// The event store is opened lazily by the commands that need it.
func NewApp(cfg *config.Config, configPath string) *App {
	a := &App{config: cfg, configPath: configPath, now: time.Now}

	a.root = &cobra.Command{
		Use:   "resched",
		Short: "A resource scheduler for the terminal",
		Long: `Resched lays out events on a day x resource grid.

Events of each (day, resource) cell are clipped to the visible day window
and placed side by side when they overlap. The TUI navigates ranges of one
to seven days and reloads events whenever the visible range changes.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.config, a.configPath, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.seedCmd())
	a.root.AddCommand(a.layoutCmd())
	a.root.AddCommand(a.listCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "resched %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the event store on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.Open(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening event store: %w", err)
	}
	a.repo = repo
	return nil
}

// provider returns the events source of the read-only commands: the demo
// generator in demo mode, the store otherwise.
func (a *App) provider() (event.Provider, error) {
	if a.config.UI.Demo {
		return &demo.Provider{}, nil
	}
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	return a.repo, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the event store if it was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
