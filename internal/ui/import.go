package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/resched/internal/event"
	"github.com/javiermolinar/resched/internal/ics"
	"github.com/javiermolinar/resched/internal/timezone"
)

func (a *App) importCmd() *cobra.Command {
	var (
		resource string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import [file.ics]",
		Short: "Import events from an iCalendar file",
		Long: `Import the VEVENTs of an iCalendar file as events of one resource.

UID, SUMMARY, DTSTART, DTEND and RRULE are kept. All-day events span whole
days in the configured timezone. Events that cannot be converted are
reported and skipped; nothing is written if any id is already taken.`,
		Example: `  resched import ~/Downloads/team.ics --resource r2
  resched import team.ics --resource r2 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("calendar file does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking calendar file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("calendar path is a directory: %s", sourcePath)
			}

			f, err := os.Open(sourcePath)
			if err != nil {
				return fmt.Errorf("opening calendar file: %w", err)
			}
			defer func() { _ = f.Close() }()

			out := cmd.OutOrStdout()
			count, err := a.importEvents(context.Background(), f, resource, dryRun, out)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintf(out, "Would import %d events from %s\n", count, sourcePath)
				return nil
			}
			fmt.Fprintf(out, "Imported %d events from %s\n", count, sourcePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "", "Resource receiving the events (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the events without storing them")
	_ = cmd.MarkFlagRequired("resource")

	return cmd
}

func (a *App) importEvents(ctx context.Context, r io.Reader, resource string, dryRun bool, out io.Writer) (int, error) {
	idx, err := event.IndexResources(a.config.EventResources())
	if err != nil {
		return 0, err
	}
	if _, ok := idx[resource]; !ok {
		return 0, fmt.Errorf("resource %q: %w", resource, event.ErrUnknownResource)
	}

	mode, _ := timezone.ParseMode(a.config.Scheduler.Timezone, time.Local)
	events, skipped, err := ics.Import(r, resource, mode.Location())
	if errors.Is(err, ics.ErrNoEvents) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	for _, s := range skipped {
		fmt.Fprintf(out, "%s %s: %v\n", formatWarn("skipped"), s.UID, s.Reason)
	}

	batch := make([]*event.Event, 0, len(events))
	for i := range events {
		if dryRun {
			e := events[i]
			display := mode.ToDisplay(e.Start)
			fmt.Fprintf(out, "  %s %s  %s\n",
				display.Format("2006-01-02"),
				formatTime(display.Format("15:04")+"-"+mode.ToDisplay(e.End).Format("15:04")),
				e.Title,
			)
		}
		batch = append(batch, &events[i])
	}
	if dryRun {
		return len(batch), nil
	}

	if err := a.repo.CreateEvents(ctx, batch); err != nil {
		return 0, fmt.Errorf("importing events: %w", err)
	}
	return len(batch), nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
