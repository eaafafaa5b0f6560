package ui

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/resched/internal/dateutil"
	"github.com/javiermolinar/resched/internal/event"
)

func (a *App) listCmd() *cobra.Command {
	var (
		rf       rangeFlags
		resource string
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List the events of a range of days, grouped by day.

Recurring events are listed once per occurrence. If no date is specified,
lists the range starting today with the configured number of days.`,
		Example: `  resched list
  resched list --date 2026-03-02 --days 1
  resched list --resource r2 --tz UTC`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			s, err := a.loadScheduler(context.Background(), rf)
			if err != nil {
				return err
			}
			titles := resourceTitles(s)
			out := cmd.OutOrStdout()

			var listed int
			for _, day := range s.VisibleDays() {
				var events []event.Event
				for _, e := range event.FilterByRange(s.Events(), day, dateutil.AddDays(day, 1)) {
					if resource == "" || e.ResourceID == resource {
						events = append(events, e)
					}
				}
				if len(events) == 0 {
					continue
				}
				slices.SortStableFunc(events, func(x, y event.Event) int {
					return x.Start.Compare(y.Start)
				})

				if listed > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "=== %s ===\n", formatHeader(day.Format("Mon 2006-01-02")))
				for _, e := range events {
					who := titles[e.ResourceID]
					if who == "" {
						who = e.ResourceID
					}
					fmt.Fprintf(out, "  %s  %-14s %s %s\n",
						formatTime(s.FormatTime(e.Start)+"-"+s.FormatTime(e.End)),
						truncate(who, 14),
						e.Title,
						formatMuted(FormatDuration(e.Duration())),
					)
				}
				listed += len(events)
			}

			if listed == 0 {
				fmt.Fprintln(out, "No events found in the specified date range.")
			}
			return nil
		},
	}

	rf.register(cmd, false)
	cmd.Flags().StringVar(&resource, "resource", "", "Only list events of this resource")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}
