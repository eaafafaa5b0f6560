package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/resched/internal/dateutil"
	"github.com/javiermolinar/resched/internal/demo"
	"github.com/javiermolinar/resched/internal/event"
)

func (a *App) seedCmd() *cobra.Command {
	var (
		from string
		days int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store demo events",
		Long: `Write the demo events of a range of UTC days into the store.

The demo meetings use the resources r1, r2 and r3, which the default
configuration defines.`,
		Example: `  resched seed
  resched seed --from 2026-03-02 --days 14`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			start := dateutil.StartOfDayIn(a.now(), time.UTC)
			if from != "" {
				var err error
				start, err = dateutil.ParseDate(from, time.UTC)
				if err != nil {
					return err
				}
			}
			end := start.AddDate(0, 0, days)

			out := cmd.OutOrStdout()
			idx, err := event.IndexResources(a.config.EventResources())
			if err != nil {
				return err
			}
			for _, r := range demo.Resources() {
				if _, ok := idx[r.ID]; !ok {
					fmt.Fprintf(out, "%s resource %s (%s) is not configured; its events stay hidden\n", formatWarn("warning:"), r.ID, r.Title)
				}
			}

			generated := demo.Generate(start, end)
			batch := make([]*event.Event, len(generated))
			for i := range generated {
				generated[i].ID = seedID(generated[i])
				batch[i] = &generated[i]
			}
			if err := a.repo.CreateEvents(context.Background(), batch); err != nil {
				if errors.Is(err, event.ErrDuplicateID) {
					return fmt.Errorf("range already holds demo events: %w", err)
				}
				return fmt.Errorf("seeding events: %w", err)
			}

			fmt.Fprintf(out, "Seeded %d demo events from %s to %s\n",
				len(batch), start.Format("2006-01-02"), end.AddDate(0, 0, -1).Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First UTC day (YYYY-MM-DD, default: today)")
	cmd.Flags().IntVar(&days, "days", 7, "Number of days")

	return cmd
}

// seedID identifies a demo meeting by its start; no two demo meetings of a
// day start together, so seeding a day twice is rejected.
func seedID(e event.Event) string {
	return "demo-" + e.Start.UTC().Format("20060102T1504")
}
