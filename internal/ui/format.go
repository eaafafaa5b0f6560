package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/resched/internal/dateutil"
	"github.com/javiermolinar/resched/internal/debuglog"
	"github.com/javiermolinar/resched/internal/grid"
	"github.com/javiermolinar/resched/internal/scheduler"
	"github.com/javiermolinar/resched/internal/timezone"
)

// rangeFlags selects the visible range of the read-only commands.
type rangeFlags struct {
	date string
	days int
	axis string
	tz   string
}

func (f *rangeFlags) register(cmd *cobra.Command, withAxis bool) {
	cmd.Flags().StringVar(&f.date, "date", "", "Start date (YYYY-MM-DD, default: today)")
	cmd.Flags().IntVar(&f.days, "days", 0, "Number of days, 1-7 (default from config)")
	cmd.Flags().StringVar(&f.tz, "tz", "", `Timezone: "local", "UTC" or an IANA name (default from config)`)
	if withAxis {
		cmd.Flags().StringVar(&f.axis, "axis", "", "Primary axis: days or resources (default from config)")
	}
}

// loadScheduler builds an engine over the range selected by f and loads the
// events of that range.
func (a *App) loadScheduler(ctx context.Context, f rangeFlags) (*scheduler.Scheduler, error) {
	opts := a.config.SchedulerOptions(time.Time{})
	if f.days != 0 {
		opts.Days = f.days
	}
	if f.axis != "" {
		opts.PrimaryAxis = grid.ParseAxis(f.axis)
	}
	if f.tz != "" {
		opts.Timezone = f.tz
	}

	mode, err := timezone.ParseMode(opts.Timezone, time.Local)
	if err != nil {
		if f.tz != "" {
			return nil, fmt.Errorf("--tz: %w", err)
		}
		l := debuglog.L()
		l.Warn().Err(err).Msg("falling back to local time")
	}
	start := mode.StartOfDay(a.now())
	if f.date != "" {
		start, err = dateutil.ParseDate(f.date, mode.Location())
		if err != nil {
			return nil, err
		}
	}
	opts.StartDate = start

	s := scheduler.New(opts, scheduler.WithNow(a.now), scheduler.WithLogger(debuglog.L()))
	s.SetResources(a.config.EventResources())

	p, err := a.provider()
	if err != nil {
		return nil, err
	}
	vr := s.Range()
	events, err := p.EventsInRange(ctx, vr.Start, vr.End)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	s.SetEvents(events)
	s.Recompute()
	return s, nil
}

// FormatDuration formats a duration as "45m", "2h" or "1h30m".
func FormatDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// truncate shortens s to width runes, ending with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// resourceTitles maps resource ids to their titles.
func resourceTitles(s *scheduler.Scheduler) map[string]string {
	out := make(map[string]string, len(s.Resources()))
	for _, r := range s.Resources() {
		out[r.ID] = r.Title
	}
	return out
}
