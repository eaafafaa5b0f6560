package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/resched/internal/dateutil"
	"github.com/javiermolinar/resched/internal/event"
	"github.com/javiermolinar/resched/internal/scheduler"
)

// freeSlotDays is how far ahead add loads events when looking for a slot.
const freeSlotDays = 29

func (a *App) addCmd() *cobra.Command {
	var (
		id       string
		resource string
		title    string
		start    string
		end      string
		duration time.Duration
		rrule    string
		color    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event to a resource",
		Long: `Add an event to the store.

Without --start the event is placed in the first free slot of the resource
from now on, inside the configured day window.`,
		Example: `  resched add --resource r1 --title "Planning" --start "2026-03-04 09:00" --end "2026-03-04 10:00"
  resched add --resource r2 --title "Sync" --duration 45m
  resched add --resource r1 --title "Standup" --start 2026-03-02T09:00:00Z --duration 15m --rrule "FREQ=DAILY;BYDAY=MO,TU,WE,TH,FR"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			idx, err := event.IndexResources(a.config.EventResources())
			if err != nil {
				return err
			}
			if _, ok := idx[resource]; !ok {
				return fmt.Errorf("resource %q: %w", resource, event.ErrUnknownResource)
			}

			ctx := context.Background()
			s := scheduler.New(a.config.SchedulerOptions(time.Time{}), scheduler.WithNow(a.now))
			loc := s.Mode().Location()

			e := &event.Event{
				ID:         id,
				Title:      title,
				ResourceID: resource,
				RRule:      rrule,
				Color:      color,
			}
			if e.ID == "" {
				e.ID = uuid.NewString()
			}

			if start == "" {
				if err := a.loadWindow(ctx, s, a.now()); err != nil {
					return err
				}
				slot, ok := s.FreeSlot(resource, a.now(), duration)
				if !ok {
					return fmt.Errorf("no free %s slot for %s in the next %d days", FormatDuration(duration), resource, freeSlotDays-1)
				}
				e.Start, e.End = slot, slot.Add(duration)
			} else {
				e.Start, err = dateutil.ParseDateTime(start, loc)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
				e.End = e.Start.Add(duration)
				if end != "" {
					e.End, err = dateutil.ParseDateTime(end, loc)
					if err != nil {
						return fmt.Errorf("--end: %w", err)
					}
				}
				if err := a.loadWindow(ctx, s, e.Start); err != nil {
					return err
				}
			}

			if e.IsRecurring() {
				// The rule repeats in the display zone's wall clock.
				e.Start, e.End = e.Start.In(loc), e.End.In(loc)
			}

			if err := idx.Check(*e); err != nil {
				return err
			}
			fits := s.CanFit(resource, e.Start, e.End.Sub(e.Start))

			if err := a.repo.CreateEvent(ctx, e); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created event %s: %s [%s] %s %s-%s\n",
				e.ID,
				e.Title,
				e.ResourceID,
				s.Mode().ToDisplay(e.Start).Format("2006-01-02"),
				s.FormatTime(e.Start),
				s.FormatTime(e.End),
			)
			if !fits {
				fmt.Fprintln(out, formatWarn("Note: the event overlaps another event or leaves the day window"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Event id (default: random UUID)")
	cmd.Flags().StringVar(&resource, "resource", "", "Resource id (required)")
	cmd.Flags().StringVar(&title, "title", "", "Event title (required)")
	cmd.Flags().StringVar(&start, "start", "", `Start: RFC 3339 or "YYYY-MM-DD HH:MM" (default: first free slot)`)
	cmd.Flags().StringVar(&end, "end", "", "End, same formats as --start (default: start + duration)")
	cmd.Flags().DurationVar(&duration, "duration", 30*time.Minute, "Length when --end is not given")
	cmd.Flags().StringVar(&rrule, "rrule", "", "Recurrence rule, e.g. FREQ=WEEKLY;BYDAY=MO")
	cmd.Flags().StringVar(&color, "color", "", "Event color (#rrggbb)")

	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// loadWindow loads the stored events from the day of from onward into s.
func (a *App) loadWindow(ctx context.Context, s *scheduler.Scheduler, from time.Time) error {
	day := s.Mode().StartOfDay(from)
	events, err := a.repo.EventsInRange(ctx, day, dateutil.AddDays(day, freeSlotDays))
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	s.SetEvents(events)
	return nil
}
