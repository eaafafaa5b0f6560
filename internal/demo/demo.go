// Package demo provides a deterministic events provider for trying the
// scheduler without a store.
package demo

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/javiermolinar/resched/internal/event"
)

// Resources returns the three demo resources.
func Resources() []event.Resource {
	return []event.Resource{
		{ID: "r1", Title: "Ana Ribeiro"},
		{ID: "r2", Title: "Ben Okafor"},
		{ID: "r3", Title: "Chloe Marsh"},
	}
}

// Provider generates a repeatable week of meetings for any range.
// With MaxLatency set it sleeps a random duration up to that value before
// answering, honouring ctx.
type Provider struct {
	MaxLatency time.Duration
}

var _ event.Provider = (*Provider)(nil)

// EventsInRange implements event.Provider.
func (p *Provider) EventsInRange(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.MaxLatency > 0 {
		wait := time.Duration(rand.Int64N(int64(p.MaxLatency)))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return Generate(start, end), nil
}

// Generate builds the demo events for every UTC day of [start, end) and
// returns those intersecting the range.
func Generate(start, end time.Time) []event.Event {
	base := utcDay(start)
	days := max(1, int(utcDay(end).Sub(base).Round(24*time.Hour)/(24*time.Hour)))

	ids := []string{"r1", "r2", "r3"}
	var (
		events []event.Event
		n      int
	)
	add := func(title string, day time.Time, sh, sm, eh, em int, resource string) {
		n++
		events = append(events, event.Event{
			ID:         fmt.Sprintf("e%d", n),
			Title:      title,
			Start:      at(day, sh, sm),
			End:        at(day, eh, em),
			ResourceID: resource,
		})
	}

	for i := range days {
		day := base.AddDate(0, 0, i)

		add("Standup", day, 9, 0, 9, 30, ids[i%3])
		add("Focus Block", day, 10, 0, 11, 30, ids[(i+1)%3])
		if i%2 == 0 {
			add("Review (overlap)", day, 10, 45, 12, 0, ids[(i+1)%3])
		}
		if i%3 == 0 {
			add("Late Support", day, 18, 0, 19, 0, ids[(i+2)%3])
		}
	}

	return event.FilterByRange(events, start, end)
}

func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func at(day time.Time, h, m int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, time.UTC)
}
