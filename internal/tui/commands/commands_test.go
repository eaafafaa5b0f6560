package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/resched/internal/event"
)

type fakeProvider struct {
	events func(ctx context.Context, start, end time.Time) ([]event.Event, error)
}

func (f fakeProvider) EventsInRange(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	return f.events(ctx, start, end)
}

func TestFetchEvents(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	t.Run("carries key and events", func(t *testing.T) {
		var gotStart, gotEnd time.Time
		p := fakeProvider{events: func(_ context.Context, s, e time.Time) ([]event.Event, error) {
			gotStart, gotEnd = s, e
			return []event.Event{{ID: "e1"}}, nil
		}}

		msg := FetchEvents(context.Background(), p, "k1", start, end)()
		loaded, ok := msg.(EventsLoadedMsg)
		if !ok {
			t.Fatalf("msg = %T, want EventsLoadedMsg", msg)
		}
		if loaded.Key != "k1" {
			t.Fatalf("Key = %q, want k1", loaded.Key)
		}
		if len(loaded.Events) != 1 || loaded.Events[0].ID != "e1" {
			t.Fatalf("Events = %+v, want [e1]", loaded.Events)
		}
		if !gotStart.Equal(start) || !gotEnd.Equal(end) {
			t.Fatalf("provider range = [%v, %v), want [%v, %v)", gotStart, gotEnd, start, end)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		p := fakeProvider{events: func(ctx context.Context, _, _ time.Time) ([]event.Event, error) {
			return nil, ctx.Err()
		}}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		loaded := FetchEvents(ctx, p, "k2", start, end)().(EventsLoadedMsg)
		if !errors.Is(loaded.Err, context.Canceled) {
			t.Fatalf("Err = %v, want context.Canceled", loaded.Err)
		}
		if loaded.Key != "k2" {
			t.Fatalf("Key = %q, want k2", loaded.Key)
		}
	})

	t.Run("nil provider", func(t *testing.T) {
		loaded := FetchEvents(context.Background(), nil, "k3", start, end)().(EventsLoadedMsg)
		if loaded.Err != nil || len(loaded.Events) != 0 {
			t.Fatalf("loaded = %+v, want empty result", loaded)
		}
	})
}

func TestWaitForChange(t *testing.T) {
	if cmd := WaitForChange(nil); cmd != nil {
		t.Fatal("WaitForChange(nil) should return nil")
	}

	ch := make(chan string, 1)
	ch <- "/tmp/config.toml"
	msg := WaitForChange(ch)()
	changed, ok := msg.(FileChangedMsg)
	if !ok || changed.Path != "/tmp/config.toml" {
		t.Fatalf("msg = %#v, want FileChangedMsg{/tmp/config.toml}", msg)
	}

	close(ch)
	if msg := WaitForChange(ch)(); msg != nil {
		t.Fatalf("msg after close = %#v, want nil", msg)
	}
}
