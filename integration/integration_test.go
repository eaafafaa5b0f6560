package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/resched/internal/db"
	"github.com/javiermolinar/resched/internal/event"
	"github.com/javiermolinar/resched/internal/grid"
	"github.com/javiermolinar/resched/internal/recur"
	"github.com/javiermolinar/resched/internal/scheduler"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func utcAt(day, h, m int) time.Time {
	return time.Date(2024, 3, day, h, m, 0, 0, time.UTC)
}

// createEvents inserts events in one batch or fails the test.
func createEvents(t *testing.T, repo *db.SQLite, events ...event.Event) {
	t.Helper()
	batch := make([]*event.Event, len(events))
	for i := range events {
		batch[i] = &events[i]
	}
	if err := repo.CreateEvents(context.Background(), batch); err != nil {
		t.Fatalf("failed to insert events: %v", err)
	}
}

var resources = []event.Resource{
	{ID: "r1", Title: "Room 1"},
	{ID: "r2", Title: "Room 2"},
}

// newEngine builds a UTC scheduler over three days from March 4 and loads
// its range from repo.
func newEngine(t *testing.T, repo *db.SQLite, tz string) (*scheduler.Scheduler, *[]scheduler.RangeChange) {
	t.Helper()
	opts := scheduler.DefaultOptions()
	opts.Timezone = tz
	opts.Days = 3
	opts.StartDate = utcAt(4, 0, 0)
	opts.Location = time.FixedZone("PLUS5", 5*3600)

	s := scheduler.New(opts)
	s.SetResources(resources)

	changes := &[]scheduler.RangeChange{}
	s.OnRangeChange(func(rc scheduler.RangeChange) {
		*changes = append(*changes, rc)
		events, err := repo.EventsInRange(context.Background(), rc.Start, rc.End)
		if err != nil {
			t.Errorf("EventsInRange: %v", err)
			return
		}
		s.SetEvents(events)
	})
	s.Recompute()
	// The first notification loaded the events; lay them out.
	s.Recompute()
	return s, changes
}

func byID(events []scheduler.PositionedEvent) map[string]scheduler.PositionedEvent {
	out := make(map[string]scheduler.PositionedEvent, len(events))
	for _, pe := range events {
		out[pe.ID] = pe
	}
	return out
}

func TestStoreToLayout(t *testing.T) {
	repo := openRepo(t)
	createEvents(t, repo,
		event.Event{ID: "a", Title: "A", ResourceID: "r1", Start: utcAt(4, 9, 0), End: utcAt(4, 10, 0)},
		event.Event{ID: "b", Title: "B", ResourceID: "r1", Start: utcAt(4, 9, 30), End: utcAt(4, 10, 30)},
		event.Event{ID: "c", Title: "C", ResourceID: "r1", Start: utcAt(4, 10, 30), End: utcAt(4, 11, 0)},
		event.Event{ID: "standup", Title: "Standup", ResourceID: "r2", Start: utcAt(4, 8, 30), End: utcAt(4, 8, 45), RRule: "FREQ=DAILY;COUNT=5"},
		event.Event{ID: "late", Title: "Late", ResourceID: "r2", Start: utcAt(5, 21, 0), End: utcAt(5, 22, 0)},
	)

	s, changes := newEngine(t, repo, "UTC")
	if len(*changes) != 1 {
		t.Fatalf("range changes = %d, want 1", len(*changes))
	}

	t.Run("overlapping events share the cell", func(t *testing.T) {
		got := byID(s.CellEvents(grid.Cell{Day: utcAt(4, 0, 0), ResourceID: "r1"}))
		if len(got) != 3 {
			t.Fatalf("r1 events = %d, want 3", len(got))
		}
		a, b, c := got["a"], got["b"], got["c"]
		if a.Column != 0 || a.Columns != 2 {
			t.Errorf("a: column %d/%d, want 0/2", a.Column, a.Columns)
		}
		if b.Column != 1 || b.Columns != 2 {
			t.Errorf("b: column %d/%d, want 1/2", b.Column, b.Columns)
		}
		if c.Columns != 1 {
			t.Errorf("c touches b and should start a new cluster, got %d columns", c.Columns)
		}
		if a.Box.Top != 120 || a.Box.Height != 120 {
			t.Errorf("a box top=%v height=%v, want 120/120", a.Box.Top, a.Box.Height)
		}
		if b.Box.LeftPercent != 50 || b.Box.WidthPercent != 50 {
			t.Errorf("b box left=%v width=%v, want 50/50", b.Box.LeftPercent, b.Box.WidthPercent)
		}
	})

	t.Run("recurring event expands per day", func(t *testing.T) {
		for day := 4; day <= 6; day++ {
			got := s.CellEvents(grid.Cell{Day: utcAt(day, 0, 0), ResourceID: "r2"})
			var found bool
			for _, pe := range got {
				if pe.ID == recur.OccurrenceID("standup", utcAt(day, 8, 30)) {
					found = true
				}
			}
			if !found {
				t.Errorf("March %d: standup occurrence missing from %v", day, got)
			}
		}
	})

	t.Run("events outside the day window are not laid out", func(t *testing.T) {
		for _, pe := range s.CellEvents(grid.Cell{Day: utcAt(5, 0, 0), ResourceID: "r2"}) {
			if pe.ID == "late" {
				t.Fatalf("event after day end laid out: %+v", pe.Box)
			}
		}
	})
}

func TestRangeChangeReloadsFromStore(t *testing.T) {
	repo := openRepo(t)
	createEvents(t, repo,
		event.Event{ID: "standup", Title: "Standup", ResourceID: "r2", Start: utcAt(4, 8, 30), End: utcAt(4, 8, 45), RRule: "FREQ=DAILY;COUNT=5"},
	)

	s, changes := newEngine(t, repo, "UTC")
	s.Next()

	if len(*changes) != 2 {
		t.Fatalf("range changes = %d, want 2", len(*changes))
	}
	if got := (*changes)[1].Start; !got.Equal(utcAt(7, 0, 0)) {
		t.Fatalf("second range starts %v, want March 7", got)
	}

	s.Recompute()
	if len(*changes) != 2 {
		t.Fatalf("Recompute of an unchanged range notified again: %d", len(*changes))
	}

	// COUNT=5 from March 4 ends on March 8.
	for day, want := range map[int]int{7: 1, 8: 1, 9: 0} {
		got := s.CellEvents(grid.Cell{Day: utcAt(day, 0, 0), ResourceID: "r2"})
		if len(got) != want {
			t.Errorf("March %d: %d events, want %d", day, len(got), want)
		}
	}
}

func TestStoreRejectsBadData(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	backwards := &event.Event{ID: "x", Title: "X", ResourceID: "r1", Start: utcAt(4, 10, 0), End: utcAt(4, 9, 0)}
	if err := repo.CreateEvent(ctx, backwards); !errors.Is(err, event.ErrEndBeforeStart) {
		t.Fatalf("CreateEvent(backwards) error = %v, want ErrEndBeforeStart", err)
	}

	ok := &event.Event{ID: "y", Title: "Y", ResourceID: "r1", Start: utcAt(4, 9, 0), End: utcAt(4, 10, 0)}
	if err := repo.CreateEvent(ctx, ok); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	dup := *ok
	if err := repo.CreateEvent(ctx, &dup); !errors.Is(err, event.ErrDuplicateID) {
		t.Fatalf("CreateEvent(duplicate) error = %v, want ErrDuplicateID", err)
	}
}
