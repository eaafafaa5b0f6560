package event

import (
	"errors"
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2025, 1, 6, h, m, 0, 0, time.UTC)
}

func TestValidate(t *testing.T) {
	valid := Event{ID: "e1", Title: "Standup", Start: at(9, 0), End: at(9, 30), ResourceID: "r1"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(e *Event)
		wantErr error
	}{
		{"empty id", func(e *Event) { e.ID = "" }, ErrEmptyID},
		{"empty title", func(e *Event) { e.Title = "" }, ErrEmptyTitle},
		{"empty resource", func(e *Event) { e.ResourceID = "" }, ErrEmptyResource},
		{"end equals start", func(e *Event) { e.End = e.Start }, ErrEndBeforeStart},
		{"end before start", func(e *Event) { e.End = at(8, 0) }, ErrEndBeforeStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIntersects(t *testing.T) {
	e := Event{Start: at(9, 0), End: at(10, 0)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", at(8, 0), at(11, 0), true},
		{"touching end", at(10, 0), at(11, 0), false},
		{"touching start", at(8, 0), at(9, 0), false},
		{"partial", at(9, 30), at(12, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Intersects(tt.start, tt.end); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	a := Event{Start: at(9, 0), End: at(9, 30)}
	b := Event{Start: at(9, 15), End: at(9, 45)}
	c := Event{Start: at(9, 30), End: at(10, 0)}

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Error("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Error("back-to-back events should not overlap")
	}
}

func TestMerge(t *testing.T) {
	events := []Event{
		{ID: "e1", Title: "one"},
		{ID: "e2", Title: "two"},
	}
	merged := Merge(events, Event{ID: "e2", Title: "moved"})

	if merged[1].Title != "moved" {
		t.Errorf("expected e2 replaced, got %q", merged[1].Title)
	}
	if events[1].Title != "two" {
		t.Error("Merge must not mutate its input")
	}

	unchanged := Merge(events, Event{ID: "missing"})
	if len(unchanged) != 2 || unchanged[0].Title != "one" {
		t.Errorf("unexpected result for unknown id: %+v", unchanged)
	}
}

func TestIndexResources(t *testing.T) {
	idx, err := IndexResources([]Resource{{ID: "r1"}, {ID: "r2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := Event{ID: "e1", Title: "x", Start: at(9, 0), End: at(10, 0), ResourceID: "r3"}
	if err := idx.Check(e); !errors.Is(err, ErrUnknownResource) {
		t.Errorf("got %v, want ErrUnknownResource", err)
	}
	e.ResourceID = "r2"
	if err := idx.Check(e); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := IndexResources([]Resource{{ID: "r1"}, {ID: "r1"}}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("got %v, want ErrDuplicateID", err)
	}
}
