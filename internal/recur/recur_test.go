package recur

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/resched/internal/event"
)

func day(d, h, m int) time.Time {
	return time.Date(2024, 3, d, h, m, 0, 0, time.UTC)
}

func TestOccurrencesDaily(t *testing.T) {
	e := event.Event{
		ID: "standup", Title: "Standup", ResourceID: "r1",
		Start: day(1, 9, 0), End: day(1, 9, 15),
		RRule: "FREQ=DAILY;COUNT=10",
	}

	got, err := Occurrences(e, day(4, 0, 0), day(7, 0, 0), 0)
	if err != nil {
		t.Fatalf("Occurrences: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, occ := range got {
		want := day(4+i, 9, 0)
		if !occ.Start.Equal(want) || occ.Duration() != 15*time.Minute {
			t.Errorf("[%d] = %v..%v", i, occ.Start, occ.End)
		}
		if occ.IsRecurring() {
			t.Errorf("[%d] occurrence still carries a rule", i)
		}
	}
	if got[0].ID != "standup@2024-03-04T09:00:00Z" {
		t.Errorf("id = %q", got[0].ID)
	}
}

func TestOccurrencesStartingBeforeRange(t *testing.T) {
	e := event.Event{
		ID: "night", ResourceID: "r1",
		Start: day(1, 22, 0), End: day(2, 2, 0),
		RRule: "RRULE:FREQ=DAILY",
	}

	got, err := Occurrences(e, day(5, 0, 0), day(6, 0, 0), 0)
	if err != nil {
		t.Fatalf("Occurrences: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].Start.Equal(day(4, 22, 0)) || !got[1].Start.Equal(day(5, 22, 0)) {
		t.Errorf("starts = %v, %v", got[0].Start, got[1].Start)
	}
}

func TestOccurrencesLimit(t *testing.T) {
	e := event.Event{ID: "x", Start: day(1, 9, 0), End: day(1, 10, 0), RRule: "FREQ=HOURLY"}
	got, err := Occurrences(e, day(1, 0, 0), day(8, 0, 0), 5)
	if err != nil {
		t.Fatalf("Occurrences: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("len = %d, want 5", len(got))
	}
}

func TestOccurrencesNonRecurring(t *testing.T) {
	e := event.Event{ID: "once", Start: day(4, 9, 0), End: day(4, 10, 0)}

	got, _ := Occurrences(e, day(4, 0, 0), day(5, 0, 0), 0)
	if len(got) != 1 || got[0].ID != "once" {
		t.Errorf("inside range = %+v", got)
	}
	got, _ = Occurrences(e, day(5, 0, 0), day(6, 0, 0), 0)
	if len(got) != 0 {
		t.Errorf("outside range = %+v", got)
	}
}

func TestExpandReportsBrokenRules(t *testing.T) {
	events := []event.Event{
		{ID: "ok", Start: day(4, 9, 0), End: day(4, 10, 0)},
		{ID: "bad", Start: day(4, 9, 0), End: day(4, 10, 0), RRule: "FREQ=SOMETIMES"},
		{ID: "weekly", Start: day(1, 12, 0), End: day(1, 13, 0), RRule: "FREQ=WEEKLY"},
	}

	out, errs := Expand(events, day(4, 0, 0), day(11, 0, 0), 0)
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidRule) {
		t.Fatalf("errs = %v", errs)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if !out[1].Start.Equal(day(8, 12, 0)) {
		t.Errorf("weekly occurrence = %v", out[1].Start)
	}
}
