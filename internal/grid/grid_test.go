package grid

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/resched/internal/event"
	"github.com/javiermolinar/resched/internal/timezone"
)

var testResources = []event.Resource{
	{ID: "r2", Title: "Vanessa Soares"},
	{ID: "r1", Title: "Joana Pratas"},
	{ID: "r3", Title: "Rui Teixeira"},
}

func TestClampDays(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-3, 1},
		{9, 7},
		{1, 1},
		{5, 5},
		{7, 7},
	}
	for _, tt := range tests {
		if got := ClampDays(tt.in); got != tt.want {
			t.Errorf("ClampDays(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBuildRange(t *testing.T) {
	mode := timezone.UTC()
	start := time.Date(2025, 1, 6, 15, 45, 0, 0, time.UTC)

	t.Run("visible days follow clamped count", func(t *testing.T) {
		for _, tt := range []struct{ requested, want int }{{0, 1}, {-3, 1}, {9, 7}, {5, 5}} {
			r, days := BuildRange(start, tt.requested, AxisDays, mode)
			if len(days) != tt.want || r.Days != tt.want {
				t.Errorf("requested %d: got %d days (range %d), want %d", tt.requested, len(days), r.Days, tt.want)
			}
		}
	})

	t.Run("consecutive days from start of day", func(t *testing.T) {
		r, days := BuildRange(start, 3, AxisDays, mode)
		want := []string{"2025-01-06", "2025-01-07", "2025-01-08"}
		for i, d := range days {
			if d.Format("2006-01-02") != want[i] || d.Hour() != 0 || d.Minute() != 0 {
				t.Errorf("day %d = %v, want midnight of %s", i, d, want[i])
			}
		}
		if !r.Start.Equal(days[0]) {
			t.Errorf("range start %v, want %v", r.Start, days[0])
		}
		if !r.End.Equal(time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("range end %v", r.End)
		}
		if r.View != ViewCustomRange {
			t.Errorf("view = %s", r.View)
		}
	})

	t.Run("start of day uses the display calendar", func(t *testing.T) {
		east := timezone.Local(time.FixedZone("east", 9*3600))
		// 20:00 UTC on the 6th is already the 7th at UTC+9.
		r, _ := BuildRange(time.Date(2025, 1, 6, 20, 0, 0, 0, time.UTC), 1, AxisDays, east)
		if r.Start.Format("2006-01-02") != "2025-01-07" {
			t.Errorf("got start %v", r.Start)
		}
	})
}

func TestVisibleRangeKey(t *testing.T) {
	mode := timezone.UTC()
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	a, _ := BuildRange(start, 5, AxisDays, mode)
	b, _ := BuildRange(start.Add(3*time.Hour), 5, AxisDays, mode)
	if a.Key() != b.Key() {
		t.Errorf("same day should yield same key: %s vs %s", a.Key(), b.Key())
	}

	c, _ := BuildRange(start, 5, AxisResources, mode)
	d, _ := BuildRange(start, 4, AxisDays, mode)
	if a.Key() == c.Key() || a.Key() == d.Key() {
		t.Error("axis and day count must be part of the key")
	}
}

func TestBuildColumns(t *testing.T) {
	_, days := BuildRange(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 2, AxisDays, timezone.UTC())

	t.Run("days primary", func(t *testing.T) {
		primary, secondary := BuildColumns(days, testResources, AxisDays, nil)
		if len(primary) != 2 || len(secondary) != 3 {
			t.Fatalf("got %d/%d columns", len(primary), len(secondary))
		}
		if _, ok := primary[0].(DayColumn); !ok {
			t.Fatalf("expected day column, got %T", primary[0])
		}
		if primary[0].Key() != "2025-01-06" || primary[1].Key() != "2025-01-07" {
			t.Errorf("unexpected day keys %s, %s", primary[0].Key(), primary[1].Key())
		}
		if primary[0].Title() != "Mon, Jan 6" {
			t.Errorf("unexpected title %q", primary[0].Title())
		}
		// Resource order is insertion order, not sorted.
		for i, want := range []string{"r2", "r1", "r3"} {
			if secondary[i].Key() != want {
				t.Errorf("secondary[%d] = %s, want %s", i, secondary[i].Key(), want)
			}
		}
	})

	t.Run("resources primary", func(t *testing.T) {
		primary, secondary := BuildColumns(days, testResources, AxisResources, func(d time.Time) string {
			return d.Format("02/01")
		})
		if _, ok := primary[0].(ResourceColumn); !ok {
			t.Fatalf("expected resource column, got %T", primary[0])
		}
		if primary[0].Title() != "Vanessa Soares" {
			t.Errorf("unexpected resource title %q", primary[0].Title())
		}
		if secondary[1].Title() != "07/01" {
			t.Errorf("custom title not applied: %q", secondary[1].Title())
		}
	})

	t.Run("no resources", func(t *testing.T) {
		_, secondary := BuildColumns(days, nil, AxisDays, nil)
		if len(secondary) != 0 {
			t.Errorf("expected no secondary columns, got %d", len(secondary))
		}
	})
}

func TestResolveCell(t *testing.T) {
	day := DayColumn{Day: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)}
	res := ResourceColumn{Resource: event.Resource{ID: "r1"}}

	for _, pair := range [][2]Column{{day, res}, {res, day}} {
		cell, err := ResolveCell(pair[0], pair[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cell.ResourceID != "r1" || cell.DayKey() != "2025-01-06" {
			t.Errorf("unexpected cell %+v", cell)
		}
	}

	invalid := [][2]Column{{day, day}, {res, res}, {day, nil}}
	for _, pair := range invalid {
		if _, err := ResolveCell(pair[0], pair[1]); !errors.Is(err, ErrInvalidCell) {
			t.Errorf("got %v, want ErrInvalidCell", err)
		}
	}
}

func TestCellKeys(t *testing.T) {
	cell := Cell{Day: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), ResourceID: "r1"}

	p, s := cell.Keys(AxisDays)
	if p != "2025-01-06" || s != "r1" {
		t.Errorf("days axis keys = %s/%s", p, s)
	}
	p, s = cell.Keys(AxisResources)
	if p != "r1" || s != "2025-01-06" {
		t.Errorf("resources axis keys = %s/%s", p, s)
	}
}

func TestParseAxis(t *testing.T) {
	if ParseAxis("Resources") != AxisResources {
		t.Error("expected resources")
	}
	if ParseAxis("columns") != AxisDays {
		t.Error("expected fallback to days")
	}
	if AxisDays.Toggle() != AxisResources || AxisResources.Toggle() != AxisDays {
		t.Error("toggle mismatch")
	}
}
