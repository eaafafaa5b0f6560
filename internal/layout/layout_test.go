package layout

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/javiermolinar/resched/internal/event"
)

var base = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func ev(id string, startMin, endMin int) event.Event {
	return event.Event{
		ID:         id,
		Title:      id,
		ResourceID: "r1",
		Start:      base.Add(time.Duration(startMin) * time.Minute),
		End:        base.Add(time.Duration(endMin) * time.Minute),
	}
}

func byID(ps []Positioned) map[string]Positioned {
	out := make(map[string]Positioned, len(ps))
	for _, p := range ps {
		out[p.ID] = p
	}
	return out
}

// peakConcurrency counts the maximum number of events active at one instant.
func peakConcurrency(events []event.Event) int {
	peak := 0
	for _, probe := range events {
		active := 0
		for _, e := range events {
			if !e.Start.After(probe.Start) && e.End.After(probe.Start) {
				active++
			}
		}
		peak = max(peak, active)
	}
	return peak
}

func TestLayout_Scenario(t *testing.T) {
	// A [09:00,09:30) B [09:15,09:45) C [10:00,10:30)
	events := []event.Event{
		ev("A", 540, 570),
		ev("B", 555, 585),
		ev("C", 600, 630),
	}

	got := byID(Layout(events))

	if got["A"].Column != 0 || got["A"].Columns != 2 {
		t.Errorf("A = col %d/%d, want 0/2", got["A"].Column, got["A"].Columns)
	}
	if got["B"].Column != 1 || got["B"].Columns != 2 {
		t.Errorf("B = col %d/%d, want 1/2", got["B"].Column, got["B"].Columns)
	}
	if got["C"].Column != 0 || got["C"].Columns != 1 {
		t.Errorf("C = col %d/%d, want 0/1", got["C"].Column, got["C"].Columns)
	}
}

func TestLayout_Disjoint(t *testing.T) {
	events := []event.Event{
		ev("a", 480, 510),
		ev("b", 510, 540), // touches a: not an overlap
		ev("c", 600, 660),
	}
	for _, p := range Layout(events) {
		if p.Column != 0 || p.Columns != 1 {
			t.Errorf("%s = col %d/%d, want 0/1", p.ID, p.Column, p.Columns)
		}
	}
}

func TestLayout_ReusesFreedColumn(t *testing.T) {
	// long spans everything; x and y are sequential beside it.
	events := []event.Event{
		ev("long", 540, 720),
		ev("x", 540, 600),
		ev("y", 600, 660),
	}
	got := byID(Layout(events))

	if got["x"].Column != 1 || got["y"].Column != 1 {
		t.Errorf("expected x and y to share column 1, got %d and %d", got["x"].Column, got["y"].Column)
	}
	for id, p := range got {
		if p.Columns != 2 {
			t.Errorf("%s: columns = %d, want 2", id, p.Columns)
		}
	}
}

func TestLayout_TransitiveCluster(t *testing.T) {
	// a overlaps b, b overlaps c, a and c do not overlap: still one cluster.
	events := []event.Event{
		ev("a", 0, 60),
		ev("b", 30, 90),
		ev("c", 60, 120),
	}
	got := byID(Layout(events))

	if got["c"].Column != 0 {
		t.Errorf("c should reuse column 0, got %d", got["c"].Column)
	}
	for id, p := range got {
		if p.Columns != 2 {
			t.Errorf("%s: columns = %d, want 2", id, p.Columns)
		}
	}
	if len(Clusters(events)) != 1 {
		t.Errorf("expected a single cluster")
	}
}

func TestLayout_Empty(t *testing.T) {
	if got := Layout(nil); len(got) != 0 {
		t.Errorf("expected empty layout, got %d", len(got))
	}
}

func TestLayout_RandomProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	for round := range 200 {
		n := 1 + rng.IntN(12)
		raw := make([]event.Event, n)
		for i := range raw {
			start := rng.IntN(600)
			raw[i] = ev(fmt.Sprintf("e%d", i), start, start+5+rng.IntN(120))
		}

		sorted := FilterCell(raw, "r1", base, base.Add(24*time.Hour))
		positioned := Layout(sorted)
		if len(positioned) != n {
			t.Fatalf("round %d: lost events: %d != %d", round, len(positioned), n)
		}

		// Overlapping events never share a column.
		for i := range positioned {
			for j := i + 1; j < len(positioned); j++ {
				a, b := positioned[i], positioned[j]
				if a.Overlaps(b.Event) && a.Column == b.Column {
					t.Fatalf("round %d: %s and %s overlap in column %d", round, a.ID, b.ID, a.Column)
				}
			}
		}

		// Column count equals the clique number of each cluster.
		offset := 0
		for _, cluster := range Clusters(sorted) {
			want := peakConcurrency(cluster)
			for _, p := range positioned[offset : offset+len(cluster)] {
				if p.Columns != want {
					t.Fatalf("round %d: %s columns = %d, want %d", round, p.ID, p.Columns, want)
				}
				if p.Column < 0 || p.Column >= p.Columns {
					t.Fatalf("round %d: %s column %d out of range", round, p.ID, p.Column)
				}
			}
			offset += len(cluster)
		}
	}
}

func TestFilterCell(t *testing.T) {
	other := ev("other", 540, 600)
	other.ResourceID = "r2"

	events := []event.Event{
		ev("late", 600, 660),
		ev("tie-first", 540, 560),
		other,
		ev("tie-second", 540, 600),
		ev("before", 300, 480),   // ends at window start
		ev("after", 1200, 1260),  // starts at window end
		ev("crossing", 450, 500), // crosses window start
	}

	start := base.Add(8 * time.Hour)
	end := base.Add(20 * time.Hour)
	got := FilterCell(events, "r1", start, end)

	want := []string{"crossing", "tie-first", "tie-second", "late"}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}
