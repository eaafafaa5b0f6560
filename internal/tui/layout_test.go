package tui

import (
	"testing"

	"github.com/javiermolinar/resched/internal/geometry"
	"github.com/javiermolinar/resched/internal/tui/view"
)

func TestRowSpan(t *testing.T) {
	// 30 minute rows at 2px per minute.
	const rowPx = 60.0

	tests := []struct {
		name     string
		top      float64
		height   float64
		rows     int
		wantRow  int
		wantRows int
	}{
		{name: "one hour on the hour", top: 120, height: 120, rows: 24, wantRow: 2, wantRows: 2},
		{name: "short event keeps one row", top: 150, height: 20, rows: 24, wantRow: 2, wantRows: 1},
		{name: "straddles a row edge", top: 150, height: 60, rows: 24, wantRow: 2, wantRows: 2},
		{name: "clipped at the bottom", top: 1380, height: 120, rows: 24, wantRow: 23, wantRows: 1},
		{name: "no rows", top: 0, height: 60, rows: 0, wantRow: 0, wantRows: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, n := rowSpan(tt.top, tt.height, rowPx, tt.rows)
			if row != tt.wantRow || n != tt.wantRows {
				t.Fatalf("rowSpan = (%d, %d), want (%d, %d)", row, n, tt.wantRow, tt.wantRows)
			}
		})
	}
}

func TestColSpan(t *testing.T) {
	tests := []struct {
		name    string
		left    float64
		width   float64
		cell    int
		wantCol int
		wantN   int
	}{
		{name: "full width", left: 0, width: 100, cell: 12, wantCol: 0, wantN: 12},
		{name: "second of two", left: 50, width: 50, cell: 12, wantCol: 6, wantN: 6},
		{name: "first of three", left: 0, width: 100.0 / 3, cell: 12, wantCol: 0, wantN: 4},
		{name: "last of three", left: 200.0 / 3, width: 100.0 / 3, cell: 12, wantCol: 8, wantN: 4},
		{name: "narrow cell keeps one column", left: 75, width: 25, cell: 2, wantCol: 1, wantN: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, n := colSpan(tt.left, tt.width, tt.cell)
			if col != tt.wantCol || n != tt.wantN {
				t.Fatalf("colSpan = (%d, %d), want (%d, %d)", col, n, tt.wantCol, tt.wantN)
			}
		})
	}
}

func TestCellWidths(t *testing.T) {
	// 80 columns, 6 gutter, 3 separators: 71 left for 3 cells.
	got := cellWidths(80, 3)
	want := []int{24, 24, 23}
	if len(got) != len(want) {
		t.Fatalf("cellWidths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cellWidths = %v, want %v", got, want)
		}
	}

	if got := cellWidths(10, 21); got[0] != 1 {
		t.Fatalf("cellWidths on a tiny terminal = %v, want width 1 floor", got)
	}
	if got := cellWidths(80, 0); got != nil {
		t.Fatalf("cellWidths(80, 0) = %v, want nil", got)
	}
}

func TestTimelineRowsAndGutter(t *testing.T) {
	tl := geometry.Timeline{DayStart: 8 * 60, DayEnd: 20 * 60, SlotMinutes: 30, PxPerMinute: 2}

	rowPx, rows := timelineRows(tl)
	if rowPx != 60 || rows != 24 {
		t.Fatalf("timelineRows = (%v, %d), want (60, 24)", rowPx, rows)
	}

	labels := gutterLabels(tl, rowPx, rows)
	if labels[0] != "08:00" || labels[1] != "" || labels[2] != "09:00" || labels[22] != "19:00" {
		t.Fatalf("gutterLabels = %q", labels)
	}

	t.Run("window starting on the half hour", func(t *testing.T) {
		tl := geometry.Timeline{DayStart: 8*60 + 30, DayEnd: 10 * 60, SlotMinutes: 30, PxPerMinute: 2}
		rowPx, rows := timelineRows(tl)
		labels := gutterLabels(tl, rowPx, rows)
		if rows != 3 || labels[0] != "" || labels[1] != "09:00" {
			t.Fatalf("rows = %d labels = %q, want 3 rows with 09:00 on row 1", rows, labels)
		}
	})
}

func TestLineRows(t *testing.T) {
	tl := geometry.Timeline{DayStart: 8 * 60, DayEnd: 10 * 60, SlotMinutes: 30, PxPerMinute: 2}
	rowPx, rows := timelineRows(tl)

	lines := lineRows(tl.SlotLines(), tl.HourLineOffsets(), rowPx, rows)
	want := map[int]view.LineKind{0: view.LineHour, 1: view.LineSlot, 2: view.LineHour, 3: view.LineSlot}
	if len(lines) != len(want) {
		t.Fatalf("lineRows = %v, want %v", lines, want)
	}
	for r, k := range want {
		if lines[r] != k {
			t.Fatalf("lineRows[%d] = %v, want %v", r, lines[r], k)
		}
	}
}
