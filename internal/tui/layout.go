package tui

import (
	"math"

	"github.com/javiermolinar/resched/internal/geometry"
	"github.com/javiermolinar/resched/internal/tui/view"
)

const (
	gutterWidth  = 6
	titleHeight  = 1
	headerHeight = 2
	footerHeight = 2
)

// eps absorbs float noise so boxes landing exactly on a row edge stay there.
const eps = 1e-9

// rowSpan maps the vertical px geometry of a box onto terminal rows of rowPx
// each. Every visible box gets at least one row.
func rowSpan(top, height, rowPx float64, rows int) (row, n int) {
	if rows <= 0 {
		return 0, 0
	}
	if rowPx <= 0 {
		return 0, 1
	}
	row = int(math.Floor(top/rowPx + eps))
	end := int(math.Ceil((top+height)/rowPx - eps))
	row = max(0, min(row, rows-1))
	end = max(row+1, min(end, rows))
	return row, end - row
}

// colSpan maps the horizontal percent geometry of a box onto the character
// columns of a cell width chars wide.
func colSpan(leftPercent, widthPercent float64, width int) (col, n int) {
	if width <= 0 {
		return 0, 0
	}
	col = int(math.Floor(float64(width)*leftPercent/100 + eps))
	right := int(math.Floor(float64(width)*(leftPercent+widthPercent)/100 + eps))
	col = max(0, min(col, width-1))
	right = max(col+1, min(right, width))
	return col, right - col
}

// cellWidths splits the space right of the gutter between n cells, one
// separator column each. Leftover columns go to the first cells.
func cellWidths(total, n int) []int {
	if n <= 0 {
		return nil
	}
	avail := total - gutterWidth - n
	base := max(1, avail/n)
	extra := 0
	if avail > base*n {
		extra = avail - base*n
	}

	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}

// timelineRows returns the row height in px and the number of rows of tl,
// one row per slot.
func timelineRows(tl geometry.Timeline) (rowPx float64, rows int) {
	slot := max(1, tl.SlotMinutes)
	rowPx = float64(slot) * tl.PxPerMinute
	rows = (tl.Span() + slot - 1) / slot
	return rowPx, max(0, rows)
}

// gutterLabels labels the row holding each full hour.
func gutterLabels(tl geometry.Timeline, rowPx float64, rows int) []string {
	labels := make([]string, rows)
	if rowPx <= 0 {
		return labels
	}
	for _, h := range tl.HourLabels() {
		top := tl.HourTop(h)
		if top < 0 {
			continue
		}
		r := int(top/rowPx + eps)
		if r >= rows || labels[r] != "" {
			continue
		}
		labels[r] = geometry.FormatHour(h)
	}
	return labels
}

// lineRows maps slot and hour line offsets onto rows. Hour lines win.
func lineRows(slots []geometry.SlotLine, hours []float64, rowPx float64, rows int) map[int]view.LineKind {
	out := make(map[int]view.LineKind)
	if rowPx <= 0 {
		return out
	}
	for _, s := range slots {
		if r := int(s.Top/rowPx + eps); r < rows {
			out[r] = view.LineSlot
		}
	}
	for _, top := range hours {
		if r := int(top/rowPx + eps); r < rows {
			out[r] = view.LineHour
		}
	}
	return out
}
