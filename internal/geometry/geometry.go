// Package geometry maps window-relative time spans and column assignments
// to pixel boxes for the rendering layer.
package geometry

import (
	"math"
	"strconv"
	"time"

	"github.com/javiermolinar/resched/internal/layout"
	"github.com/javiermolinar/resched/internal/timezone"
)

const (
	// DefaultPxPerMinute gives 120px per hour.
	DefaultPxPerMinute = 2.0
	// DefaultGapPx keeps adjacent columns apart.
	DefaultGapPx = 6.0
	// MinDurationMinutes is the rendered height floor for very short events.
	MinDurationMinutes = 10.0
)

// Box is the geometry of one event inside a cell.
// Horizontal values are relative to the cell width: the left edge sits at
// LeftPercent% + GapPx/2 and the width is WidthPercent% - GapPx.
type Box struct {
	Hidden bool

	Top    float64 // px from the window start
	Height float64 // px

	LeftPercent  float64
	WidthPercent float64
	GapPx        float64
}

// Position computes the box of [start, end) in column col of cols inside the
// window [windowStart, windowEnd). Events outside the window are Hidden.
func Position(start, end time.Time, col, cols int, windowStart, windowEnd time.Time, pxPerMinute, gapPx float64) Box {
	if !end.After(windowStart) || !start.Before(windowEnd) {
		return Box{Hidden: true}
	}

	clippedStart := start
	if windowStart.After(clippedStart) {
		clippedStart = windowStart
	}
	clippedEnd := end
	if windowEnd.Before(clippedEnd) {
		clippedEnd = windowEnd
	}

	topMin := clippedStart.Sub(windowStart).Minutes()
	durMin := math.Max(MinDurationMinutes, clippedEnd.Sub(clippedStart).Minutes())

	cols = max(1, cols)
	col = max(0, col)

	return Box{
		Top:          topMin * pxPerMinute,
		Height:       durMin * pxPerMinute,
		LeftPercent:  100 * float64(col) / float64(cols),
		WidthPercent: 100 / float64(cols),
		GapPx:        gapPx,
	}
}

// PositionEvent is Position for a laid-out event.
func PositionEvent(p layout.Positioned, w timezone.Window, pxPerMinute, gapPx float64) Box {
	return Position(p.Start, p.End, p.Column, p.Columns, w.Start, w.End, pxPerMinute, gapPx)
}

// Left returns the left offset in px for a cell of width cellWidth.
func (b Box) Left(cellWidth float64) float64 {
	return cellWidth*b.LeftPercent/100 + b.GapPx/2
}

// Width returns the width in px for a cell of width cellWidth, never negative.
func (b Box) Width(cellWidth float64) float64 {
	return math.Max(0, cellWidth*b.WidthPercent/100-b.GapPx)
}

// Bottom returns Top + Height.
func (b Box) Bottom() float64 {
	return b.Top + b.Height
}

// CSS renders the box as positioning declarations.
func (b Box) CSS() map[string]string {
	if b.Hidden {
		return map[string]string{"display": "none"}
	}
	return map[string]string{
		"top":    px(b.Top),
		"height": px(b.Height),
		"width":  "calc(" + num(b.WidthPercent) + "% - " + px(b.GapPx) + ")",
		"left":   "calc(" + num(b.LeftPercent) + "% + " + px(b.GapPx/2) + ")",
		"right":  "auto",
	}
}

// MergeStyle overlays the box CSS on a user style; positioning keys win.
func (b Box) MergeStyle(user map[string]string) map[string]string {
	out := make(map[string]string, len(user)+5)
	for k, v := range user {
		out[k] = v
	}
	for k, v := range b.CSS() {
		out[k] = v
	}
	return out
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func px(f float64) string {
	return num(f) + "px"
}
