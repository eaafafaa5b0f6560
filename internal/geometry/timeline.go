package geometry

import (
	"fmt"
	"math"
)

// Timeline describes the vertical axis of a day cell.
type Timeline struct {
	DayStart    int // minutes past midnight
	DayEnd      int // minutes past midnight, > DayStart
	SlotMinutes int
	PxPerMinute float64
}

// SlotLine is one horizontal grid line.
type SlotLine struct {
	Top        float64
	IsHalfHour bool
}

// Span returns the visible minutes.
func (t Timeline) Span() int {
	return t.DayEnd - t.DayStart
}

// Height returns the timeline height in px.
func (t Timeline) Height() float64 {
	return math.Max(0, float64(t.Span())*t.PxPerMinute)
}

// HourLabels returns the hours labelled on the time gutter, inclusive.
func (t Timeline) HourLabels() []int {
	startH := t.DayStart / 60
	endH := t.DayEnd / 60

	hours := make([]int, 0, endH-startH+1)
	for h := startH; h <= endH; h++ {
		hours = append(hours, h)
	}
	return hours
}

// HourTop returns the px offset of hour h from the window start.
func (t Timeline) HourTop(h int) float64 {
	return float64(h*60-t.DayStart) * t.PxPerMinute
}

// SlotLines returns one line per slot from the window start to its end.
func (t Timeline) SlotLines() []SlotLine {
	span := t.Span()
	if span <= 0 || t.SlotMinutes <= 0 {
		return nil
	}

	lines := make([]SlotLine, 0, span/t.SlotMinutes+1)
	for m := 0; m <= span; m += t.SlotMinutes {
		lines = append(lines, SlotLine{
			Top:        float64(m) * t.PxPerMinute,
			IsHalfHour: (t.DayStart+m)%60 == 30,
		})
	}
	return lines
}

// HourLineOffsets returns the top edge plus every full hour inside the window.
func (t Timeline) HourLineOffsets() []float64 {
	if t.Span() <= 0 {
		return nil
	}

	offsets := []float64{0}
	firstHour := (t.DayStart + 59) / 60 * 60
	for m := firstHour; m <= t.DayEnd; m += 60 {
		offsets = append(offsets, float64(m-t.DayStart)*t.PxPerMinute)
	}
	return offsets
}

// OffsetMinutes converts a y offset in px to minutes from the window start,
// clamped to the window. With snap, it rounds to the nearest slot.
func (t Timeline) OffsetMinutes(y float64, snap bool) int {
	if t.PxPerMinute <= 0 || math.IsNaN(y) {
		return 0
	}
	minutes := math.Max(0, math.Min(float64(t.Span()), y/t.PxPerMinute))
	if snap && t.SlotMinutes > 0 {
		slot := float64(t.SlotMinutes)
		minutes = math.Floor(minutes/slot+0.5) * slot
	}
	return int(minutes)
}

// FormatHour renders h as "HH:00".
func FormatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}
