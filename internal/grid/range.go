// Package grid derives the visible day range and the primary/secondary
// column structure of the scheduler.
package grid

import (
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/resched/internal/dateutil"
	"github.com/javiermolinar/resched/internal/timezone"
)

// Day count bounds.
const (
	MinDays     = 1
	MaxDays     = 7
	DefaultDays = 7
)

// Axis selects which dimension is the top-level column grouping.
type Axis string

const (
	AxisDays      Axis = "days"
	AxisResources Axis = "resources"
)

// ParseAxis returns the axis for s, falling back to AxisDays.
func ParseAxis(s string) Axis {
	if Axis(strings.ToLower(strings.TrimSpace(s))) == AxisResources {
		return AxisResources
	}
	return AxisDays
}

// Toggle returns the other axis.
func (a Axis) Toggle() Axis {
	if a == AxisResources {
		return AxisDays
	}
	return AxisResources
}

// ViewKind identifies the view mode. Only a start date + day count range exists.
type ViewKind string

const ViewCustomRange ViewKind = "custom-range"

// VisibleRange is the overall visible interval [Start, End).
type VisibleRange struct {
	Start       time.Time
	End         time.Time
	Days        int
	PrimaryAxis Axis
	View        ViewKind
}

// Key is the composite identity used for range-change de-duplication.
func (r VisibleRange) Key() string {
	return r.Start.UTC().Format(time.RFC3339Nano) + "|" +
		r.End.UTC().Format(time.RFC3339Nano) + "|" +
		string(r.PrimaryAxis) + "|" +
		strconv.Itoa(r.Days)
}

// ClampDays clamps a requested day count to [MinDays, MaxDays].
func ClampDays(n int) int {
	return max(MinDays, min(MaxDays, n))
}

// BuildRange computes the visible days and range for startDate.
// startDate is truncated to the start of its day in the display calendar and
// the range spans exactly the clamped number of consecutive calendar days.
func BuildRange(startDate time.Time, requestedDays int, axis Axis, mode timezone.Mode) (VisibleRange, []time.Time) {
	n := ClampDays(requestedDays)
	start := mode.StartOfDay(startDate)

	days := make([]time.Time, n)
	for i := range n {
		days[i] = dateutil.AddDays(start, i)
	}

	return VisibleRange{
		Start:       start,
		End:         dateutil.AddDays(start, n),
		Days:        n,
		PrimaryAxis: axis,
		View:        ViewCustomRange,
	}, days
}
