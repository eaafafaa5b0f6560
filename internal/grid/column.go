package grid

import (
	"errors"
	"time"

	"github.com/javiermolinar/resched/internal/dateutil"
	"github.com/javiermolinar/resched/internal/event"
)

// ErrInvalidCell is returned when two columns do not name one day and one resource.
var ErrInvalidCell = errors.New("cell needs one day column and one resource column")

// Column is either a DayColumn or a ResourceColumn.
type Column interface {
	Key() string
	Title() string
	column()
}

// DayColumn is one visible calendar day.
type DayColumn struct {
	Day   time.Time // midnight in the display calendar
	Label string
}

// ResourceColumn is one resource.
type ResourceColumn struct {
	Resource event.Resource
}

// Key is the YYYY-MM-DD form of the day in its display calendar.
func (c DayColumn) Key() string   { return dateutil.DayKey(c.Day) }
func (c DayColumn) Title() string { return c.Label }
func (DayColumn) column()         {}

// Key is the resource id.
func (c ResourceColumn) Key() string   { return c.Resource.ID }
func (c ResourceColumn) Title() string { return c.Resource.Title }
func (ResourceColumn) column()         {}

// DayTitleFunc formats the header title of a day.
type DayTitleFunc func(day time.Time) string

// DefaultDayTitle formats a day as "Mon, Jan 2".
func DefaultDayTitle(day time.Time) string {
	return day.Format("Mon, Jan 2")
}

// BuildColumns derives the primary and secondary columns.
// Day columns keep the order of days; resource columns keep the order of
// resources as supplied.
func BuildColumns(days []time.Time, resources []event.Resource, axis Axis, title DayTitleFunc) (primary, secondary []Column) {
	if title == nil {
		title = DefaultDayTitle
	}

	dayCols := make([]Column, len(days))
	for i, d := range days {
		dayCols[i] = DayColumn{Day: d, Label: title(d)}
	}

	resCols := make([]Column, len(resources))
	for i, r := range resources {
		resCols[i] = ResourceColumn{Resource: r}
	}

	if axis == AxisResources {
		return resCols, dayCols
	}
	return dayCols, resCols
}

// Cell is the derived (day, resource) intersection of the grid.
type Cell struct {
	Day        time.Time
	ResourceID string
}

// DayKey returns the YYYY-MM-DD key of the cell's day.
func (c Cell) DayKey() string {
	return dateutil.DayKey(c.Day)
}

// Key identifies the cell.
func (c Cell) Key() string {
	return c.DayKey() + "|" + c.ResourceID
}

// Keys returns the primary and secondary keys of the cell for axis.
func (c Cell) Keys(axis Axis) (primaryKey, secondaryKey string) {
	if axis == AxisResources {
		return c.ResourceID, c.DayKey()
	}
	return c.DayKey(), c.ResourceID
}

// ResolveCell returns the cell at the intersection of two columns.
// Exactly one must be a DayColumn and the other a ResourceColumn.
func ResolveCell(primary, secondary Column) (Cell, error) {
	var (
		cell             Cell
		haveDay, haveRes bool
	)
	for _, c := range []Column{primary, secondary} {
		switch col := c.(type) {
		case DayColumn:
			if haveDay {
				return Cell{}, ErrInvalidCell
			}
			cell.Day, haveDay = col.Day, true
		case ResourceColumn:
			if haveRes {
				return Cell{}, ErrInvalidCell
			}
			cell.ResourceID, haveRes = col.Resource.ID, true
		default:
			return Cell{}, ErrInvalidCell
		}
	}
	if !haveDay || !haveRes {
		return Cell{}, ErrInvalidCell
	}
	return cell, nil
}
