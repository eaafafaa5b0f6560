package scheduler

import (
	"time"

	"github.com/javiermolinar/resched/internal/event"
	"github.com/javiermolinar/resched/internal/geometry"
	"github.com/javiermolinar/resched/internal/grid"
	"github.com/javiermolinar/resched/internal/layout"
	"github.com/javiermolinar/resched/internal/timezone"
)

// PositionedEvent is an event laid out in a cell.
type PositionedEvent struct {
	layout.Positioned
	Cell grid.Cell
	Box  geometry.Box
}

// CellLayout is the rendered content of one cell.
type CellLayout struct {
	Cell         grid.Cell
	PrimaryKey   string
	SecondaryKey string
	Window       timezone.Window
	Events       []PositionedEvent
}

// Cells returns every cell in render order: primary columns outer,
// secondary columns inner.
func (s *Scheduler) Cells() []grid.Cell {
	cells := make([]grid.Cell, 0, len(s.primary)*len(s.secondary))
	for _, p := range s.primary {
		for _, sc := range s.secondary {
			cell, err := grid.ResolveCell(p, sc)
			if err != nil {
				continue
			}
			cells = append(cells, cell)
		}
	}
	return cells
}

// CellEvents lays out the events of one cell. Events are re-filtered to the
// cell's resource and window regardless of what the provider returned.
func (s *Scheduler) CellEvents(cell grid.Cell) []PositionedEvent {
	w := s.Window(cell.Day)
	sorted := layout.FilterCell(s.events, cell.ResourceID, w.Start, w.End)
	placed := layout.Layout(sorted)

	out := make([]PositionedEvent, len(placed))
	for i, p := range placed {
		out[i] = PositionedEvent{
			Positioned: p,
			Cell:       cell,
			Box:        geometry.PositionEvent(p, w, s.cfg.pxPerMinute, s.cfg.gapPx),
		}
	}
	return out
}

// Layout lays out every cell of the current view.
func (s *Scheduler) Layout() []CellLayout {
	cells := s.Cells()
	out := make([]CellLayout, len(cells))
	for i, c := range cells {
		pk, sk := c.Keys(s.cfg.axis)
		out[i] = CellLayout{
			Cell:         c,
			PrimaryKey:   pk,
			SecondaryKey: sk,
			Window:       s.Window(c.Day),
			Events:       s.CellEvents(c),
		}
	}
	return out
}

// ClickCell raises a slot click at the start of the cell's window.
func (s *Scheduler) ClickCell(cell grid.Cell) (SlotClick, bool) {
	return s.click(cell, s.Window(cell.Day).Start)
}

// ClickSlot raises a slot click at vertical offset y (px) inside the cell.
// The instant is snapped to the slot length when SnapToSlot is set.
func (s *Scheduler) ClickSlot(cell grid.Cell, y float64) (SlotClick, bool) {
	minutes := s.Timeline().OffsetMinutes(y, s.opts.SnapToSlot)
	return s.click(cell, s.cfg.mode.WallClock(cell.Day, s.cfg.dayStart+minutes))
}

func (s *Scheduler) click(cell grid.Cell, instant time.Time) (SlotClick, bool) {
	if s.opts.Readonly {
		return SlotClick{}, false
	}
	pk, sk := cell.Keys(s.cfg.axis)
	sc := SlotClick{
		Instant:      instant,
		Day:          s.cfg.mode.StartOfDay(cell.Day),
		ResourceID:   cell.ResourceID,
		PrimaryAxis:  s.cfg.axis,
		PrimaryKey:   pk,
		SecondaryKey: sk,
	}
	if s.onSlotClick != nil {
		s.onSlotClick(sc)
	}
	return sc, true
}

// ClickEvent raises an event click. raw is the host's interaction value.
func (s *Scheduler) ClickEvent(e event.Event, raw any) {
	if s.onEventClick != nil {
		s.onEventClick(EventClick{Event: e, Raw: raw})
	}
}

// ChangeEvent raises an event change.
func (s *Scheduler) ChangeEvent(e event.Event) {
	if s.onEventChange != nil {
		s.onEventChange(EventChange{Event: e})
	}
}

// EventClasses returns the class list of a positioned event: the engine
// class, the event's own classes, then the host callback's classes.
func (s *Scheduler) EventClasses(pe PositionedEvent) []string {
	classes := append([]string{"resched-event"}, pe.ClassName...)
	if s.opts.EventClass != nil {
		classes = append(classes, s.opts.EventClass(pe)...)
	}
	return classes
}

// EventStyle merges the host style under the layout style. Positioning keys
// always come from the layout.
func (s *Scheduler) EventStyle(pe PositionedEvent) map[string]string {
	user := map[string]string{}
	if pe.Color != "" {
		user["background"] = pe.Color
	}
	if s.opts.EventStyle != nil {
		for k, v := range s.opts.EventStyle(pe) {
			user[k] = v
		}
	}
	return pe.Box.MergeStyle(user)
}

// HeaderContext describes a column header for custom renderers.
type HeaderContext struct {
	Column      grid.Column
	Secondary   bool
	Index       int
	PrimaryAxis grid.Axis
	Day         time.Time
	DayKey      string
	Resource    *event.Resource
}

// Header returns the context of the primary (or secondary) column at index.
func (s *Scheduler) Header(secondary bool, index int) (HeaderContext, bool) {
	cols := s.primary
	if secondary {
		cols = s.secondary
	}
	if index < 0 || index >= len(cols) {
		return HeaderContext{}, false
	}

	hc := HeaderContext{
		Column:      cols[index],
		Secondary:   secondary,
		Index:       index,
		PrimaryAxis: s.cfg.axis,
	}
	switch c := cols[index].(type) {
	case grid.DayColumn:
		hc.Day = c.Day
		hc.DayKey = c.Key()
	case grid.ResourceColumn:
		r := c.Resource
		hc.Resource = &r
	}
	return hc, true
}

// EventContext describes a positioned event for custom renderers.
type EventContext struct {
	Event      event.Event
	Start      time.Time // display calendar
	End        time.Time // display calendar
	ResourceID string
	Day        time.Time
}

// EventContext returns the render context of pe.
func (s *Scheduler) EventContext(pe PositionedEvent) EventContext {
	return EventContext{
		Event:      pe.Event,
		Start:      s.cfg.mode.ToDisplay(pe.Start),
		End:        s.cfg.mode.ToDisplay(pe.End),
		ResourceID: pe.ResourceID,
		Day:        pe.Cell.Day,
	}
}
