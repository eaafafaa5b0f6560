// Package scheduler is the resource/day grid engine: it owns the start date,
// derives the visible range and columns, lays out events per cell and raises
// the host-facing notifications.
//
// The engine is single-threaded. Hosts call its methods from one goroutine
// (the UI loop) and supply resources and events whole before Recompute.
package scheduler

import (
	"time"

	"github.com/javiermolinar/resched/internal/dateutil"
	"github.com/javiermolinar/resched/internal/event"
	"github.com/javiermolinar/resched/internal/geometry"
	"github.com/javiermolinar/resched/internal/grid"
	"github.com/javiermolinar/resched/internal/timezone"
	"github.com/rs/zerolog"
)

// RangeChange is raised when the visible range identity changes.
type RangeChange struct {
	Start       time.Time
	End         time.Time
	Days        int
	PrimaryAxis grid.Axis
	View        grid.ViewKind
}

// StartDateChange is raised whenever navigation moves the start date.
type StartDateChange struct {
	StartDate time.Time
}

// SlotClick is raised on an interaction with an empty part of a cell.
type SlotClick struct {
	Instant      time.Time
	Day          time.Time
	ResourceID   string
	PrimaryAxis  grid.Axis
	PrimaryKey   string
	SecondaryKey string
}

// EventClick is raised when an event is activated.
type EventClick struct {
	Event event.Event
	Raw   any
}

// EventChange carries an edited event; merging it is up to the host.
type EventChange struct {
	Event event.Event
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// WithNow sets the clock used by Today and IsToday.
func WithNow(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// Scheduler is the grid engine.
type Scheduler struct {
	opts Options
	cfg  settings
	log  zerolog.Logger
	now  func() time.Time

	resources []event.Resource
	events    []event.Event

	startDate time.Time
	vr        grid.VisibleRange
	days      []time.Time
	primary   []grid.Column
	secondary []grid.Column

	lastKey  string
	pending  []RangeChange
	draining bool

	onSlotClick       func(SlotClick)
	onEventClick      func(EventClick)
	onEventChange     func(EventChange)
	onRangeChange     func(RangeChange)
	onStartDateChange func(StartDateChange)
}

// New creates a Scheduler. The derived view is computed immediately; no
// notification is raised until the first Recompute or navigation call.
// A zero StartDate means today.
func New(opts Options, options ...Option) *Scheduler {
	s := &Scheduler{
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, o := range options {
		o(s)
	}

	s.applyOptions(opts)
	if s.startDate.IsZero() {
		s.startDate = s.cfg.mode.StartOfDay(s.now())
	}
	s.compute()
	return s
}

func (s *Scheduler) applyOptions(opts Options) {
	s.opts = opts
	s.cfg = normalize(opts, s.log)
	if !opts.StartDate.IsZero() {
		s.startDate = opts.StartDate
	}
}

// SetOptions replaces the configuration. A zero StartDate keeps the current
// start date. Call Recompute afterwards.
func (s *Scheduler) SetOptions(opts Options) {
	s.applyOptions(opts)
}

// Options returns the configuration as supplied.
func (s *Scheduler) Options() Options {
	return s.opts
}

// SetResources replaces the resource list. Order is preserved.
func (s *Scheduler) SetResources(resources []event.Resource) {
	s.resources = append([]event.Resource(nil), resources...)
}

// SetEvents replaces the event list.
func (s *Scheduler) SetEvents(events []event.Event) {
	s.events = append([]event.Event(nil), events...)
}

// Resources returns the current resources.
func (s *Scheduler) Resources() []event.Resource {
	return s.resources
}

// Events returns the current events.
func (s *Scheduler) Events() []event.Event {
	return s.events
}

// OnSlotClick registers the slot click handler.
func (s *Scheduler) OnSlotClick(fn func(SlotClick)) { s.onSlotClick = fn }

// OnEventClick registers the event click handler.
func (s *Scheduler) OnEventClick(fn func(EventClick)) { s.onEventClick = fn }

// OnEventChange registers the event change handler.
func (s *Scheduler) OnEventChange(fn func(EventChange)) { s.onEventChange = fn }

// OnRangeChange registers the range change handler.
func (s *Scheduler) OnRangeChange(fn func(RangeChange)) { s.onRangeChange = fn }

// OnStartDateChange registers the start date change handler.
func (s *Scheduler) OnStartDateChange(fn func(StartDateChange)) { s.onStartDateChange = fn }

// Recompute derives range and columns from the current inputs. Identical
// inputs yield identical outputs and no further range notification.
func (s *Scheduler) Recompute() grid.VisibleRange {
	defer s.drain()
	s.compute()
	s.queueRange()
	return s.vr
}

func (s *Scheduler) compute() {
	s.vr, s.days = grid.BuildRange(s.startDate, s.cfg.days, s.cfg.axis, s.cfg.mode)
	s.primary, s.secondary = grid.BuildColumns(s.days, s.resources, s.cfg.axis, s.opts.DayTitle)
}

func (s *Scheduler) queueRange() {
	key := s.vr.Key()
	if key == s.lastKey {
		return
	}
	s.lastKey = key
	s.log.Debug().Str("range", key).Msg("range changed")
	s.pending = append(s.pending, RangeChange{
		Start:       s.vr.Start,
		End:         s.vr.End,
		Days:        s.vr.Days,
		PrimaryAxis: s.vr.PrimaryAxis,
		View:        s.vr.View,
	})
}

// drain delivers queued range notifications once the triggering operation
// has finished. Handlers may call back into the engine; anything they queue
// is delivered by the outermost drain.
func (s *Scheduler) drain() {
	if s.draining {
		return
	}
	s.draining = true
	defer func() { s.draining = false }()

	for len(s.pending) > 0 {
		rc := s.pending[0]
		s.pending = s.pending[1:]
		if s.onRangeChange != nil {
			s.onRangeChange(rc)
		}
	}
}

// Prev moves back one page of the current day count.
func (s *Scheduler) Prev() {
	s.navigate(dateutil.AddDays(s.cfg.mode.StartOfDay(s.startDate), -s.cfg.days))
}

// Next moves forward one page of the current day count.
func (s *Scheduler) Next() {
	s.navigate(dateutil.AddDays(s.cfg.mode.StartOfDay(s.startDate), s.cfg.days))
}

// Today resets the start date to the start of the current day.
func (s *Scheduler) Today() {
	s.navigate(s.cfg.mode.StartOfDay(s.now()))
}

// GoToDate sets the start date to the start of d's day.
func (s *Scheduler) GoToDate(d time.Time) {
	s.navigate(s.cfg.mode.StartOfDay(d))
}

func (s *Scheduler) navigate(start time.Time) {
	defer s.drain()
	s.startDate = start
	s.compute()
	s.queueRange()
	if s.onStartDateChange != nil {
		s.onStartDateChange(StartDateChange{StartDate: start})
	}
}

// StartDate returns the current start date.
func (s *Scheduler) StartDate() time.Time {
	return s.startDate
}

// Range returns the current visible range.
func (s *Scheduler) Range() grid.VisibleRange {
	return s.vr
}

// VisibleDays returns the visible days, midnight in the display calendar.
func (s *Scheduler) VisibleDays() []time.Time {
	return s.days
}

// PrimaryColumns returns the outer columns.
func (s *Scheduler) PrimaryColumns() []grid.Column {
	return s.primary
}

// SecondaryColumns returns the inner columns.
func (s *Scheduler) SecondaryColumns() []grid.Column {
	return s.secondary
}

// PrimaryAxis returns the normalised axis.
func (s *Scheduler) PrimaryAxis() grid.Axis {
	return s.cfg.axis
}

// Days returns the normalised day count.
func (s *Scheduler) Days() int {
	return s.cfg.days
}

// Mode returns the resolved time zone mode.
func (s *Scheduler) Mode() timezone.Mode {
	return s.cfg.mode
}

// SlotMinutes returns the normalised slot length.
func (s *Scheduler) SlotMinutes() int {
	return s.cfg.slot
}

// Window resolves the visible window of day.
func (s *Scheduler) Window(day time.Time) timezone.Window {
	return s.cfg.mode.Window(day, s.cfg.dayStart, s.cfg.dayEnd)
}

// Timeline returns the vertical axis shared by every cell.
func (s *Scheduler) Timeline() geometry.Timeline {
	return geometry.Timeline{
		DayStart:    s.cfg.dayStart,
		DayEnd:      s.cfg.dayEnd,
		SlotMinutes: s.cfg.slot,
		PxPerMinute: s.cfg.pxPerMinute,
	}
}

// GridLines returns the slot lines and hour line offsets a renderer should
// draw under the current options.
func (s *Scheduler) GridLines() (slots []geometry.SlotLine, hours []float64) {
	if !s.opts.ShowSlotLines {
		return nil, nil
	}
	tl := s.Timeline()
	switch s.cfg.lineStyle {
	case SlotLinesHour:
		return nil, tl.HourLineOffsets()
	case SlotLinesBoth:
		return tl.SlotLines(), tl.HourLineOffsets()
	default:
		return tl.SlotLines(), nil
	}
}
