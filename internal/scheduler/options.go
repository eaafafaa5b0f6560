package scheduler

import (
	"math"
	"time"

	"github.com/javiermolinar/resched/internal/dateutil"
	"github.com/javiermolinar/resched/internal/geometry"
	"github.com/javiermolinar/resched/internal/grid"
	"github.com/javiermolinar/resched/internal/timezone"
	"github.com/rs/zerolog"
)

// Engine defaults.
const (
	DefaultDayStart     = "08:00"
	DefaultDayEnd       = "20:00"
	DefaultSlotDuration = "00:30"

	defaultDayStartMin = 8 * 60
	defaultDayEndMin   = 20 * 60
	defaultSlotMin     = 30
	// fallbackSpanMin is applied when dayEnd does not follow dayStart.
	fallbackSpanMin = 600
)

// SlotLineStyle selects which horizontal lines a renderer draws.
type SlotLineStyle string

const (
	SlotLinesSlot SlotLineStyle = "slot"
	SlotLinesHour SlotLineStyle = "hour"
	SlotLinesBoth SlotLineStyle = "both"
)

// Options is the host-supplied configuration of a Scheduler.
// Every field is normalised silently; no value makes New fail.
type Options struct {
	StartDate    time.Time
	Days         int
	PrimaryAxis  grid.Axis
	DayStart     string // HH:mm
	DayEnd       string // HH:mm
	SlotDuration string // HH:mm
	Timezone     string // "local", "UTC" or an IANA identifier

	// Location backs "local" mode. Nil means time.Local.
	Location *time.Location

	SnapToSlot    bool
	Readonly      bool
	ShowSlotLines bool
	SlotLineStyle SlotLineStyle

	PxPerMinute float64
	ColumnGapPx float64

	DayTitle   grid.DayTitleFunc
	EventClass func(PositionedEvent) []string
	EventStyle func(PositionedEvent) map[string]string
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Days:          grid.DefaultDays,
		PrimaryAxis:   grid.AxisDays,
		DayStart:      DefaultDayStart,
		DayEnd:        DefaultDayEnd,
		SlotDuration:  DefaultSlotDuration,
		Timezone:      "local",
		SnapToSlot:    true,
		ShowSlotLines: true,
		SlotLineStyle: SlotLinesSlot,
		PxPerMinute:   geometry.DefaultPxPerMinute,
		ColumnGapPx:   geometry.DefaultGapPx,
	}
}

// settings is the normalised form of Options.
type settings struct {
	days        int
	axis        grid.Axis
	dayStart    int
	dayEnd      int
	slot        int
	mode        timezone.Mode
	pxPerMinute float64
	gapPx       float64
	lineStyle   SlotLineStyle
}

func normalize(o Options, log zerolog.Logger) settings {
	s := settings{
		days:        grid.ClampDays(o.Days),
		axis:        grid.ParseAxis(string(o.PrimaryAxis)),
		dayStart:    dateutil.ParseHM(o.DayStart, defaultDayStartMin),
		dayEnd:      dateutil.ParseHM(o.DayEnd, defaultDayEndMin),
		slot:        dateutil.ParseHM(o.SlotDuration, defaultSlotMin),
		pxPerMinute: o.PxPerMinute,
		gapPx:       o.ColumnGapPx,
		lineStyle:   o.SlotLineStyle,
	}

	if s.dayEnd <= s.dayStart {
		log.Debug().
			Int("day_start", s.dayStart).
			Int("day_end", s.dayEnd).
			Msg("day end not after day start, extending window")
		s.dayEnd = s.dayStart + fallbackSpanMin
	}
	if s.slot <= 0 {
		s.slot = defaultSlotMin
	}
	if !finite(s.pxPerMinute) || s.pxPerMinute <= 0 {
		s.pxPerMinute = geometry.DefaultPxPerMinute
	}
	if !finite(s.gapPx) || s.gapPx < 0 {
		s.gapPx = geometry.DefaultGapPx
	}
	switch s.lineStyle {
	case SlotLinesSlot, SlotLinesHour, SlotLinesBoth:
	default:
		s.lineStyle = SlotLinesSlot
	}

	mode, err := timezone.ParseMode(o.Timezone, o.Location)
	if err != nil {
		log.Warn().Err(err).Str("timezone", o.Timezone).Msg("falling back to local time")
	}
	s.mode = mode

	return s
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
