// Package timezone resolves the visible time window of a calendar day under
// one of three display modes: device-local, UTC, or an IANA zone.
package timezone

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/resched/internal/dateutil"
)

// ErrUnknownZone is returned when an IANA identifier cannot be loaded.
var ErrUnknownZone = errors.New("unknown time zone")

// Kind identifies how wall-clock values are turned into instants.
type Kind int

const (
	KindLocal Kind = iota
	KindUTC
	KindZone
)

// Mode is an immutable display/time-window representation.
// The zero value is device-local mode.
type Mode struct {
	kind Kind
	name string
	loc  *time.Location
}

// Window is the half-open UTC interval [Start, End) visible for one day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Local returns device-local mode. A nil loc means time.Local; tests inject a
// fixed location to stay independent of the machine running them.
func Local(loc *time.Location) Mode {
	if loc == nil {
		loc = time.Local
	}
	return Mode{kind: KindLocal, name: "local", loc: loc}
}

// UTC returns explicit-UTC mode.
func UTC() Mode {
	return Mode{kind: KindUTC, name: "UTC", loc: time.UTC}
}

// Zone returns IANA mode for name.
func Zone(name string) (Mode, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Mode{}, fmt.Errorf("%w %q: %v", ErrUnknownZone, name, err)
	}
	return Mode{kind: KindZone, name: name, loc: loc}, nil
}

// ParseMode maps "local" (or empty), "UTC" and IANA identifiers to a Mode.
// An identifier that cannot be loaded yields local mode together with an
// error wrapping ErrUnknownZone, so callers may log and carry on.
func ParseMode(s string, local *time.Location) (Mode, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || strings.EqualFold(s, "local"):
		return Local(local), nil
	case strings.EqualFold(s, "UTC"):
		return UTC(), nil
	}
	m, err := Zone(s)
	if err != nil {
		return Local(local), err
	}
	return m, nil
}

// Kind reports the mode kind.
func (m Mode) Kind() Kind {
	return m.kind
}

// String returns "local", "UTC" or the IANA identifier.
func (m Mode) String() string {
	if m.name == "" {
		return "local"
	}
	return m.name
}

// Location is the display calendar of the mode.
func (m Mode) Location() *time.Location {
	if m.loc == nil {
		return time.Local
	}
	return m.loc
}

// StartOfDay zeroes the time of day of t in the display calendar.
func (m Mode) StartOfDay(t time.Time) time.Time {
	return dateutil.StartOfDayIn(t, m.Location())
}

// DayKey returns the YYYY-MM-DD key of t in the display calendar.
func (m Mode) DayKey(t time.Time) string {
	return dateutil.DayKey(t.In(m.Location()))
}

// WallClock builds the instant for the wall-clock value (day fields, minutes
// past midnight) in the display calendar. The day's own year/month/day fields
// are used as-is, so a day value built in another location keeps its date.
//
// local: fields interpreted in the device location.
// UTC: an explicit UTC instant, never touching the device location.
// IANA: wall clock in the zone converted to its instant; time.Date applies
// the zone's offset rules including DST transitions.
func (m Mode) WallClock(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, m.Location()).UTC()
}

// Window resolves the UTC boundaries of day's visible window.
func (m Mode) Window(day time.Time, dayStartMinutes, dayEndMinutes int) Window {
	return Window{
		Start: m.WallClock(day, dayStartMinutes),
		End:   m.WallClock(day, dayEndMinutes),
	}
}

// ToDisplay converts an instant to the display calendar.
func (m Mode) ToDisplay(t time.Time) time.Time {
	return t.In(m.Location())
}

// FromDisplay interprets the wall-clock fields of t in the display calendar
// and returns the corresponding UTC instant.
func (m Mode) FromDisplay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), m.Location()).UTC()
}

// Minutes returns the window length in minutes.
func (w Window) Minutes() float64 {
	return w.End.Sub(w.Start).Minutes()
}

// Intersects reports whether [start, end) overlaps the window.
func (w Window) Intersects(start, end time.Time) bool {
	return start.Before(w.End) && end.After(w.Start)
}

// Contains reports whether t is inside [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
