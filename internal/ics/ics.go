// Package ics imports VEVENTs from iCalendar data.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/javiermolinar/resched/internal/event"
)

// ErrNoEvents is returned when the calendar holds no usable VEVENT.
var ErrNoEvents = errors.New("no events in calendar")

// Skipped records a VEVENT that could not be imported.
type Skipped struct {
	UID    string
	Reason error
}

// Import parses r and returns its events assigned to resourceID.
// All-day events span [00:00, next 00:00) of their date in loc.
func Import(r io.Reader, resourceID string, loc *time.Location) ([]event.Event, []Skipped, error) {
	if loc == nil {
		loc = time.Local
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var (
		events  []event.Event
		skipped []Skipped
	)
	for _, ve := range cal.Events() {
		e, err := convert(ve, resourceID, loc)
		if err != nil {
			skipped = append(skipped, Skipped{UID: e.ID, Reason: err})
			continue
		}
		events = append(events, e)
	}

	if len(events) == 0 && len(skipped) == 0 {
		return nil, nil, ErrNoEvents
	}
	return events, skipped, nil
}

func convert(ve *ical.VEvent, resourceID string, loc *time.Location) (event.Event, error) {
	e := event.Event{ResourceID: resourceID}

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil && p.Value != "" {
		e.ID = p.Value
	} else {
		e.ID = uuid.NewString()
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		e.Title = p.Value
	}
	if e.Title == "" {
		e.Title = "(untitled)"
	}
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		e.RRule = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return e, fmt.Errorf("DTSTART: %w", err)
	}

	if isAllDay(ve) {
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		e.Start = day
		e.End = day.AddDate(0, 0, 1)
		if end, err := ve.GetEndAt(); err == nil && end.After(start) {
			last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
			if last.After(day) {
				e.End = last
			}
		}
		if !e.IsRecurring() {
			e.Start, e.End = e.Start.UTC(), e.End.UTC()
		}
		return e, e.Validate()
	}

	// Recurring events keep their DTSTART zone so the rule expands in wall
	// clock time. Floating times are read in loc.
	zone := loc
	if isFloating(ve.GetProperty(ical.ComponentPropertyDtStart)) {
		start = inLocation(start, loc)
	} else {
		zone = start.Location()
	}

	end, err := ve.GetEndAt()
	switch {
	case err != nil:
		// No DTEND: default to half an hour.
		end = start.Add(defaultDuration)
	case isFloating(ve.GetProperty(ical.ComponentPropertyDtEnd)):
		end = inLocation(end, loc)
	}
	if e.IsRecurring() {
		e.Start = start.In(zone)
		e.End = end.In(zone)
	} else {
		e.Start = start.UTC()
		e.End = end.UTC()
	}
	return e, e.Validate()
}

const defaultDuration = 30 * time.Minute

// isFloating reports whether a date-time property carries neither a TZID nor
// a UTC designator.
func isFloating(p *ical.IANAProperty) bool {
	if p == nil {
		return false
	}
	if _, ok := p.ICalParameters["TZID"]; ok {
		return false
	}
	return !strings.HasSuffix(p.Value, "Z")
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}
