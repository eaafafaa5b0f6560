// Package event defines the core domain types for resched.
package event

import (
	"errors"
	"time"
)

// Validation errors.
var (
	ErrEmptyID         = errors.New("event id cannot be empty")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrEmptyResource   = errors.New("resource id cannot be empty")
	ErrUnknownResource = errors.New("event references an unknown resource")
	ErrEndBeforeStart  = errors.New("end must be after start")
	ErrDuplicateID     = errors.New("duplicate id")
)

// ErrEventNotFound is returned by repositories for unknown event ids.
var ErrEventNotFound = errors.New("event not found")

// Resource is a bookable row/column of the grid (a person, a room, ...).
type Resource struct {
	ID    string
	Title string

	// Data is opaque host metadata.
	Data any
	// ClassName is handed to the rendering layer untouched.
	ClassName []string
}

// Event is a time-ranged booking of one resource.
// Start is inclusive and End is exclusive.
type Event struct {
	ID         string
	Title      string
	Start      time.Time
	End        time.Time
	ResourceID string

	// RRule is an optional RFC 5545 recurrence rule ("FREQ=DAILY;COUNT=5").
	// Providers expand it before events reach the layout engine.
	RRule string

	Color     string
	ClassName []string
	Data      any
}

// Duration returns the event length.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Intersects reports whether the event overlaps the half-open range [start, end).
func (e Event) Intersects(start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}

// Overlaps returns true if two events overlap in time.
// Two ranges [s1, e1) and [s2, e2) overlap if s1 < e2 AND s2 < e1.
func (e Event) Overlaps(other Event) bool {
	return e.Start.Before(other.End) && other.Start.Before(e.End)
}

// IsRecurring returns true if the event carries a recurrence rule.
func (e Event) IsRecurring() bool {
	return e.RRule != ""
}

// Validate checks the caller contract of an event.
// The layout engine never calls this; hosts validate at ingestion.
func (e Event) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if e.Title == "" {
		return ErrEmptyTitle
	}
	if e.ResourceID == "" {
		return ErrEmptyResource
	}
	if !e.End.After(e.Start) {
		return ErrEndBeforeStart
	}
	return nil
}

// Merge returns a copy of events where the entry with changed.ID is replaced.
// Events without a matching id are returned unchanged.
func Merge(events []Event, changed Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		if e.ID == changed.ID {
			out[i] = changed
			continue
		}
		out[i] = e
	}
	return out
}

// FilterByRange keeps the events intersecting [start, end), preserving order.
func FilterByRange(events []Event, start, end time.Time) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Intersects(start, end) {
			out = append(out, e)
		}
	}
	return out
}
