// Package recur expands recurring events into concrete occurrences.
package recur

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/resched/internal/event"
)

// DefaultMaxOccurrences caps the occurrences produced per recurring event.
const DefaultMaxOccurrences = 500

// ErrInvalidRule is returned when an RRULE cannot be parsed.
var ErrInvalidRule = errors.New("invalid recurrence rule")

// Parse parses an RRULE value anchored at dtstart. A leading "RRULE:" is
// accepted.
func Parse(rule string, dtstart time.Time) (*rrule.RRule, error) {
	rule = strings.TrimSpace(rule)
	rule = strings.TrimPrefix(rule, "RRULE:")

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidRule, rule, err)
	}
	r.DTStart(dtstart)
	return r, nil
}

// OccurrenceID identifies one occurrence of a recurring event.
func OccurrenceID(id string, start time.Time) string {
	return id + "@" + start.UTC().Format(time.RFC3339)
}

// Occurrences returns the occurrences of e intersecting [start, end), each
// keeping e's duration. A non-recurring event is returned as-is when it
// intersects the range.
func Occurrences(e event.Event, start, end time.Time, limit int) ([]event.Event, error) {
	if !e.IsRecurring() {
		if e.Intersects(start, end) {
			return []event.Event{e}, nil
		}
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultMaxOccurrences
	}

	r, err := Parse(e.RRule, e.Start)
	if err != nil {
		return nil, err
	}

	var set rrule.Set
	set.RRule(r)

	// Occurrences that started before the range may still run into it.
	dur := e.Duration()
	loc := e.Start.Location()
	starts := set.Between(start.Add(-dur).In(loc), end.In(loc), true)

	out := make([]event.Event, 0, min(len(starts), limit))
	for _, s := range starts {
		if len(out) == limit {
			break
		}
		occ := e
		occ.ID = OccurrenceID(e.ID, s)
		occ.Start = s
		occ.End = s.Add(dur)
		occ.RRule = ""
		if occ.Intersects(start, end) {
			out = append(out, occ)
		}
	}
	return out, nil
}

// Expand replaces recurring events by their occurrences inside [start, end)
// and drops non-recurring events outside it. Events with a broken rule are
// reported through errs and skipped.
func Expand(events []event.Event, start, end time.Time, limit int) (out []event.Event, errs []error) {
	for _, e := range events {
		occs, err := Occurrences(e, start, end, limit)
		if err != nil {
			errs = append(errs, fmt.Errorf("event %s: %w", e.ID, err))
			continue
		}
		out = append(out, occs...)
	}
	return out, errs
}
