package scheduler

import (
	"time"

	"github.com/javiermolinar/resched/internal/dateutil"
)

// maxSearchDays bounds FreeSlot.
const maxSearchDays = 28

// FreeSlot finds the first slot-aligned start at or after from where an
// event of length d fits inside a day window of resourceID without touching
// any known event. Days are scanned from from's day for up to four weeks.
func (s *Scheduler) FreeSlot(resourceID string, from time.Time, d time.Duration) (time.Time, bool) {
	if d <= 0 {
		return time.Time{}, false
	}

	day := s.cfg.mode.StartOfDay(from)
	for range maxSearchDays {
		w := s.Window(day)
		start := w.Start
		if from.After(start) {
			start = s.roundUpToSlot(from, w.Start)
		}
		for end := start.Add(d); !end.After(w.End); end = start.Add(d) {
			if !s.busy(resourceID, start, end) {
				return start, true
			}
			start = start.Add(time.Duration(s.cfg.slot) * time.Minute)
		}
		day = dateutil.AddDays(day, 1)
	}
	return time.Time{}, false
}

// CanFit reports whether [start, start+d) lies inside its day window and is
// free for resourceID.
func (s *Scheduler) CanFit(resourceID string, start time.Time, d time.Duration) bool {
	w := s.Window(s.cfg.mode.StartOfDay(start))
	end := start.Add(d)
	if d <= 0 || start.Before(w.Start) || end.After(w.End) {
		return false
	}
	return !s.busy(resourceID, start, end)
}

func (s *Scheduler) busy(resourceID string, start, end time.Time) bool {
	for _, e := range s.events {
		if e.ResourceID == resourceID && e.Intersects(start, end) {
			return true
		}
	}
	return false
}

// roundUpToSlot rounds t up to the next slot boundary counted from origin.
func (s *Scheduler) roundUpToSlot(t, origin time.Time) time.Time {
	slot := time.Duration(s.cfg.slot) * time.Minute
	elapsed := t.Sub(origin)
	if rem := elapsed % slot; rem != 0 {
		elapsed += slot - rem
	}
	return origin.Add(elapsed)
}
