package scheduler

import (
	"time"

	"github.com/javiermolinar/resched/internal/dateutil"
	"github.com/javiermolinar/resched/internal/event"
)

// RangeTitle formats the visible range: "Mon, Jan 2" for one day,
// "Jan 2–6" within a month, "Jan 30 – Feb 3" across months.
func (s *Scheduler) RangeTitle() string {
	if len(s.days) == 0 {
		return ""
	}
	first, last := s.days[0], s.days[len(s.days)-1]

	switch {
	case len(s.days) == 1:
		return first.Format("Mon, Jan 2")
	case first.Month() == last.Month() && first.Year() == last.Year():
		return first.Format("Jan 2") + "–" + last.Format("2")
	default:
		return first.Format("Jan 2") + " – " + last.Format("Jan 2")
	}
}

// IsToday reports whether day is the current day in the display calendar.
func (s *Scheduler) IsToday(day time.Time) bool {
	return s.cfg.mode.DayKey(day) == s.cfg.mode.DayKey(s.now())
}

// EventTooltip returns "title\nHH:MM–HH:MM" in the display calendar.
func (s *Scheduler) EventTooltip(e event.Event) string {
	return e.Title + "\n" + s.FormatTime(e.Start) + "–" + s.FormatTime(e.End)
}

// FormatTime renders t as HH:MM in the display calendar.
func (s *Scheduler) FormatTime(t time.Time) string {
	return s.cfg.mode.ToDisplay(t).Format("15:04")
}

// DayWindowLabel renders the configured window as "HH:MM–HH:MM".
func (s *Scheduler) DayWindowLabel() string {
	return dateutil.FormatHM(s.cfg.dayStart) + "–" + dateutil.FormatHM(s.cfg.dayEnd)
}
