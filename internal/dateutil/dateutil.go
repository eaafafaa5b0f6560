// Package dateutil provides immutable calendar-day helpers and date parsing.
package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 24 * 60

// Parsing errors.
var (
	ErrInvalidDateFormat     = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDateTimeFormat = errors.New("date-time must be RFC 3339 or \"YYYY-MM-DD HH:MM\"")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var hmPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// TruncateToDay returns t with time set to midnight in t's location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfDayIn returns midnight of the calendar day t falls on in loc.
func StartOfDayIn(t time.Time, loc *time.Location) time.Time {
	return TruncateToDay(t.In(loc))
}

// AddDays moves t by n calendar days keeping its wall clock.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SetTimeOfDay returns the instant at minutes past midnight of t's calendar day,
// as a wall-clock value in t's location. 1440 minutes is the next midnight.
func SetTimeOfDay(t time.Time, minutes int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), minutes/60, minutes%60, 0, 0, t.Location())
}

// DayKey returns the YYYY-MM-DD key of t's calendar day in its own location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether a and b share year, month and day fields.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// ParseHM converts "HH:MM" (one or two hour digits) to minutes since midnight,
// clamped to [0, 1440]. Malformed input returns fallback.
func ParseHM(s string, fallback int) int {
	m := hmPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return fallback
	}
	hh, err1 := strconv.Atoi(m[1])
	mm, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return fallback
	}
	return min(MinutesPerDay, max(0, hh*60+mm))
}

// FormatHM converts minutes since midnight to "HH:MM" format.
func FormatHM(m int) string {
	if m < 0 {
		m = 0
	}
	if m > MinutesPerDay {
		m = MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseDate parses a date string in YYYY-MM-DD format as midnight in loc.
// If the string is empty, returns today's date.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return StartOfDayIn(time.Now(), loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseDateTime parses RFC 3339 or "YYYY-MM-DD HH:MM" (wall clock in loc).
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDateTimeFormat
}

// ParseRelativeDate parses a date string relative to relativeTo:
//   - Empty string or "today": the day of relativeTo
//   - Keywords: "tomorrow", "yesterday", "next-week", "last-week"
//   - "week": Monday of the current ISO week
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//
// All inputs are case-insensitive. The result is midnight in relativeTo's location.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	case "last-week":
		return today.AddDate(0, 0, -7), nil
	case "week":
		monday, _ := WeekRange(today)
		return monday, nil
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	result, err := time.ParseInLocation("2006-01-02", input, today.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	current := today.Weekday()
	daysUntil := int(target) - int(current)
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
