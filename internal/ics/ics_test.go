package ics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/resched/internal/event"
)

const sample = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//resched//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:standup-1\r\n" +
	"SUMMARY:Standup\r\n" +
	"DTSTART:20240304T090000Z\r\n" +
	"DTEND:20240304T093000Z\r\n" +
	"RRULE:FREQ=DAILY;COUNT=5\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:offsite\r\n" +
	"SUMMARY:Offsite\r\n" +
	"DTSTART;VALUE=DATE:20240306\r\n" +
	"DTEND;VALUE=DATE:20240307\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:backwards\r\n" +
	"SUMMARY:Broken\r\n" +
	"DTSTART:20240304T120000Z\r\n" +
	"DTEND:20240304T110000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImport(t *testing.T) {
	events, skipped, err := Import(strings.NewReader(sample), "r1", time.UTC)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	standup := events[0]
	if standup.ID != "standup-1" || standup.Title != "Standup" || standup.ResourceID != "r1" {
		t.Errorf("standup = %+v", standup)
	}
	if !standup.Start.Equal(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)) || standup.Duration() != 30*time.Minute {
		t.Errorf("standup time = %v..%v", standup.Start, standup.End)
	}
	if standup.RRule != "FREQ=DAILY;COUNT=5" {
		t.Errorf("rrule = %q", standup.RRule)
	}

	offsite := events[1]
	if !offsite.Start.Equal(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)) || offsite.Duration() != 24*time.Hour {
		t.Errorf("all-day = %v..%v", offsite.Start, offsite.End)
	}

	if len(skipped) != 1 || skipped[0].UID != "backwards" || !errors.Is(skipped[0].Reason, event.ErrEndBeforeStart) {
		t.Errorf("skipped = %+v", skipped)
	}
}

func TestImportEmpty(t *testing.T) {
	cal := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//resched//test//EN\r\nEND:VCALENDAR\r\n"
	_, _, err := Import(strings.NewReader(cal), "r1", time.UTC)
	if !errors.Is(err, ErrNoEvents) {
		t.Errorf("err = %v, want ErrNoEvents", err)
	}
}

func TestImportKeepsRecurringZone(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("Europe/Madrid not available")
	}
	cal := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//resched//test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:weekly\r\n" +
		"SUMMARY:Planning\r\n" +
		"DTSTART;TZID=Europe/Madrid:20260323T090000\r\n" +
		"DTEND;TZID=Europe/Madrid:20260323T100000\r\n" +
		"RRULE:FREQ=WEEKLY;COUNT=3\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:floating\r\n" +
		"SUMMARY:Lunch\r\n" +
		"DTSTART:20260323T130000\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	events, skipped, err := Import(strings.NewReader(cal), "r1", madrid)
	if err != nil || len(skipped) != 0 || len(events) != 2 {
		t.Fatalf("Import = %d events, %v skipped, err %v", len(events), skipped, err)
	}

	weekly := events[0]
	if weekly.Start.Location().String() != "Europe/Madrid" {
		t.Errorf("recurring start zone = %s, want Europe/Madrid", weekly.Start.Location())
	}
	if !weekly.Start.Equal(time.Date(2026, 3, 23, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("recurring start = %v", weekly.Start)
	}

	lunch := events[1]
	if !lunch.Start.Equal(time.Date(2026, 3, 23, 12, 0, 0, 0, time.UTC)) || lunch.Duration() != 30*time.Minute {
		t.Errorf("floating = %v..%v", lunch.Start, lunch.End)
	}
}
