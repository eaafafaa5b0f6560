// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/resched/internal/event"
	"github.com/javiermolinar/resched/internal/recur"
)

// Instants are stored as fixed-width UTC RFC 3339 text so string comparison
// orders them chronologically. The tzid column keeps the start's zone.
const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements event.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ event.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Open creates the parent directory of path if needed and opens the
// repository.
func Open(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return New(path)
}

// CreateEvent adds a new event to the repository.
// Returns event.ErrDuplicateID if the id is taken.
func (s *SQLite) CreateEvent(ctx context.Context, e *event.Event) error {
	if err := validate(e); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, insertQuery, insertArgs(e, s.now())...); err != nil {
		return insertError(e, err)
	}
	return nil
}

// CreateEvents adds multiple events in a batch using a transaction.
// Nothing is written if any event is invalid or any id is taken.
func (s *SQLite) CreateEvents(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(events))
	for _, e := range events {
		if err := validate(e); err != nil {
			return err
		}
		if seen[e.ID] {
			return fmt.Errorf("event %q: %w", e.ID, event.ErrDuplicateID)
		}
		seen[e.ID] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := s.now()
	for _, e := range events {
		if _, err := stmt.ExecContext(ctx, insertArgs(e, now)...); err != nil {
			return insertError(e, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

const insertQuery = `
	INSERT INTO events (
		id, title, resource_id, start_at, end_at, tzid, rrule, color, class_name, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func insertArgs(e *event.Event, now time.Time) []any {
	return []any{
		e.ID,
		e.Title,
		e.ResourceID,
		formatTime(e.Start),
		formatTime(e.End),
		zoneName(e.Start),
		e.RRule,
		e.Color,
		strings.Join(e.ClassName, " "),
		formatTime(now),
	}
}

func insertError(e *event.Event, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("event %q: %w", e.ID, event.ErrDuplicateID)
	}
	return fmt.Errorf("inserting event %q: %w", e.ID, err)
}

func validate(e *event.Event) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("event %q: %w", e.ID, err)
	}
	if e.IsRecurring() {
		if _, err := recur.Parse(e.RRule, e.Start); err != nil {
			return fmt.Errorf("event %q: %w", e.ID, err)
		}
	}
	return nil
}

// GetEvent retrieves an event by ID. Returns nil if it does not exist.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	query := `
		SELECT id, title, resource_id, start_at, end_at, tzid, rrule, color, class_name
		FROM events
		WHERE id = ?
	`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return e, nil
}

// UpdateEvent replaces the stored fields of an existing event.
func (s *SQLite) UpdateEvent(ctx context.Context, e *event.Event) error {
	if err := validate(e); err != nil {
		return err
	}

	query := `
		UPDATE events
		SET title = ?, resource_id = ?, start_at = ?, end_at = ?, tzid = ?, rrule = ?, color = ?, class_name = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		e.Title,
		e.ResourceID,
		formatTime(e.Start),
		formatTime(e.End),
		zoneName(e.Start),
		e.RRule,
		e.Color,
		strings.Join(e.ClassName, " "),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return expectOne(result, e.ID)
}

// DeleteEvent removes an event.
func (s *SQLite) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return expectOne(result, id)
}

func expectOne(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("event %q: %w", id, event.ErrEventNotFound)
	}
	return nil
}

// EventsInRange returns the events intersecting [start, end), with
// recurring events expanded into their occurrences.
func (s *SQLite) EventsInRange(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	query := `
		SELECT id, title, resource_id, start_at, end_at, tzid, rrule, color, class_name
		FROM events
		WHERE start_at < ?
		  AND (end_at > ? OR rrule != '')
		ORDER BY start_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, formatTime(end), formatTime(start))
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stored []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		stored = append(stored, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	events, errs := recur.Expand(stored, start, end, recur.DefaultMaxOccurrences)
	if len(errs) > 0 {
		return nil, fmt.Errorf("expanding events: %w", errors.Join(errs...))
	}
	return events, nil
}

// ListEvents returns every stored event ordered by start.
func (s *SQLite) ListEvents(ctx context.Context) ([]event.Event, error) {
	query := `
		SELECT id, title, resource_id, start_at, end_at, tzid, rrule, color, class_name
		FROM events
		ORDER BY start_at, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*event.Event, error) {
	var (
		e          event.Event
		startAt    string
		endAt      string
		tzid       string
		classNames string
	)

	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.ResourceID,
		&startAt,
		&endAt,
		&tzid,
		&e.RRule,
		&e.Color,
		&classNames,
	)
	if err != nil {
		return nil, err
	}

	e.Start, err = time.Parse(timeLayout, startAt)
	if err != nil {
		return nil, fmt.Errorf("parsing start: %w", err)
	}
	e.End, err = time.Parse(timeLayout, endAt)
	if err != nil {
		return nil, fmt.Errorf("parsing end: %w", err)
	}
	e.ClassName = strings.Fields(classNames)

	if tzid != "" {
		loc, err := time.LoadLocation(tzid)
		if err != nil {
			return nil, fmt.Errorf("loading zone %q: %w", tzid, err)
		}
		e.Start, e.End = e.Start.In(loc), e.End.In(loc)
	}

	return &e, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// zoneName returns the zone recurring rules of t expand in. Zones that cannot
// be loaded back by name are stored as UTC.
func zoneName(t time.Time) string {
	name := t.Location().String()
	if name == "UTC" {
		return ""
	}
	if _, err := time.LoadLocation(name); err != nil {
		return ""
	}
	return name
}
