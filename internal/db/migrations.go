package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			resource_id TEXT NOT NULL,
			start_at    TEXT NOT NULL,
			end_at      TEXT NOT NULL,
			tzid        TEXT NOT NULL DEFAULT '',
			rrule       TEXT NOT NULL DEFAULT '',
			color       TEXT NOT NULL DEFAULT '',
			class_name  TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			CHECK (end_at > start_at)
		);

		CREATE INDEX IF NOT EXISTS idx_events_range ON events(start_at, end_at);
		CREATE INDEX IF NOT EXISTS idx_events_resource ON events(resource_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	// Databases created before zones were stored.
	if err := s.addColumn("events", "tzid", "TEXT NOT NULL DEFAULT ''"); err != nil {
		return err
	}

	return nil
}

func (s *SQLite) addColumn(table, column, definition string) error {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", table, err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)); err != nil {
		return fmt.Errorf("adding %s.%s: %w", table, column, err)
	}
	return nil
}
