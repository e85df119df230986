// Package chronicle provides the SQLite-backed append-only event log.
// The simulation appends every event it emits; consumers read a recent
// suffix. The world itself is never restored from here.
package chronicle

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Entry is one logged event.
type Entry struct {
	ID          int64  `db:"id" json:"id"`
	Day         int    `db:"day" json:"day"`
	Category    string `db:"category" json:"category"`
	Description string `db:"description" json:"description"`
}

// DB wraps a SQLite connection holding the chronicle.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the chronicle database at the given path.
// Use ":memory:" for an ephemeral chronicle.
func Open(path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_day ON events(day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Append inserts one event at the end of the chronicle.
func (db *DB) Append(day int, category, description string) error {
	_, err := db.conn.Exec(
		`INSERT INTO events (day, category, description) VALUES (?, ?, ?)`,
		day, category, description,
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// Recent returns the last n entries in chronological order.
func (db *DB) Recent(n int) ([]Entry, error) {
	var rows []Entry
	err := db.conn.Select(&rows,
		`SELECT id, day, category, description FROM events ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// Count returns the total number of chronicled events.
func (db *DB) Count() (int64, error) {
	var n int64
	if err := db.conn.Get(&n, `SELECT COUNT(*) FROM events`); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
