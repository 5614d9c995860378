// Package sqlitedb holds the shared plumbing for the SQLite-backed
// repositories: opening the database with the right pragmas and parsing the
// RFC3339 TEXT timestamps the schemas use.
package sqlitedb

import (
	"database/sql"
	"fmt"
	"time"

	// Register the pure-Go SQLite driver.
	// We use modernc.org/sqlite instead of mattn/go-sqlite3 to avoid CGO
	// requirements, making it easier to build and run in Docker (Alpine).
	_ "modernc.org/sqlite"
)

// Open opens (or creates) the SQLite database at the given path.
// WAL mode is enabled for better concurrent read/write performance —
// shoppers read the catalog while the admin dashboard writes.
func Open(path string) (*sql.DB, error) {
	// The pure-Go driver uses _pragma query parameters to configure connection state.
	// WAL enables concurrent readers. busy_timeout waits for locks instead of
	// failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	// Use "sqlite", not "sqlite3" for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	return db, nil
}

// TimeFormat is the fixed-width RFC3339 layout used for timestamp columns.
// RFC3339Nano trims trailing zeros, which breaks the lexicographic ordering
// ORDER BY relies on; padding the fraction keeps string order == time order.
const TimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ParseTime parses the timestamp strings stored in SQLite.
// SQLite has no native datetime type; we store RFC3339 TEXT.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}
