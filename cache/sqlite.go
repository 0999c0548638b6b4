package cache

import (
	"database/sql"
	"encoding/json"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// SQLite is a persistent backend storing plans in a local SQLite database,
// so resolved pairings survive process restarts.
type SQLite struct {
	db   *sql.DB
	path string

	hits   atomic.Int64
	misses atomic.Int64
	errs   atomic.Int64
}

var _ Backend = (*SQLite)(nil)

// NewSQLite opens the plan database at path, creating and migrating it if
// needed.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "open plan database")
	}

	s := &SQLite{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate plan database")
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS plans (
		source TEXT NOT NULL,
		destination TEXT NOT NULL,
		plan_json TEXT NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (source, destination)
	);
	`
	_, err := s.db.Exec(schema)

	return err
}

// Get retrieves the stored plan for the key, if any.
func (s *SQLite) Get(key Key) (*Plan, bool) {
	var raw string

	err := s.db.QueryRow(
		`SELECT plan_json FROM plans WHERE source = ? AND destination = ?`,
		key.Source, key.Destination,
	).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			s.errs.Add(1)
		}

		s.misses.Add(1)

		return nil, false
	}

	var plan Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		s.errs.Add(1)
		s.misses.Add(1)

		return nil, false
	}

	s.hits.Add(1)

	return &plan, true
}

// Set upserts the plan for the key.
func (s *SQLite) Set(key Key, plan *Plan) {
	data, err := json.Marshal(plan)
	if err != nil {
		s.errs.Add(1)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO plans (source, destination, plan_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(source, destination) DO UPDATE SET
			plan_json = excluded.plan_json,
			updated_at = excluded.updated_at
	`, key.Source, key.Destination, string(data), time.Now().UTC())
	if err != nil {
		s.errs.Add(1)
	}
}

// Clear deletes every stored plan.
func (s *SQLite) Clear() {
	if _, err := s.db.Exec(`DELETE FROM plans`); err != nil {
		s.errs.Add(1)
	}
}

// Stats returns counters plus a live row count.
func (s *SQLite) Stats() Stats {
	var entries int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM plans`).Scan(&entries); err != nil {
		s.errs.Add(1)
	}

	return Stats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Entries: entries,
		Errors:  s.errs.Load(),
	}
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
