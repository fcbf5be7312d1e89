// Package history records executed statements in a local SQLite database
// so the console can recall them across sessions.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is a single executed statement.
type Entry struct {
	ID           string
	SessionID    string
	Dialect      string
	Statement    string
	Terminated   bool
	RowsAffected int64
	Error        string
	ExecutedAt   time.Time
}

// Store persists statement history in SQLite.
type Store struct {
	db        *sql.DB
	path      string
	sessionID string
}

// NewStore creates a new history store instance. Each store gets a fresh
// session ID so entries from different console runs can be told apart.
func NewStore() *Store {
	return &Store{sessionID: uuid.New().String()}
}

// SessionID returns the identifier for the current console session.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Open opens the SQLite database at path and runs pending migrations.
// Use ":memory:" for an in-memory database.
func (s *Store) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping history database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the history database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores an executed statement.
func (s *Store) Record(entry *Entry) error {
	if s.db == nil {
		return fmt.Errorf("history database not opened")
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.SessionID == "" {
		entry.SessionID = s.sessionID
	}
	if entry.ExecutedAt.IsZero() {
		entry.ExecutedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO statements (id, session_id, dialect, statement, terminated, rows_affected, error, executed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.SessionID, entry.Dialect, entry.Statement, entry.Terminated, entry.RowsAffected, entry.Error, entry.ExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record statement: %w", err)
	}

	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]*Entry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("history database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, dialect, statement, terminated, rows_affected, error, executed_at
		 FROM statements ORDER BY executed_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry := &Entry{}
		var errMsg sql.NullString

		err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Dialect, &entry.Statement, &entry.Terminated, &entry.RowsAffected, &errMsg, &entry.ExecutedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		if errMsg.Valid {
			entry.Error = errMsg.String
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Clear removes all entries for the current session.
func (s *Store) Clear() error {
	if s.db == nil {
		return fmt.Errorf("history database not opened")
	}

	_, err := s.db.Exec(`DELETE FROM statements WHERE session_id = ?`, s.sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
