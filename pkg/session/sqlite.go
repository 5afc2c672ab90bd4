package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// memoryDSN names a private in-memory database. Each store gets its own, so
// two stores opened with an empty dsn never see each other's sessions.
func memoryDSN() string {
	return "file:serverify-" + uuid.NewString() + "?mode=memory&cache=shared"
}

// SQLiteStore keeps sessions in a SQLite database.
//
// Tables:
//
//	sessions(id)                                     PRIMARY KEY (id)
//	histories(id, session_id, path, method, headers, query, body, timestamp)
//
// headers and query are JSON objects; timestamp is Unix nanoseconds.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore opens dsn and creates the schema. An empty dsn opens a
// private in-memory database that lives as long as the store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = memoryDSN()
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	for _, stmt := range []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS histories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			path TEXT NOT NULL,
			method TEXT NOT NULL,
			headers TEXT NOT NULL,
			query TEXT NOT NULL,
			body TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS histories_session_id ON histories(session_id, id)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init sqlite schema: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Create implements Store.
func (s *SQLiteStore) Create(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO sessions (id) VALUES (?)`, id)
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint {
		return exists(id)
	}
	return err
}

// present reports whether id exists, materializing the default session.
// Callers must hold s.mu.
func (s *SQLiteStore) present(id string) (bool, error) {
	if id == DefaultID {
		if _, err := s.db.Exec(`INSERT OR IGNORE INTO sessions (id) VALUES (?)`, id); err != nil {
			return false, err
		}
		return true, nil
	}
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(id string, entry HistoryEntry) error {
	headers, err := json.Marshal(nonNil(entry.Headers))
	if err != nil {
		return err
	}
	query, err := json.Marshal(nonNil(entry.Query))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.present(id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(id)
	}
	_, err = s.db.Exec(
		`INSERT INTO histories (session_id, path, method, headers, query, body, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, entry.Path, entry.Method, string(headers), string(query), entry.Body, entry.Timestamp.UnixNano(),
	)
	return err
}

// History implements Store.
func (s *SQLiteStore) History(id string) ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.present(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound(id)
	}

	rows, err := s.db.Query(
		`SELECT path, method, headers, query, body, timestamp
		 FROM histories WHERE session_id = ? ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []HistoryEntry{}
	for rows.Next() {
		var (
			e              HistoryEntry
			headers, query string
			nanos          int64
		)
		if err := rows.Scan(&e.Path, &e.Method, &headers, &query, &e.Body, &nanos); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(headers), &e.Headers); err != nil {
			return nil, fmt.Errorf("decode headers: %w", err)
		}
		if err := json.Unmarshal([]byte(query), &e.Query); err != nil {
			return nil, fmt.Errorf("decode query: %w", err)
		}
		e.Timestamp = time.Unix(0, nanos)
		history = append(history, e)
	}
	return history, rows.Err()
}

// Delete implements Store.
func (s *SQLiteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.present(id); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM histories WHERE session_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(id)
	}
	return tx.Commit()
}
