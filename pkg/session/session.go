package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"time"
)

// DefaultID is the session that exists implicitly before any explicit creation.
const DefaultID = "default"

// TimestampFormat is the textual form of HistoryEntry timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

var (
	// ErrSessionNotFound is returned when a session id is not present.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when creating a session that already exists.
	ErrSessionExists = errors.New("session already exists")

	// ErrInvalidSessionID is returned for ids outside [-a-zA-Z0-9_]+.
	ErrInvalidSessionID = errors.New("invalid session id")
)

var idRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidateID reports whether id can name a session.
func ValidateID(id string) error {
	if !idRegex.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	return nil
}

// HistoryEntry is one recorded mock request.
type HistoryEntry struct {
	Path      string            `json:"path"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	Query     map[string]string `json:"query"`
	Body      string            `json:"body"`
	Timestamp time.Time         `json:"timestamp"`
}

// MarshalJSON renders the timestamp in local time using TimestampFormat.
// Fields appear as path, method, headers, query, body, timestamp.
func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path      string            `json:"path"`
		Method    string            `json:"method"`
		Headers   map[string]string `json:"headers"`
		Query     map[string]string `json:"query"`
		Body      string            `json:"body"`
		Timestamp string            `json:"timestamp"`
	}{
		Path:      e.Path,
		Method:    e.Method,
		Headers:   nonNil(e.Headers),
		Query:     nonNil(e.Query),
		Body:      e.Body,
		Timestamp: e.Timestamp.Local().Format(TimestampFormat),
	})
}

// clone returns a copy that shares no maps with e.
func (e HistoryEntry) clone() HistoryEntry {
	e.Headers = nonNil(maps.Clone(e.Headers))
	e.Query = nonNil(maps.Clone(e.Query))
	return e
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// Store owns every session and its history. Implementations must be safe for
// concurrent use: appends are never lost and readers observe a session either
// before or after a create/delete, never in between.
//
// The DefaultID session is materialized on first use by Append, History or
// Delete. Any other id must be created explicitly.
type Store interface {
	// Create inserts an empty session. Returns ErrSessionExists if present.
	Create(id string) error

	// Append records entry at the end of the session's history.
	Append(id string, entry HistoryEntry) error

	// History returns the session's entries in append order.
	History(id string) ([]HistoryEntry, error)

	// Delete removes the session and its history.
	Delete(id string) error

	// Close releases backend resources.
	Close() error
}

// IDError reports a failed operation on one session. It unwraps to
// ErrSessionNotFound or ErrSessionExists.
type IDError struct {
	ID  string
	Err error
}

func (e *IDError) Error() string {
	switch e.Err {
	case ErrSessionNotFound:
		return fmt.Sprintf("session %q is not found", e.ID)
	case ErrSessionExists:
		return fmt.Sprintf("session %q already exists", e.ID)
	default:
		return fmt.Sprintf("session %q: %v", e.ID, e.Err)
	}
}

func (e *IDError) Unwrap() error { return e.Err }

func notFound(id string) error {
	return &IDError{ID: id, Err: ErrSessionNotFound}
}

func exists(id string) error {
	return &IDError{ID: id, Err: ErrSessionExists}
}
