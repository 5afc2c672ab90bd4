package session

import "fmt"

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// New creates a Store for the named backend.
//
// Supported backends:
//
//	"memory" - a mutex-guarded map (default)
//	"sqlite" - SQLite at dsn, in memory when dsn is empty
func New(backend, dsn string) (Store, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore(dsn)
	default:
		return nil, fmt.Errorf("unknown session backend: %q (supported: memory, sqlite)", backend)
	}
}
