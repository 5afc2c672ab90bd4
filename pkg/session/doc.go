// Package session records mock requests per caller-chosen session id.
//
// A Store owns every session. The "default" session springs into existence
// the first time it is touched; every other id must be created explicitly
// and stays until deleted. Two backends exist: MemoryStore and SQLiteStore.
package session
