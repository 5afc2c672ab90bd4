// Package engine serves mock endpoints and the session API over HTTP.
//
// Routes:
//
//	GET    /health                  liveness probe
//	POST   /session                 create a session
//	GET    /session/{id}            recorded history, optionally filtered
//	DELETE /session/{id}            drop a session and its history
//	ANY    /mock/{session}/{path...} dispatch to the endpoint registry
//
// The Dispatcher holds the transport-independent part of a mock request:
// registry lookup, history recording and response rendering. Handler adapts
// it and the session store to net/http, and Server owns the listener.
package engine
