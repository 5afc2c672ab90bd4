package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/getmockd/serverify/pkg/httputil"
	"github.com/getmockd/serverify/pkg/logging"
	"github.com/getmockd/serverify/pkg/response"
	"github.com/getmockd/serverify/pkg/session"
)

// Registry resolves a path and method to a response spec.
type Registry interface {
	Lookup(path, method string) (response.Spec, bool)
}

// MockRequest is an inbound mock request with the /mock/{session} prefix
// already split off.
type MockRequest struct {
	Session string
	Path    string
	Method  string
	Headers map[string]string
	Query   map[string]string
	Body    string
}

// Outcome is what the transport writes back.
type Outcome struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Dispatcher resolves, records and renders mock requests. It is safe for
// concurrent use.
type Dispatcher struct {
	registry Registry
	store    session.Store
	log      *slog.Logger
	now      func() time.Time
}

// NewDispatcher creates a Dispatcher. A nil logger discards output.
func NewDispatcher(registry Registry, store session.Store, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = logging.Nop()
	}
	return &Dispatcher{
		registry: registry,
		store:    store,
		log:      log,
		now:      time.Now,
	}
}

// Dispatch handles one mock request. Unknown routes leave the store
// untouched. A matched request is recorded before it is rendered, so
// history reflects what was received even when rendering fails.
func (d *Dispatcher) Dispatch(req MockRequest) Outcome {
	spec, ok := d.registry.Lookup(req.Path, req.Method)
	if !ok {
		return errorOutcome(http.StatusNotFound,
			fmt.Sprintf("no mock endpoint for %s %s", strings.ToUpper(req.Method), req.Path))
	}

	entry := session.HistoryEntry{
		Path:      req.Path,
		Method:    strings.ToLower(req.Method),
		Headers:   req.Headers,
		Query:     req.Query,
		Body:      req.Body,
		Timestamp: d.now(),
	}
	if err := d.store.Append(req.Session, entry); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return errorOutcome(http.StatusNotFound, err.Error())
		}
		d.log.Error("failed to record request", "session", req.Session, "path", req.Path, "error", err)
		return errorOutcome(http.StatusInternalServerError, "failed to record request")
	}

	res, err := response.Render(spec, req.Query)
	if err != nil {
		d.log.Error("failed to render response", "path", req.Path, "method", entry.Method, "error", err)
		return errorOutcome(http.StatusInternalServerError, fmt.Sprintf("failed to render response: %v", err))
	}

	d.log.Debug("mock request served",
		"session", req.Session,
		"path", req.Path,
		"method", entry.Method,
		"type", spec.Type(),
		"status", res.Status,
	)
	return Outcome{Status: res.Status, Headers: res.Headers, Body: res.Body}
}

func errorOutcome(status int, message string) Outcome {
	body, _ := json.Marshal(httputil.ErrorResponse{Error: httputil.ErrorDetail{Message: message}})
	return Outcome{
		Status:  status,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	}
}
