package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/getmockd/serverify/pkg/httputil"
	"github.com/getmockd/serverify/pkg/logging"
	"github.com/getmockd/serverify/pkg/session"
)

// DefaultMaxBodySize caps request bodies when no limit is configured.
const DefaultMaxBodySize int64 = 10 << 20

// Handler routes HTTP requests to the dispatcher and the session API.
type Handler struct {
	dispatcher  *Dispatcher
	store       session.Store
	log         *slog.Logger
	maxBodySize int64
	mux         *http.ServeMux
}

// NewHandler creates a Handler. A non-positive maxBodySize uses
// DefaultMaxBodySize; a nil logger discards output.
func NewHandler(registry Registry, store session.Store, maxBodySize int64, log *slog.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	h := &Handler{
		dispatcher:  NewDispatcher(registry, store, log),
		store:       store,
		log:         log,
		maxBodySize: maxBodySize,
		mux:         http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("POST /session", h.handleCreateSession)
	h.mux.HandleFunc("GET /session/{id}", h.handleGetSession)
	h.mux.HandleFunc("DELETE /session/{id}", h.handleDeleteSession)
	h.mux.HandleFunc("/mock/{session}", h.handleMock)
	h.mux.HandleFunc("/mock/{session}/{path...}", h.handleMock)
	h.mux.HandleFunc("/", h.handleNotFound)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleMock(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	out := h.dispatcher.Dispatch(MockRequest{
		Session: r.PathValue("session"),
		Path:    "/" + r.PathValue("path"),
		Method:  r.Method,
		Headers: flattenHeaders(r.Header),
		Query:   flattenQuery(r.URL.Query()),
		Body:    string(body),
	})

	for k, v := range out.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(out.Status)
	if len(out.Body) > 0 && r.Method != http.MethodHead {
		_, _ = w.Write(out.Body)
	}
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteNotFound(w, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
}

// readBody reads at most maxBodySize bytes, answering 413 beyond that.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		httputil.WriteBadRequest(w, "failed to read request body")
		return nil, false
	}
	return body, true
}

// flattenHeaders lower-cases header names and joins repeated values.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		out[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return out
}

// flattenQuery keeps the last value of each repeated parameter.
func flattenQuery(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for name, values := range q {
		if len(values) > 0 {
			out[name] = values[len(values)-1]
		}
	}
	return out
}
