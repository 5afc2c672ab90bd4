// Session API handlers.

package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/getmockd/serverify/pkg/httputil"
	"github.com/getmockd/serverify/pkg/session"
)

// SessionBody is the request and response body of POST /session.
type SessionBody struct {
	Session string `json:"session"`
}

// HistoryBody is the response body of GET /session/{id}.
type HistoryBody struct {
	Histories []session.HistoryEntry `json:"histories"`
}

// handleCreateSession creates a session. An omitted id is generated.
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	raw, ok := h.readBody(w, r)
	if !ok {
		return
	}

	var req SessionBody
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil {
			httputil.WriteBadRequest(w, "invalid JSON body: "+err.Error())
			return
		}
	}
	if req.Session == "" {
		req.Session = uuid.NewString()
	}

	if err := h.store.Create(req.Session); err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidSessionID):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, session.ErrSessionExists):
			httputil.WriteConflict(w, err.Error())
		default:
			h.log.Error("failed to create session", "session", req.Session, "error", err)
			httputil.WriteInternalError(w, "failed to create session")
		}
		return
	}

	h.log.Info("session created", "session", req.Session)
	httputil.WriteCreated(w, SessionBody{Session: req.Session})
}

// handleGetSession returns the recorded history of a session.
// Query parameters method, path and body_path narrow the result.
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	q := r.URL.Query()

	filter, err := session.NewFilter(q.Get("method"), q.Get("path"), q.Get("body_path"))
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	history, err := h.store.History(id)
	if err != nil {
		h.writeStoreError(w, id, err)
		return
	}

	httputil.WriteOK(w, HistoryBody{Histories: filter.Apply(history)})
}

// handleDeleteSession removes a session and its history.
func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Delete(id); err != nil {
		h.writeStoreError(w, id, err)
		return
	}
	h.log.Info("session deleted", "session", id)
	httputil.WriteNoContent(w)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		httputil.WriteNotFound(w, err.Error())
		return
	}
	h.log.Error("session store failure", "session", id, "error", err)
	httputil.WriteInternalError(w, "session store failure")
}
