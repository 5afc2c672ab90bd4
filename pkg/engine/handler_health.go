// Health probe handler.

package engine

import (
	"net/http"

	"github.com/getmockd/serverify/pkg/httputil"
)

// handleHealth handles the liveness probe endpoint.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, map[string]string{"status": "ok"})
}
