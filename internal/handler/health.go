package handler

import (
	"net/http"

	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"
)

// HealthHandler reports liveness and the last persistence failure
type HealthHandler struct {
	tree    libSvc.TreeManager
	backend string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(tree libSvc.TreeManager, backend string) *HealthHandler {
	return &HealthHandler{tree: tree, backend: backend}
}

// Health always answers 200; a failed save shows as "degraded"
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":  "ok",
		"backend": h.backend,
	}
	if err := h.tree.LastPersistError(); err != nil {
		body["status"] = "degraded"
		body["persist_error"] = err.Error()
	}
	httputil.RespondJSON(w, http.StatusOK, body)
}
