package handler

import (
	"log/slog"
	"net/http"

	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"
)

// BrowseHandler serves the document list view and the full tree
type BrowseHandler struct {
	tree   libSvc.TreeManager
	logger *slog.Logger
}

// NewBrowseHandler creates a new browse handler
func NewBrowseHandler(tree libSvc.TreeManager, logger *slog.Logger) *BrowseHandler {
	return &BrowseHandler{
		tree:   tree,
		logger: logger,
	}
}

// Browse returns the view for a folder, or for a category when category_id
// is set. Unknown folders fall back to the root.
// GET /api/browse?folder_id=&category_id=
func (h *BrowseHandler) Browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.tree.Browse(libSvc.DocumentQuery{
		FolderID:      q.Get("folder_id"),
		CategoryID:    q.Get("category_id"),
		IncludeDrafts: includeDrafts(r),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// GetTree returns the nested folder/document tree
// GET /api/tree
func (h *BrowseHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.tree.Tree(includeDrafts(r)))
}
