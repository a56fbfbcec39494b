package handler

import (
	"log/slog"
	"net/http"

	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"
)

// CategoryHandler serves the category index
type CategoryHandler struct {
	tree   libSvc.TreeManager
	logger *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(tree libSvc.TreeManager, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		tree:   tree,
		logger: logger,
	}
}

// ListCategories lists every category with its visible document count
// GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	drafts := includeDrafts(r)
	idx := h.tree.Categories()

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": idx.Summaries(drafts),
		"total":      idx.TotalCount(drafts),
	})
}

// ListCategoryDocuments lists the documents tagged with a category
// GET /api/categories/{id}/documents
func (h *CategoryHandler) ListCategoryDocuments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Category")
	if !ok {
		return
	}

	category, known := h.tree.Categories().Category(id)
	if !known {
		handleError(w, notFound("category", id))
		return
	}

	docs := h.tree.ListDocumentsIn(libSvc.DocumentQuery{
		CategoryID:    id,
		IncludeDrafts: includeDrafts(r),
	})
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"category":  category,
		"documents": docs,
	})
}
