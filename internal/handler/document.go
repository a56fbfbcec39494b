package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	tree   libSvc.TreeManager
	logger *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(tree libSvc.TreeManager, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		tree:   tree,
		logger: logger,
	}
}

// GetDocument retrieves a document with its content.
// Drafts and archived documents are hidden from non-manager sessions.
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Document")
	if !ok {
		return
	}

	doc, err := h.tree.GetDocument(id)
	if err != nil {
		handleError(w, err)
		return
	}
	if !includeDrafts(r) && !doc.IsPublished() {
		handleError(w, notFound("document", id))
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// SearchDocuments matches title and content
// GET /api/documents/search?q=
func (h *DocumentHandler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httputil.RespondError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	results := h.tree.SearchDocuments(query, includeDrafts(r))
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"query":     query,
		"documents": results,
		"count":     len(results),
	})
}

// CreateDocument creates a new document
// POST /api/documents
// Returns 201 if created, 409 with existing document if the id is taken
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req libSvc.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.tree.CreateDocument(r.Context(), &req)
	if err != nil {
		HandleCreateConflict(w, err, h.tree.GetDocument)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// UpdateDocument changes title, content, status or category
// PATCH /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Document")
	if !ok {
		return
	}

	var req libSvc.UpdateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := h.editable(w, id); !ok {
		return
	}

	doc, err := h.tree.UpdateDocument(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// MoveDocument moves a document to another folder
// POST /api/documents/{id}/move
func (h *DocumentHandler) MoveDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Document")
	if !ok {
		return
	}

	var req libSvc.MoveDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.FolderID == "" {
		req.FolderID = models.RootFolderID
	}

	if _, ok := h.editable(w, id); !ok {
		return
	}
	if !h.tree.FolderExists(req.FolderID) {
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("folder %q not found", req.FolderID))
		return
	}

	if err := h.tree.MoveDocument(r.Context(), id, req.FolderID); err != nil {
		handleError(w, err)
		return
	}

	doc, err := h.tree.GetDocument(id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a document
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Document")
	if !ok {
		return
	}

	if _, ok := h.editable(w, id); !ok {
		return
	}

	if err := h.tree.DeleteDocument(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}

// editable loads the document and refuses system documents with 403
func (h *DocumentHandler) editable(w http.ResponseWriter, id string) (*models.Document, bool) {
	doc, err := h.tree.GetDocument(id)
	if err != nil {
		handleError(w, err)
		return nil, false
	}
	if doc.IsSystemDocument {
		forbidden(w, fmt.Sprintf("document %q is a system document and cannot be changed", doc.Title))
		return nil, false
	}
	return doc, true
}
