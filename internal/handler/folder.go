package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	tree   libSvc.TreeManager
	logger *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(tree libSvc.TreeManager, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		tree:   tree,
		logger: logger,
	}
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req libSvc.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.tree.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves a folder by ID
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Folder")
	if !ok {
		return
	}

	folder, err := h.tree.GetFolder(id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// ListChildren lists the immediate child folders
// GET /api/folders/{id}/children
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Folder")
	if !ok {
		return
	}
	if !h.tree.FolderExists(id) {
		handleError(w, notFound("folder", id))
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"folders": h.tree.ListChildren(id),
	})
}

// Breadcrumb returns the path from the top-level ancestor down to the folder
// GET /api/folders/{id}/breadcrumb
func (h *FolderHandler) Breadcrumb(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Folder")
	if !ok {
		return
	}

	path, err := h.tree.BreadcrumbPath(id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"breadcrumb": path,
	})
}

// UpdateFolder renames and/or moves a folder. System folders are protected.
// PATCH /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Folder")
	if !ok {
		return
	}

	var req libSvc.UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == nil && req.ParentID == nil {
		httputil.RespondError(w, http.StatusBadRequest, "at least one of name or parent_id must be provided")
		return
	}

	folder, err := h.tree.GetFolder(id)
	if err != nil {
		handleError(w, err)
		return
	}
	if folder.IsSystemFolder {
		forbidden(w, fmt.Sprintf("folder %q is a system folder and cannot be changed", folder.Name))
		return
	}

	if folder, err = h.tree.UpdateFolder(r.Context(), id, &req); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder and its subfolders. Direct documents move to
// the parent; documents in subfolders are deleted. Refused when the folder or
// anything it would delete is system-protected.
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Folder")
	if !ok {
		return
	}

	node := findFolderNode(&h.tree.Tree(true).Root, id)
	if node == nil {
		// Unknown ids are a no-op
		httputil.RespondNoContent(w)
		return
	}
	if reason := protectedInSubtree(node); reason != "" {
		forbidden(w, reason)
		return
	}

	if err := h.tree.DeleteFolder(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}

// findFolderNode returns the node with id in the subtree, or nil
func findFolderNode(node *models.FolderTreeNode, id string) *models.FolderTreeNode {
	stack := []*models.FolderTreeNode{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.ID == id {
			return n
		}
		stack = append(stack, n.Folders...)
	}
	return nil
}

// protectedInSubtree explains why deleting node would remove protected
// content, or returns "" when it would not. Documents directly in node are
// reassigned rather than deleted, so only nested ones count.
func protectedInSubtree(node *models.FolderTreeNode) string {
	if node.IsSystem {
		return fmt.Sprintf("folder %q is a system folder and cannot be deleted", node.Name)
	}
	stack := append([]*models.FolderTreeNode(nil), node.Folders...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.IsSystem {
			return fmt.Sprintf("folder %q contains system folder %q", node.Name, n.Name)
		}
		for _, d := range n.Documents {
			if d.IsSystem {
				return fmt.Sprintf("folder %q contains system document %q", node.Name, d.Title)
			}
		}
		stack = append(stack, n.Folders...)
	}
	return ""
}
