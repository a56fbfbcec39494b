package library

import (
	"context"

	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"
)

// TreeManager owns the folder/document store and is the only component that
// mutates it. Every mutator updates memory first and then persists.
type TreeManager interface {
	// Init loads the snapshot from the gateway, falling back to defaults
	Init(ctx context.Context) error

	// Reset discards all state, reseeds defaults and persists them
	Reset(ctx context.Context) error

	// CreateFolder creates a folder under req.ParentID (root when empty)
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// RenameFolder renames a non-root folder
	RenameFolder(ctx context.Context, folderID, name string) (*models.Folder, error)

	// MoveFolder re-parents a folder, refusing moves that would create a cycle
	MoveFolder(ctx context.Context, folderID, newParentID string) (*models.Folder, error)

	// UpdateFolder applies a rename and/or move as one change. Nothing is
	// applied unless both parts are valid.
	UpdateFolder(ctx context.Context, folderID string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder removes a folder and all its descendant folders.
	// Documents directly inside the folder move to its parent; documents in
	// descendant folders are removed with them. Unknown ids are a no-op.
	DeleteFolder(ctx context.Context, folderID string) error

	// MoveDocument sets a document's folder. The destination is not checked.
	MoveDocument(ctx context.Context, documentID, newFolderID string) error

	// CreateDocument adds a document to a folder
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)

	// UpdateDocument changes title, content, status or category of a document
	UpdateDocument(ctx context.Context, documentID string, req *UpdateDocumentRequest) (*models.Document, error)

	// SetDocumentStatus publishes, unpublishes or archives a document
	SetDocumentStatus(ctx context.Context, documentID string, status models.DocumentStatus) (*models.Document, error)

	// DeleteDocument removes a document
	DeleteDocument(ctx context.Context, documentID string) error

	// ResolveCurrentFolder returns the folder, or the root when it does not exist
	ResolveCurrentFolder(currentFolderID string) models.Folder

	// BreadcrumbPath returns the ancestors of the current folder from the top
	// level down to the folder itself, excluding the root
	BreadcrumbPath(currentFolderID string) ([]models.Folder, error)

	// ListChildren lists the immediate child folders of parentID
	ListChildren(parentID string) []models.Folder

	// ListDocumentsIn lists documents in the category (if set) or the folder
	ListDocumentsIn(q DocumentQuery) []models.Document

	// Browse assembles the view for a location
	Browse(q DocumentQuery) (*models.BrowseView, error)

	// Tree builds the nested folder/document tree
	Tree(includeDrafts bool) *models.TreeNode

	// GetFolder retrieves a folder by ID
	GetFolder(folderID string) (*models.Folder, error)

	// FolderExists reports whether folderID names a live folder
	FolderExists(folderID string) bool

	// GetDocument retrieves a document by ID
	GetDocument(documentID string) (*models.Document, error)

	// SearchDocuments matches title or content, case-insensitively
	SearchDocuments(query string, includeDrafts bool) []models.Document

	// Categories exposes the category index over the same store
	Categories() CategoryIndex

	// LastPersistError returns the most recent save failure, or nil
	LastPersistError() error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name       string  `json:"name"`
	ParentID   string  `json:"parent_id,omitempty"`   // empty = root
	CategoryID *string `json:"category_id,omitempty"` // optional category tag
}

// UpdateFolderRequest represents a folder update request (rename and/or move)
type UpdateFolderRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CreateDocumentRequest represents a document creation request.
// Uploads and manual creation both end here.
type CreateDocumentRequest struct {
	ID         string                `json:"id,omitempty"` // optional caller-assigned id
	Title      string                `json:"title"`
	Content    string                `json:"content"`
	FolderID   string                `json:"folder_id,omitempty"` // empty = root
	CategoryID *string               `json:"category_id,omitempty"`
	Status     models.DocumentStatus `json:"status,omitempty"` // default draft
	Source     string                `json:"source,omitempty"`
}

// UpdateDocumentRequest represents a document update request
type UpdateDocumentRequest struct {
	Title      *string                 `json:"title,omitempty"`
	Content    *string                 `json:"content,omitempty"`
	Status     *string                 `json:"status,omitempty"`
	CategoryID httputil.OptionalString `json:"category_id"` // absent = keep, null = clear
}

// MoveDocumentRequest is the body of a document move
type MoveDocumentRequest struct {
	FolderID string `json:"folder_id"`
}

// DocumentQuery selects the documents in view. A non-empty CategoryID
// activates the category view and FolderID is ignored.
type DocumentQuery struct {
	FolderID      string
	CategoryID    string
	IncludeDrafts bool // false = published only (user mode)
}
