package library

import "time"

// TreeNode represents the root of the library tree
type TreeNode struct {
	Root      FolderTreeNode `json:"root"`
	Folders   int            `json:"folder_count"`
	Documents int            `json:"document_count"`
}

// FolderTreeNode represents a folder in the tree with nested children
type FolderTreeNode struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	ParentID   *string            `json:"parent_id"`
	CategoryID *string            `json:"category_id,omitempty"`
	IsSystem   bool               `json:"is_system_folder,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	Folders    []*FolderTreeNode  `json:"folders"` // Pointers for proper nesting
	Documents  []DocumentTreeNode `json:"documents"`
}

// DocumentTreeNode represents a document in the tree (metadata only, no content)
type DocumentTreeNode struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Status     DocumentStatus `json:"status"`
	CategoryID *string        `json:"category_id,omitempty"`
	WordCount  int            `json:"word_count"`
	UploadedAt time.Time      `json:"uploaded_at"`
	IsSystem   bool           `json:"is_system_document,omitempty"`
}

// BrowseView is what the document list renders for the current location:
// the resolved folder, its breadcrumb, its child folders and the documents in view.
type BrowseView struct {
	Folder     Folder     `json:"folder"`
	Breadcrumb []Folder   `json:"breadcrumb"`
	Folders    []Folder   `json:"folders"`
	Documents  []Document `json:"documents"`
	Category   *Category  `json:"category,omitempty"` // set when the category view is active
}
