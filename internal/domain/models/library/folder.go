package library

import (
	"errors"
	"strings"
	"time"
)

// RootFolderID is the reserved id of the single root folder.
const RootFolderID = "root"

// RootFolderName is the display name of the root folder.
const RootFolderName = "Home"

type Folder struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ParentID       *string   `json:"parent_id"`   // nil only for the root
	CategoryID     *string   `json:"category_id"` // nil for ordinary folders
	IsRoot         bool      `json:"is_root"`
	IsSystemFolder bool      `json:"is_system_folder,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewFolder builds a non-root folder, validating required fields.
func NewFolder(id, name string, parentID *string, createdAt time.Time) (*Folder, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("folder id is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("folder name is required")
	}
	if parentID == nil || *parentID == "" {
		return nil, errors.New("folder parent is required")
	}
	parent := *parentID
	return &Folder{
		ID:        id,
		Name:      name,
		ParentID:  &parent,
		CreatedAt: createdAt,
	}, nil
}

// NewRootFolder builds the tree's single entry point.
func NewRootFolder(createdAt time.Time) *Folder {
	return &Folder{
		ID:             RootFolderID,
		Name:           RootFolderName,
		IsRoot:         true,
		IsSystemFolder: true,
		CreatedAt:      createdAt,
	}
}

// Parent returns the parent id, or "" for the root.
func (f *Folder) Parent() string {
	if f.ParentID == nil {
		return ""
	}
	return *f.ParentID
}

// Category returns the category tag, or "" when untagged.
func (f *Folder) Category() string {
	if f.CategoryID == nil {
		return ""
	}
	return *f.CategoryID
}

// Clone returns a deep copy so callers never share pointers with the store.
func (f Folder) Clone() Folder {
	if f.ParentID != nil {
		p := *f.ParentID
		f.ParentID = &p
	}
	if f.CategoryID != nil {
		c := *f.CategoryID
		f.CategoryID = &c
	}
	return f
}
