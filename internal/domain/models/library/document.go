package library

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DocumentStatus is the publication state of a document
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusPublished DocumentStatus = "published"
	StatusArchived  DocumentStatus = "archived"
)

// Valid reports whether s is one of the known statuses
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ParseStatus converts user input into a DocumentStatus
func ParseStatus(s string) (DocumentStatus, error) {
	status := DocumentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q (expected draft, published or archived)", s)
	}
	return status, nil
}

type Document struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Content          string         `json:"content"` // Markdown body
	Status           DocumentStatus `json:"status"`
	FolderID         string         `json:"folder_id"`
	CategoryID       *string        `json:"category_id"`
	UploadedAt       time.Time      `json:"uploaded_at"`
	IsSystemDocument bool           `json:"is_system_document,omitempty"`
	Source           string         `json:"source,omitempty"` // converter that produced the content
	Size             int            `json:"size"`
	WordCount        int            `json:"word_count"`
}

// NewDocument builds a document, validating required fields at creation.
// An empty status defaults to draft.
func NewDocument(id, title, content, folderID string, status DocumentStatus, uploadedAt time.Time) (*Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("document id is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("document title is required")
	}
	if folderID == "" {
		return nil, errors.New("document folder is required")
	}
	if status == "" {
		status = StatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	return &Document{
		ID:         id,
		Title:      title,
		Content:    content,
		Status:     status,
		FolderID:   folderID,
		UploadedAt: uploadedAt,
		Size:       len(content),
	}, nil
}

// Category returns the category tag, or "" when untagged.
func (d *Document) Category() string {
	if d.CategoryID == nil {
		return ""
	}
	return *d.CategoryID
}

// IsPublished reports whether non-manager sessions may see the document
func (d *Document) IsPublished() bool {
	return d.Status == StatusPublished
}

// Clone returns a deep copy so callers never share pointers with the store.
func (d Document) Clone() Document {
	if d.CategoryID != nil {
		c := *d.CategoryID
		d.CategoryID = &c
	}
	return d
}

// Summary strips the content, for listings.
func (d Document) Summary() Document {
	d = d.Clone()
	d.Content = ""
	return d
}
