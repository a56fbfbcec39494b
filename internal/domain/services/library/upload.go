package library

import (
	"context"
	"io"
)

// ContentConverter converts file content to markdown format.
// Each converter handles a specific file type (md, txt, html, ...) and
// produces markdown suitable for storage.
type ContentConverter interface {
	// Convert transforms input content to markdown.
	Convert(ctx context.Context, input []byte) (markdown string, err error)

	// SupportedExtensions returns file extensions this converter handles,
	// including the leading dot (e.g. [".html", ".htm"]).
	SupportedExtensions() []string

	// Name returns a human-readable converter name, stored as the document source.
	Name() string
}

// UploadService turns uploaded files into documents
type UploadService interface {
	// Upload converts one file and creates a draft document from it
	Upload(ctx context.Context, req *UploadRequest) (*UploadResult, error)

	// ImportDirectory uploads every file under a directory matching a glob,
	// mirroring sub-directories as folders
	ImportDirectory(ctx context.Context, req *ImportRequest) (*ImportResult, error)

	// SupportedExtensions lists the extensions Upload accepts
	SupportedExtensions() []string
}

// UploadRequest represents one uploaded file
type UploadRequest struct {
	Filename   string
	Content    io.Reader
	FolderID   string  // empty = root
	CategoryID *string // overrides frontmatter
}

// UploadResult reports the created document
type UploadResult struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	FolderID   string `json:"folder_id"`
	Converter  string `json:"converter"`
	Size       int    `json:"size"`
}

// ImportRequest describes a directory import
type ImportRequest struct {
	Dir      string // directory on local disk
	Pattern  string // doublestar glob relative to Dir; empty = markdown files
	FolderID string // destination; empty = root
	Publish  bool   // publish imported documents instead of leaving drafts
}

// ImportError reports one file that could not be imported
type ImportError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ImportResult summarizes a directory import
type ImportResult struct {
	Documents      []UploadResult `json:"documents"`
	Errors         []ImportError  `json:"errors"`
	FoldersCreated int            `json:"folders_created"`
}
