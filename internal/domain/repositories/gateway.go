package repositories

import "context"

// Storage keys under which the library snapshot is persisted.
const (
	FoldersKey   = "library.folders"
	DocumentsKey = "library.documents"
)

// Gateway is the persistence boundary for the library: an opaque key/value
// store. Implementations know nothing about folders or documents.
type Gateway interface {
	// Load returns the bytes stored under key, or nil (and no error) when
	// nothing has been saved yet.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the bytes stored under key.
	Save(ctx context.Context, key string, data []byte) error
}

// Closer is implemented by gateways that hold connections or file handles.
type Closer interface {
	Close() error
}

// Purger is implemented by gateways that can drop every stored key at once.
type Purger interface {
	Purge(ctx context.Context) error
}
