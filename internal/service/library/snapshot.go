package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
)

// SnapshotVersion tags every saved payload. Bump it when the stored shape
// changes; older payloads are then discarded and the defaults reseeded.
const SnapshotVersion = "library/v1"

var errVersionMismatch = errors.New("snapshot version mismatch")

type envelope[T any] struct {
	Version string    `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Items   []T       `json:"items"`
}

func encodeSnapshot[T any](items []T, savedAt time.Time) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(envelope[T]{
		Version: SnapshotVersion,
		SavedAt: savedAt.UTC(),
		Items:   items,
	})
}

func decodeSnapshot[T any](data []byte) ([]T, error) {
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if env.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: got %q, want %q", errVersionMismatch, env.Version, SnapshotVersion)
	}
	return env.Items, nil
}

// EncodeFolders serializes the folder collection for the gateway
func EncodeFolders(folders []models.Folder, savedAt time.Time) ([]byte, error) {
	return encodeSnapshot(folders, savedAt)
}

// EncodeDocuments serializes the document collection for the gateway
func EncodeDocuments(docs []models.Document, savedAt time.Time) ([]byte, error) {
	return encodeSnapshot(docs, savedAt)
}

// DecodeFolders parses a folder payload, rejecting other versions
func DecodeFolders(data []byte) ([]models.Folder, error) {
	return decodeSnapshot[models.Folder](data)
}

// DecodeDocuments parses a document payload, rejecting other versions
func DecodeDocuments(data []byte) ([]models.Document, error) {
	return decodeSnapshot[models.Document](data)
}

// ValidateTree checks that folders form a single tree: exactly one root,
// every other folder's parent exists, and every parent chain reaches the root.
func ValidateTree(folders []models.Folder) error {
	byID := make(map[string]*models.Folder, len(folders))
	rootID := ""
	for i := range folders {
		f := &folders[i]
		if _, dup := byID[f.ID]; dup {
			return fmt.Errorf("%w: duplicate folder id %q", domain.ErrCorruptTree, f.ID)
		}
		byID[f.ID] = f
		if f.IsRoot {
			if rootID != "" {
				return fmt.Errorf("%w: more than one root (%q, %q)", domain.ErrCorruptTree, rootID, f.ID)
			}
			rootID = f.ID
		}
	}
	if rootID == "" {
		return fmt.Errorf("%w: no root folder", domain.ErrCorruptTree)
	}

	reaches := map[string]bool{rootID: true}
	for i := range folders {
		f := &folders[i]
		path := make([]string, 0, 4)
		cur := f
		for steps := 0; ; steps++ {
			if reaches[cur.ID] {
				break
			}
			if steps > len(folders) {
				return fmt.Errorf("%w: cycle through folder %q", domain.ErrCorruptTree, f.ID)
			}
			path = append(path, cur.ID)
			if cur.ParentID == nil {
				return fmt.Errorf("%w: folder %q has no parent", domain.ErrCorruptTree, cur.ID)
			}
			parent, ok := byID[*cur.ParentID]
			if !ok {
				return fmt.Errorf("%w: folder %q has missing parent %q", domain.ErrCorruptTree, cur.ID, *cur.ParentID)
			}
			cur = parent
		}
		for _, id := range path {
			reaches[id] = true
		}
	}
	return nil
}
