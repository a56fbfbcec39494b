package library

import (
	"fmt"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
)

// EntityStore holds the folder and document collections keyed by id.
// Insertion order is kept so listings are stable between calls.
// It is not safe for concurrent use; the tree manager owns the lock.
type EntityStore struct {
	folders     map[string]*models.Folder
	folderOrder []string
	docs        map[string]*models.Document
	docOrder    []string
}

// NewEntityStore creates an empty store
func NewEntityStore() *EntityStore {
	s := &EntityStore{}
	s.Reset()
	return s
}

// Reset empties both collections
func (s *EntityStore) Reset() {
	s.folders = make(map[string]*models.Folder)
	s.folderOrder = nil
	s.docs = make(map[string]*models.Document)
	s.docOrder = nil
}

// InsertFolder adds a folder, rejecting a duplicate id
func (s *EntityStore) InsertFolder(f *models.Folder) error {
	if _, exists := s.folders[f.ID]; exists {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("folder %q already exists", f.ID),
			ResourceType: "folder",
			ResourceID:   f.ID,
		}
	}
	s.folders[f.ID] = f
	s.folderOrder = append(s.folderOrder, f.ID)
	return nil
}

// InsertDocument adds a document, rejecting a duplicate id
func (s *EntityStore) InsertDocument(d *models.Document) error {
	if _, exists := s.docs[d.ID]; exists {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("document %q already exists", d.ID),
			ResourceType: "document",
			ResourceID:   d.ID,
		}
	}
	s.docs[d.ID] = d
	s.docOrder = append(s.docOrder, d.ID)
	return nil
}

// Folder returns the stored folder (not a copy), or nil
func (s *EntityStore) Folder(id string) *models.Folder {
	return s.folders[id]
}

// Document returns the stored document (not a copy), or nil
func (s *EntityStore) Document(id string) *models.Document {
	return s.docs[id]
}

// Root returns the folder flagged IsRoot, or nil when the store is empty
func (s *EntityStore) Root() *models.Folder {
	if f, ok := s.folders[models.RootFolderID]; ok && f.IsRoot {
		return f
	}
	for _, id := range s.folderOrder {
		if f := s.folders[id]; f.IsRoot {
			return f
		}
	}
	return nil
}

// Folders returns the folders matching pred in insertion order.
// A nil pred matches everything.
func (s *EntityStore) Folders(pred func(*models.Folder) bool) []*models.Folder {
	out := make([]*models.Folder, 0)
	for _, id := range s.folderOrder {
		f := s.folders[id]
		if pred == nil || pred(f) {
			out = append(out, f)
		}
	}
	return out
}

// Documents returns the documents matching pred in insertion order
func (s *EntityStore) Documents(pred func(*models.Document) bool) []*models.Document {
	out := make([]*models.Document, 0)
	for _, id := range s.docOrder {
		d := s.docs[id]
		if pred == nil || pred(d) {
			out = append(out, d)
		}
	}
	return out
}

// FolderCount returns the number of folders
func (s *EntityStore) FolderCount() int { return len(s.folders) }

// DocumentCount returns the number of documents
func (s *EntityStore) DocumentCount() int { return len(s.docs) }

// RemoveFolders deletes every folder whose id is in ids
func (s *EntityStore) RemoveFolders(ids map[string]struct{}) {
	if len(ids) == 0 {
		return
	}
	kept := s.folderOrder[:0]
	for _, id := range s.folderOrder {
		if _, drop := ids[id]; drop {
			delete(s.folders, id)
			continue
		}
		kept = append(kept, id)
	}
	s.folderOrder = kept
}

// RemoveDocuments deletes every document whose id is in ids
func (s *EntityStore) RemoveDocuments(ids map[string]struct{}) {
	if len(ids) == 0 {
		return
	}
	kept := s.docOrder[:0]
	for _, id := range s.docOrder {
		if _, drop := ids[id]; drop {
			delete(s.docs, id)
			continue
		}
		kept = append(kept, id)
	}
	s.docOrder = kept
}

// Snapshot copies both collections in insertion order
func (s *EntityStore) Snapshot() ([]models.Folder, []models.Document) {
	folders := make([]models.Folder, 0, len(s.folderOrder))
	for _, id := range s.folderOrder {
		folders = append(folders, s.folders[id].Clone())
	}
	docs := make([]models.Document, 0, len(s.docOrder))
	for _, id := range s.docOrder {
		docs = append(docs, s.docs[id].Clone())
	}
	return folders, docs
}

// Restore replaces the contents with the given collections.
// On a duplicate id the store is left empty and the error returned.
func (s *EntityStore) Restore(folders []models.Folder, docs []models.Document) error {
	s.Reset()
	for i := range folders {
		f := folders[i].Clone()
		if err := s.InsertFolder(&f); err != nil {
			s.Reset()
			return err
		}
	}
	for i := range docs {
		d := docs[i].Clone()
		if err := s.InsertDocument(&d); err != nil {
			s.Reset()
			return err
		}
	}
	return nil
}
