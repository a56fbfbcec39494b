package library

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/FlamingoLogic/chat-markdown-app/internal/config"
	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/domain/repositories"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/utils"

	"github.com/google/uuid"
)

// treeManager implements the TreeManager interface.
// mu serializes mutations; queries share the read lock.
type treeManager struct {
	mu        sync.RWMutex
	store     *EntityStore
	gateway   repositories.Gateway
	txManager repositories.TransactionManager
	defaults  *Defaults
	index     *categoryIndex
	logger    *slog.Logger

	persistErr error

	now   func() time.Time
	newID func() string
}

// NewTreeManager creates a tree manager seeded with defaults in memory.
// Call Init to load the persisted snapshot.
func NewTreeManager(
	gateway repositories.Gateway,
	txManager repositories.TransactionManager,
	defaults *Defaults,
	logger *slog.Logger,
) (libSvc.TreeManager, error) {
	return newTreeManager(gateway, txManager, defaults, logger)
}

func newTreeManager(
	gateway repositories.Gateway,
	txManager repositories.TransactionManager,
	defaults *Defaults,
	logger *slog.Logger,
) (*treeManager, error) {
	if txManager == nil {
		txManager = repositories.PassthroughTxManager{}
	}
	m := &treeManager{
		store:     NewEntityStore(),
		gateway:   gateway,
		txManager: txManager,
		defaults:  defaults,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	m.index = newCategoryIndex(m, defaults.Categories)
	if err := seedStore(m.store, defaults, m.now()); err != nil {
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return m, nil
}

// Init loads both collections from the gateway. Missing data, a version
// mismatch or an invalid tree reseeds the defaults and saves them; a gateway
// read failure keeps the in-memory defaults without overwriting storage.
func (m *treeManager) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	folderData, err := m.gateway.Load(ctx, repositories.FoldersKey)
	if err != nil {
		m.logger.Warn("failed to load folders, starting from defaults", "error", err)
		return m.seedLocked()
	}
	docData, err := m.gateway.Load(ctx, repositories.DocumentsKey)
	if err != nil {
		m.logger.Warn("failed to load documents, starting from defaults", "error", err)
		return m.seedLocked()
	}

	if folderData == nil {
		m.logger.Info("no saved library found, seeding defaults")
		return m.startFromDefaultsLocked(ctx)
	}

	folders, docs, err := m.decode(folderData, docData)
	if err != nil {
		m.logger.Warn("discarding saved library", "error", err)
		return m.startFromDefaultsLocked(ctx)
	}

	if err := m.store.Restore(folders, docs); err != nil {
		m.logger.Warn("discarding saved library", "error", err)
		return m.startFromDefaultsLocked(ctx)
	}

	if m.reattachDanglingDocumentsLocked() > 0 {
		_ = m.persistLocked(ctx)
	}
	m.logger.Info("library loaded",
		"folder_count", m.store.FolderCount(),
		"document_count", m.store.DocumentCount(),
	)
	return nil
}

func (m *treeManager) decode(folderData, docData []byte) ([]models.Folder, []models.Document, error) {
	folders, err := DecodeFolders(folderData)
	if err != nil {
		return nil, nil, err
	}
	if err := ValidateTree(folders); err != nil {
		return nil, nil, err
	}

	var docs []models.Document
	if docData != nil {
		docs, err = DecodeDocuments(docData)
		if err != nil {
			return nil, nil, err
		}
	}
	for _, d := range docs {
		if d.ID == "" || !d.Status.Valid() {
			return nil, nil, fmt.Errorf("invalid document %q (status %q)", d.ID, d.Status)
		}
	}
	return folders, docs, nil
}

// reattachDanglingDocumentsLocked moves documents whose folder no longer
// exists to the root. This happens when a non-transactional backend saved
// the folders but not the documents. Returns the number moved.
func (m *treeManager) reattachDanglingDocumentsLocked() int {
	rootID := m.rootLocked().ID
	dangling := m.store.Documents(func(d *models.Document) bool {
		return m.store.Folder(d.FolderID) == nil
	})
	for _, d := range dangling {
		m.logger.Warn("document references missing folder, moving to root", "id", d.ID, "folder_id", d.FolderID)
		d.FolderID = rootID
	}
	return len(dangling)
}

// Reset discards the store, reseeds the defaults and saves them
func (m *treeManager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("resetting library to defaults")
	return m.reseedLocked(ctx)
}

func (m *treeManager) seedLocked() error {
	return seedStore(m.store, m.defaults, m.now())
}

// startFromDefaultsLocked reseeds and saves; a save failure is only recorded
func (m *treeManager) startFromDefaultsLocked(ctx context.Context) error {
	if err := m.seedLocked(); err != nil {
		return err
	}
	_ = m.persistLocked(ctx)
	return nil
}

func (m *treeManager) reseedLocked(ctx context.Context) error {
	if err := m.seedLocked(); err != nil {
		return err
	}
	return m.persistLocked(ctx)
}

// persistLocked saves both collections. The in-memory state is never rolled
// back; a failure is logged and kept for LastPersistError.
func (m *treeManager) persistLocked(ctx context.Context) error {
	folders, docs := m.store.Snapshot()
	savedAt := m.now()

	folderData, err := EncodeFolders(folders, savedAt)
	if err != nil {
		return m.recordPersist(fmt.Errorf("encode folders: %w", err))
	}
	docData, err := EncodeDocuments(docs, savedAt)
	if err != nil {
		return m.recordPersist(fmt.Errorf("encode documents: %w", err))
	}

	err = m.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := m.gateway.Save(ctx, repositories.FoldersKey, folderData); err != nil {
			return fmt.Errorf("save folders: %w", err)
		}
		if err := m.gateway.Save(ctx, repositories.DocumentsKey, docData); err != nil {
			return fmt.Errorf("save documents: %w", err)
		}
		return nil
	})
	return m.recordPersist(err)
}

func (m *treeManager) recordPersist(err error) error {
	m.persistErr = err
	if err != nil {
		m.logger.Error("failed to persist library", "error", err)
	}
	return err
}

// LastPersistError returns the most recent save failure, or nil
func (m *treeManager) LastPersistError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.persistErr
}

// CreateFolder creates a new folder under req.ParentID (root when empty)
func (m *treeManager) CreateFolder(ctx context.Context, req *libSvc.CreateFolderRequest) (*models.Folder, error) {
	if err := validateCreateFolderRequest(req); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	parentID := req.ParentID
	if parentID == "" {
		parentID = m.rootLocked().ID
	}
	if m.store.Folder(parentID) == nil {
		return nil, fmt.Errorf("%w: parent folder %q not found", domain.ErrValidation, parentID)
	}

	folder, err := models.NewFolder(m.newID(), req.Name, &parentID, m.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID := *req.CategoryID
		m.warnUnknownCategory(categoryID, "folder", folder.ID)
		folder.CategoryID = &categoryID
	}

	if err := m.store.InsertFolder(folder); err != nil {
		return nil, err
	}
	_ = m.persistLocked(ctx)

	m.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", parentID,
	)

	out := folder.Clone()
	return &out, nil
}

// RenameFolder renames a non-root folder
func (m *treeManager) RenameFolder(ctx context.Context, folderID, name string) (*models.Folder, error) {
	return m.UpdateFolder(ctx, folderID, &libSvc.UpdateFolderRequest{Name: &name})
}

// MoveFolder re-parents a folder. Moving a folder into itself or one of its
// descendants is rejected so the tree stays acyclic.
func (m *treeManager) MoveFolder(ctx context.Context, folderID, newParentID string) (*models.Folder, error) {
	return m.UpdateFolder(ctx, folderID, &libSvc.UpdateFolderRequest{ParentID: &newParentID})
}

// UpdateFolder renames and/or re-parents a folder. Both changes are checked
// before either is applied, and the result is saved once.
func (m *treeManager) UpdateFolder(ctx context.Context, folderID string, req *libSvc.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name == nil && req.ParentID == nil {
		return nil, fmt.Errorf("%w: at least one of name or parent_id must be provided", domain.ErrValidation)
	}
	var name string
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if err := validateFolderName(name); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	folder, err := m.folderLocked(folderID)
	if err != nil {
		return nil, err
	}
	if folder.IsRoot {
		if req.Name != nil {
			return nil, fmt.Errorf("%w: the root folder cannot be renamed", domain.ErrValidation)
		}
		return nil, fmt.Errorf("%w: the root folder cannot be moved", domain.ErrValidation)
	}

	newParentID := folder.Parent()
	if req.ParentID != nil {
		newParentID = *req.ParentID
		if newParentID == "" {
			newParentID = m.rootLocked().ID
		}
		if m.store.Folder(newParentID) == nil {
			return nil, fmt.Errorf("%w: parent folder %q not found", domain.ErrValidation, newParentID)
		}
		if newParentID == folderID || isDescendant(m.store.Folders(nil), folderID, newParentID) {
			return nil, fmt.Errorf("%w: cannot move a folder into itself or one of its subfolders", domain.ErrValidation)
		}
	}

	changed := false
	if req.Name != nil && folder.Name != name {
		m.logger.Info("folder renamed", "id", folderID, "old_name", folder.Name, "name", name)
		folder.Name = name
		changed = true
	}
	if folder.Parent() != newParentID {
		folder.ParentID = &newParentID
		changed = true
		m.logger.Info("folder moved", "id", folderID, "parent_id", newParentID)
	}
	if changed {
		_ = m.persistLocked(ctx)
	}

	out := folder.Clone()
	return &out, nil
}

// DeleteFolder removes a folder and every folder below it. Documents directly
// in the folder move to its parent (root when the parent is missing);
// documents in descendant folders are removed with those folders.
func (m *treeManager) DeleteFolder(ctx context.Context, folderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	folder := m.store.Folder(folderID)
	if folder == nil {
		return nil
	}
	if folder.IsRoot {
		return fmt.Errorf("%w: the root folder cannot be deleted", domain.ErrValidation)
	}

	// 1. Resolve the parent
	parent := m.store.Folder(folder.Parent())
	if parent == nil {
		parent = m.rootLocked()
	}

	// 2. Reassign direct documents
	reassigned := 0
	for _, d := range m.store.Documents(func(d *models.Document) bool { return d.FolderID == folderID }) {
		d.FolderID = parent.ID
		reassigned++
	}

	// 3. Descendant closure
	removed := CollectDescendants(m.store.Folders(nil), folderID)

	// 4. Remove target, descendants and the documents inside descendants
	doomedDocs := make(map[string]struct{})
	for _, d := range m.store.Documents(func(d *models.Document) bool {
		_, inside := removed[d.FolderID]
		return inside
	}) {
		doomedDocs[d.ID] = struct{}{}
	}
	removed[folderID] = struct{}{}
	m.store.RemoveFolders(removed)
	m.store.RemoveDocuments(doomedDocs)

	_ = m.persistLocked(ctx)

	m.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"folders_removed", len(removed),
		"documents_reassigned", reassigned,
		"documents_removed", len(doomedDocs),
	)
	return nil
}

// MoveDocument sets the document's folder. The destination is not checked
// here; callers validate it.
func (m *treeManager) MoveDocument(ctx context.Context, documentID, newFolderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.documentLocked(documentID)
	if err != nil {
		return err
	}
	if doc.FolderID == newFolderID {
		return nil
	}

	oldFolderID := doc.FolderID
	doc.FolderID = newFolderID
	_ = m.persistLocked(ctx)

	m.logger.Info("document moved", "id", documentID, "from", oldFolderID, "to", newFolderID)
	return nil
}

// CreateDocument adds a document to a folder (root when FolderID is empty)
func (m *treeManager) CreateDocument(ctx context.Context, req *libSvc.CreateDocumentRequest) (*models.Document, error) {
	if err := validateCreateDocumentRequest(req); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	folderID := req.FolderID
	if folderID == "" {
		folderID = m.rootLocked().ID
	}
	if m.store.Folder(folderID) == nil {
		return nil, fmt.Errorf("%w: folder %q not found", domain.ErrValidation, folderID)
	}

	id := req.ID
	if id == "" {
		id = m.newID()
	}

	doc, err := models.NewDocument(id, req.Title, req.Content, folderID, req.Status, m.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID := *req.CategoryID
		m.warnUnknownCategory(categoryID, "document", id)
		doc.CategoryID = &categoryID
	}
	doc.Source = req.Source
	if doc.Source == "" {
		doc.Source = "manual"
	}
	doc.WordCount = utils.CountWords(doc.Content)

	if err := m.store.InsertDocument(doc); err != nil {
		return nil, err
	}
	_ = m.persistLocked(ctx)

	m.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"folder_id", doc.FolderID,
		"status", doc.Status,
		"source", doc.Source,
	)

	out := doc.Clone()
	return &out, nil
}

// UpdateDocument changes title, content, status or category of a document
func (m *treeManager) UpdateDocument(ctx context.Context, documentID string, req *libSvc.UpdateDocumentRequest) (*models.Document, error) {
	if err := validateUpdateDocumentRequest(req); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.documentLocked(documentID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Content != nil {
		doc.Content = *req.Content
		doc.Size = len(doc.Content)
		doc.WordCount = utils.CountWords(doc.Content)
	}
	if req.Status != nil {
		status, err := models.ParseStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		m.setStatusLocked(doc, status)
	}
	doc.CategoryID = req.CategoryID.Apply(doc.CategoryID)
	if req.CategoryID.Present && doc.CategoryID != nil {
		m.warnUnknownCategory(*doc.CategoryID, "document", documentID)
	}

	_ = m.persistLocked(ctx)

	m.logger.Info("document updated", "id", doc.ID, "title", doc.Title, "status", doc.Status)

	out := doc.Clone()
	return &out, nil
}

// SetDocumentStatus publishes, unpublishes or archives a document
func (m *treeManager) SetDocumentStatus(ctx context.Context, documentID string, status models.DocumentStatus) (*models.Document, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.documentLocked(documentID)
	if err != nil {
		return nil, err
	}
	if m.setStatusLocked(doc, status) {
		_ = m.persistLocked(ctx)
	}

	out := doc.Clone()
	return &out, nil
}

// setStatusLocked applies a status change and reports whether anything changed
func (m *treeManager) setStatusLocked(doc *models.Document, status models.DocumentStatus) bool {
	if doc.Status == status {
		return false
	}
	m.logger.Info("document status changed", "id", doc.ID, "from", doc.Status, "to", status)
	doc.Status = status
	return true
}

// DeleteDocument removes a document
func (m *treeManager) DeleteDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.documentLocked(documentID)
	if err != nil {
		return err
	}
	m.store.RemoveDocuments(map[string]struct{}{documentID: {}})
	_ = m.persistLocked(ctx)

	m.logger.Info("document deleted", "id", documentID, "title", doc.Title)
	return nil
}

// ResolveCurrentFolder returns the folder, or the root when it does not exist
func (m *treeManager) ResolveCurrentFolder(currentFolderID string) models.Folder {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolveLocked(currentFolderID).Clone()
}

// BreadcrumbPath returns the resolved folder and its ancestors, top-level
// ancestor first, root excluded. Walks longer than the folder count mean a
// cycle and fail with ErrCorruptTree.
func (m *treeManager) BreadcrumbPath(currentFolderID string) ([]models.Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.breadcrumbLocked(currentFolderID)
}

func (m *treeManager) breadcrumbLocked(currentFolderID string) ([]models.Folder, error) {
	limit := m.store.FolderCount()
	path := make([]models.Folder, 0, 4)

	cur := m.resolveLocked(currentFolderID)
	for steps := 0; !cur.IsRoot; steps++ {
		if steps >= limit {
			return nil, fmt.Errorf("%w: parent chain of %q does not reach the root", domain.ErrCorruptTree, currentFolderID)
		}
		path = append(path, cur.Clone())
		parent := m.store.Folder(cur.Parent())
		if parent == nil {
			return nil, fmt.Errorf("%w: folder %q has missing parent %q", domain.ErrCorruptTree, cur.ID, cur.Parent())
		}
		cur = parent
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// ListChildren lists the immediate child folders of parentID
func (m *treeManager) ListChildren(parentID string) []models.Folder {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.childrenLocked(parentID)
}

func (m *treeManager) childrenLocked(parentID string) []models.Folder {
	children := m.store.Folders(func(f *models.Folder) bool {
		return f.ParentID != nil && *f.ParentID == parentID
	})
	out := make([]models.Folder, 0, len(children))
	for _, f := range children {
		out = append(out, f.Clone())
	}
	return out
}

// ListDocumentsIn lists documents (without content) in the category when one
// is set, otherwise in the resolved folder
func (m *treeManager) ListDocumentsIn(q libSvc.DocumentQuery) []models.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documentsInLocked(q)
}

func (m *treeManager) documentsInLocked(q libSvc.DocumentQuery) []models.Document {
	var match func(*models.Document) bool
	if q.CategoryID != "" {
		match = func(d *models.Document) bool { return d.Category() == q.CategoryID }
	} else {
		folderID := m.resolveLocked(q.FolderID).ID
		match = func(d *models.Document) bool { return d.FolderID == folderID }
	}

	docs := m.store.Documents(func(d *models.Document) bool {
		return match(d) && (q.IncludeDrafts || d.IsPublished())
	})
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Summary())
	}
	return out
}

// Browse assembles the view for a location. In category view the child
// folder list is empty and documents come from the whole library.
func (m *treeManager) Browse(q libSvc.DocumentQuery) (*models.BrowseView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	view := &models.BrowseView{
		Folder:  m.resolveLocked(q.FolderID).Clone(),
		Folders: []models.Folder{},
	}

	if q.CategoryID != "" {
		category, ok := m.index.lookup(q.CategoryID)
		if !ok {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("category %q not found", q.CategoryID)}
		}
		view.Category = category
	} else {
		view.Folders = m.childrenLocked(view.Folder.ID)
	}

	breadcrumb, err := m.breadcrumbLocked(view.Folder.ID)
	if err != nil {
		return nil, err
	}
	view.Breadcrumb = breadcrumb
	view.Documents = m.documentsInLocked(q)
	return view, nil
}

// Tree builds the nested folder/document tree using a 3-pass build.
// Documents whose folder is missing are left out.
func (m *treeManager) Tree(includeDrafts bool) *models.TreeNode {
	m.mu.RLock()
	defer m.mu.RUnlock()

	allFolders := m.store.Folders(nil)
	folderMap := make(map[string]*models.FolderTreeNode, len(allFolders))

	// First pass: create all folder nodes
	for _, f := range allFolders {
		c := f.Clone()
		folderMap[f.ID] = &models.FolderTreeNode{
			ID:         c.ID,
			Name:       c.Name,
			ParentID:   c.ParentID,
			CategoryID: c.CategoryID,
			IsSystem:   c.IsSystemFolder,
			CreatedAt:  c.CreatedAt,
			Folders:    []*models.FolderTreeNode{},
			Documents:  []models.DocumentTreeNode{},
		}
	}

	// Second pass: nest folders under their parents
	for _, f := range allFolders {
		if f.ParentID == nil {
			continue
		}
		if parent, ok := folderMap[*f.ParentID]; ok {
			parent.Folders = append(parent.Folders, folderMap[f.ID])
		}
	}

	// Third pass: add documents to their folders
	docCount := 0
	for _, d := range m.store.Documents(nil) {
		if !includeDrafts && !d.IsPublished() {
			continue
		}
		parent, ok := folderMap[d.FolderID]
		if !ok {
			continue
		}
		c := d.Clone()
		parent.Documents = append(parent.Documents, models.DocumentTreeNode{
			ID:         c.ID,
			Title:      c.Title,
			Status:     c.Status,
			CategoryID: c.CategoryID,
			WordCount:  c.WordCount,
			UploadedAt: c.UploadedAt,
			IsSystem:   c.IsSystemDocument,
		})
		docCount++
	}

	tree := &models.TreeNode{
		Folders:   len(allFolders),
		Documents: docCount,
	}
	if root := m.rootLocked(); root != nil {
		tree.Root = *folderMap[root.ID]
	}
	return tree
}

// GetFolder retrieves a folder by ID
func (m *treeManager) GetFolder(folderID string) (*models.Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, err := m.folderLocked(folderID)
	if err != nil {
		return nil, err
	}
	out := f.Clone()
	return &out, nil
}

// FolderExists reports whether folderID names a live folder
func (m *treeManager) FolderExists(folderID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Folder(folderID) != nil
}

// GetDocument retrieves a document by ID, content included
func (m *treeManager) GetDocument(documentID string) (*models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, err := m.documentLocked(documentID)
	if err != nil {
		return nil, err
	}
	out := d.Clone()
	return &out, nil
}

// SearchDocuments matches the query against title and content, case-insensitively.
// Title matches sort first; results are capped at config.MaxSearchResults.
func (m *treeManager) SearchDocuments(query string, includeDrafts bool) []models.Document {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []models.Document{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	type hit struct {
		doc     models.Document
		inTitle bool
	}
	var hits []hit
	for _, d := range m.store.Documents(nil) {
		if !includeDrafts && !d.IsPublished() {
			continue
		}
		inTitle := strings.Contains(strings.ToLower(d.Title), query)
		if inTitle || strings.Contains(strings.ToLower(d.Content), query) {
			hits = append(hits, hit{doc: d.Summary(), inTitle: inTitle})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].inTitle && !hits[j].inTitle })

	if len(hits) > config.MaxSearchResults {
		hits = hits[:config.MaxSearchResults]
	}
	out := make([]models.Document, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.doc)
	}
	return out
}

// Categories exposes the category index over the same store
func (m *treeManager) Categories() libSvc.CategoryIndex {
	return m.index
}

func (m *treeManager) rootLocked() *models.Folder {
	return m.store.Root()
}

func (m *treeManager) resolveLocked(folderID string) *models.Folder {
	if f := m.store.Folder(folderID); f != nil {
		return f
	}
	return m.rootLocked()
}

func (m *treeManager) folderLocked(folderID string) (*models.Folder, error) {
	f := m.store.Folder(folderID)
	if f == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", folderID)}
	}
	return f, nil
}

func (m *treeManager) documentLocked(documentID string) (*models.Document, error) {
	d := m.store.Document(documentID)
	if d == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %q not found", documentID)}
	}
	return d, nil
}

// warnUnknownCategory logs tags that do not match a known category.
// Unknown tags are kept.
func (m *treeManager) warnUnknownCategory(categoryID, kind, id string) {
	if _, ok := m.index.lookup(categoryID); !ok {
		m.logger.Warn("unknown category tag", "category_id", categoryID, "kind", kind, "id", id)
	}
}

