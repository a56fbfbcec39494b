package library

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/domain/repositories"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"
	"github.com/FlamingoLogic/chat-markdown-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func folderIDs(folders []models.Folder) []string {
	ids := make([]string, 0, len(folders))
	for _, f := range folders {
		ids = append(ids, f.ID)
	}
	return ids
}

func documentIDs(docs []models.Document) []string {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestInit_SeedsAndSavesWhenStoreIsEmpty(t *testing.T) {
	gw := memory.NewGateway()
	m := newTestManager(t, gw, nil)

	assert.Equal(t, 2, gw.Keys())
	assert.NoError(t, m.LastPersistError())

	root := m.ResolveCurrentFolder("")
	assert.True(t, root.IsRoot)
	assert.Equal(t, models.RootFolderID, root.ID)
	assert.Equal(t, models.RootFolderName, root.Name)

	children := m.ListChildren(root.ID)
	require.Len(t, children, 4)
	for _, c := range children {
		assert.True(t, c.IsSystemFolder, c.ID)
		assert.NotNil(t, c.CategoryID, c.ID)
	}

	welcome, err := m.GetDocument("welcome")
	require.NoError(t, err)
	assert.True(t, welcome.IsSystemDocument)
	assert.True(t, welcome.IsPublished())
	assert.Equal(t, "getting-started", welcome.Category())
	assert.Equal(t, "category-getting-started", welcome.FolderID)
	assert.Positive(t, welcome.WordCount)
}

func TestInit_RoundTripsSavedLibrary(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	m1 := newTestManager(t, gw, nil)

	a := mustCreateFolder(t, m1, "Handbooks", "")
	b := mustCreateFolder(t, m1, "Engineering", a)
	mustCreateDocument(t, m1, &libSvc.CreateDocumentRequest{
		Title:      "On-call",
		Content:    "# On-call\n\nRotate weekly.",
		FolderID:   b,
		CategoryID: strPtr("guides"),
		Status:     models.StatusPublished,
	})
	_, err := m1.SetDocumentStatus(ctx, "welcome", models.StatusArchived)
	require.NoError(t, err)

	m2 := newTestManager(t, gw, nil)

	f1, d1 := m1.store.Snapshot()
	f2, d2 := m2.store.Snapshot()
	assert.Equal(t, f1, f2)
	assert.Equal(t, d1, d2)
}

func TestInit_VersionMismatchReseeds(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	require.NoError(t, gw.Save(ctx, repositories.FoldersKey, []byte(`{"version":"library/v0","items":[]}`)))
	require.NoError(t, gw.Save(ctx, repositories.DocumentsKey, []byte(`{"version":"library/v0","items":[]}`)))

	m := newTestManager(t, gw, nil)

	assert.Len(t, m.ListChildren(models.RootFolderID), 4)

	data, err := gw.Load(ctx, repositories.FoldersKey)
	require.NoError(t, err)
	folders, err := DecodeFolders(data)
	require.NoError(t, err, "defaults should be saved with the current version")
	assert.Len(t, folders, 5)
}

func TestInit_CorruptTreeReseeds(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()

	root := models.NewRootFolder(fixedTime)
	folders := []models.Folder{
		*root,
		{ID: "a", Name: "A", ParentID: strPtr("b")},
		{ID: "b", Name: "B", ParentID: strPtr("a")},
	}
	data, err := EncodeFolders(folders, fixedTime)
	require.NoError(t, err)
	require.NoError(t, gw.Save(ctx, repositories.FoldersKey, data))

	m := newTestManager(t, gw, nil)

	assert.False(t, m.FolderExists("a"))
	assert.False(t, m.FolderExists("b"))
	assert.Len(t, m.ListChildren(models.RootFolderID), 4)
}

func TestInit_ReattachesDanglingDocumentsToRoot(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()

	folders := []models.Folder{*models.NewRootFolder(fixedTime), *folder("a", "root")}
	docs := []models.Document{
		{ID: "kept", Title: "Kept", Status: models.StatusDraft, FolderID: "a"},
		{ID: "stray", Title: "Stray", Status: models.StatusDraft, FolderID: "deleted-folder"},
	}
	folderData, err := EncodeFolders(folders, fixedTime)
	require.NoError(t, err)
	docData, err := EncodeDocuments(docs, fixedTime)
	require.NoError(t, err)
	require.NoError(t, gw.Save(ctx, repositories.FoldersKey, folderData))
	require.NoError(t, gw.Save(ctx, repositories.DocumentsKey, docData))

	m := newTestManager(t, gw, nil)

	stray, err := m.GetDocument("stray")
	require.NoError(t, err)
	assert.Equal(t, models.RootFolderID, stray.FolderID)
	kept, err := m.GetDocument("kept")
	require.NoError(t, err)
	assert.Equal(t, "a", kept.FolderID)

	saved, err := gw.Load(ctx, repositories.DocumentsKey)
	require.NoError(t, err)
	savedDocs, err := DecodeDocuments(saved)
	require.NoError(t, err)
	for _, d := range savedDocs {
		if d.ID == "stray" {
			assert.Equal(t, models.RootFolderID, d.FolderID, "the repair is saved")
		}
	}
}

func TestInit_LoadFailureKeepsDefaultsWithoutSaving(t *testing.T) {
	gw := &failingGateway{Gateway: memory.NewGateway(), failLoad: true}
	m := newTestManager(t, gw, nil)

	assert.Zero(t, gw.saves, "an unreadable store must not be overwritten")
	_, err := m.GetDocument("welcome")
	assert.NoError(t, err)
}

func TestPersistFailure_RecordedWithoutRollback(t *testing.T) {
	gw := &failingGateway{Gateway: memory.NewGateway(), failSave: true}
	m := newTestManager(t, gw, nil)
	assert.ErrorIs(t, m.LastPersistError(), errStorageDown)

	id := mustCreateFolder(t, m, "Drafts", "")
	assert.True(t, m.FolderExists(id), "memory keeps the change")
	assert.ErrorIs(t, m.LastPersistError(), errStorageDown)

	gw.failSave = false
	mustCreateFolder(t, m, "Archive", "")
	assert.NoError(t, m.LastPersistError())
}

func TestReset_RestoresDefaults(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	m := newTestManager(t, gw, nil)

	id := mustCreateFolder(t, m, "Scratch", "")
	require.NoError(t, m.DeleteDocument(ctx, "welcome"))

	require.NoError(t, m.Reset(ctx))

	assert.False(t, m.FolderExists(id))
	_, err := m.GetDocument("welcome")
	assert.NoError(t, err)

	// Saved too
	m2 := newTestManager(t, gw, nil)
	assert.False(t, m2.FolderExists(id))
}

func TestDeleteFolder_CascadeScenario(t *testing.T) {
	m := newEmptyManager(t, nil)

	tools := mustCreateFolder(t, m, "Tools", "")
	analysis := mustCreateFolder(t, m, "Analysis", tools)
	toolkit := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{
		Title:    "Toolkit",
		FolderID: analysis,
		Status:   models.StatusPublished,
	})

	require.NoError(t, m.DeleteFolder(context.Background(), tools))

	assert.False(t, m.FolderExists(tools))
	assert.False(t, m.FolderExists(analysis))
	_, err := m.GetDocument(toolkit)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, m.ListChildren(models.RootFolderID))
}

func TestDeleteFolder_ReassignsDirectDocumentsToParent(t *testing.T) {
	m := newEmptyManager(t, nil)

	a := mustCreateFolder(t, m, "A", "")
	b := mustCreateFolder(t, m, "B", a)
	c := mustCreateFolder(t, m, "C", b)
	direct := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Direct", FolderID: b})
	nested := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Nested", FolderID: c})

	require.NoError(t, m.DeleteFolder(context.Background(), b))

	doc, err := m.GetDocument(direct)
	require.NoError(t, err)
	assert.Equal(t, a, doc.FolderID)

	_, err = m.GetDocument(nested)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, m.FolderExists(c))
	assert.True(t, m.FolderExists(a))
}

func TestDeleteFolder_TopLevelReassignsToRoot(t *testing.T) {
	m := newEmptyManager(t, nil)

	a := mustCreateFolder(t, m, "A", "")
	doc := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Memo", FolderID: a})

	require.NoError(t, m.DeleteFolder(context.Background(), a))

	got, err := m.GetDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, models.RootFolderID, got.FolderID)
}

func TestDeleteFolder_RootAndUnknown(t *testing.T) {
	ctx := context.Background()
	m := newEmptyManager(t, nil)

	assert.ErrorIs(t, m.DeleteFolder(ctx, models.RootFolderID), domain.ErrValidation)
	assert.NoError(t, m.DeleteFolder(ctx, "missing"))
	assert.True(t, m.FolderExists(models.RootFolderID))
}

func TestBreadcrumbPath(t *testing.T) {
	m := newEmptyManager(t, nil)

	a := mustCreateFolder(t, m, "A", "")
	b := mustCreateFolder(t, m, "B", a)
	c := mustCreateFolder(t, m, "C", b)

	tests := []struct {
		name   string
		folder string
		want   []string
	}{
		{"deepest folder", c, []string{a, b, c}},
		{"top level", a, []string{a}},
		{"root", models.RootFolderID, []string{}},
		{"unknown resolves to root", "missing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := m.BreadcrumbPath(tt.folder)
			require.NoError(t, err)
			assert.Equal(t, tt.want, folderIDs(path))
		})
	}
}

func TestBreadcrumbPath_CycleIsCorruptTree(t *testing.T) {
	m := newEmptyManager(t, nil)

	a := mustCreateFolder(t, m, "A", "")
	b := mustCreateFolder(t, m, "B", a)
	m.store.Folder(a).ParentID = strPtr(b)

	_, err := m.BreadcrumbPath(b)
	assert.ErrorIs(t, err, domain.ErrCorruptTree)
}

func TestMoveFolder(t *testing.T) {
	ctx := context.Background()
	m := newEmptyManager(t, nil)

	a := mustCreateFolder(t, m, "A", "")
	b := mustCreateFolder(t, m, "B", a)
	c := mustCreateFolder(t, m, "C", b)

	t.Run("into itself", func(t *testing.T) {
		_, err := m.MoveFolder(ctx, a, a)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("into a descendant", func(t *testing.T) {
		_, err := m.MoveFolder(ctx, a, c)
		assert.ErrorIs(t, err, domain.ErrValidation)
		got, _ := m.GetFolder(a)
		assert.Equal(t, models.RootFolderID, got.Parent())
	})
	t.Run("root", func(t *testing.T) {
		_, err := m.MoveFolder(ctx, models.RootFolderID, a)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("missing parent", func(t *testing.T) {
		_, err := m.MoveFolder(ctx, c, "missing")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("to root", func(t *testing.T) {
		got, err := m.MoveFolder(ctx, c, "")
		require.NoError(t, err)
		assert.Equal(t, models.RootFolderID, got.Parent())
		assert.ElementsMatch(t, []string{a, c}, folderIDs(m.ListChildren(models.RootFolderID)))
	})
}

func TestRenameFolder(t *testing.T) {
	ctx := context.Background()
	m := newEmptyManager(t, nil)
	a := mustCreateFolder(t, m, "A", "")

	got, err := m.RenameFolder(ctx, a, "  Archive ")
	require.NoError(t, err)
	assert.Equal(t, "Archive", got.Name)

	_, err = m.RenameFolder(ctx, a, "a/b")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = m.RenameFolder(ctx, models.RootFolderID, "Top")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = m.RenameFolder(ctx, "missing", "X")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateFolder(t *testing.T) {
	ctx := context.Background()
	gw := &failingGateway{Gateway: memory.NewGateway()}
	m := newEmptyManager(t, gw)

	a := mustCreateFolder(t, m, "A", "")
	b := mustCreateFolder(t, m, "B", a)
	c := mustCreateFolder(t, m, "C", "")

	t.Run("rename and move together", func(t *testing.T) {
		before := gw.saves
		got, err := m.UpdateFolder(ctx, b, &libSvc.UpdateFolderRequest{Name: strPtr(" Beta "), ParentID: strPtr(c)})
		require.NoError(t, err)
		assert.Equal(t, "Beta", got.Name)
		assert.Equal(t, c, got.Parent())
		assert.Equal(t, before+2, gw.saves, "one save of both keys")
	})

	tests := []struct {
		name    string
		id      string
		req     libSvc.UpdateFolderRequest
		wantErr error
	}{
		{"missing parent", b, libSvc.UpdateFolderRequest{Name: strPtr("X"), ParentID: strPtr("missing")}, domain.ErrValidation},
		{"into itself", c, libSvc.UpdateFolderRequest{Name: strPtr("X"), ParentID: strPtr(c)}, domain.ErrValidation},
		{"into a descendant", c, libSvc.UpdateFolderRequest{Name: strPtr("X"), ParentID: strPtr(b)}, domain.ErrValidation},
		{"bad name with valid move", b, libSvc.UpdateFolderRequest{Name: strPtr("a/b"), ParentID: strPtr(a)}, domain.ErrValidation},
		{"nothing to change", b, libSvc.UpdateFolderRequest{}, domain.ErrValidation},
		{"unknown folder", "missing", libSvc.UpdateFolderRequest{Name: strPtr("X")}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := gw.saves
			_, err := m.UpdateFolder(ctx, tt.id, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, gw.saves, "a rejected update saves nothing")
		})
	}

	gotB, err := m.GetFolder(b)
	require.NoError(t, err)
	assert.Equal(t, "Beta", gotB.Name)
	assert.Equal(t, c, gotB.Parent())
	gotC, err := m.GetFolder(c)
	require.NoError(t, err)
	assert.Equal(t, "C", gotC.Name)
	assert.Equal(t, models.RootFolderID, gotC.Parent())
}

func TestCreateFolder_Validation(t *testing.T) {
	m := newEmptyManager(t, nil)

	tests := []struct {
		name string
		req  libSvc.CreateFolderRequest
	}{
		{"empty name", libSvc.CreateFolderRequest{Name: "   "}},
		{"slash", libSvc.CreateFolderRequest{Name: "a/b"}},
		{"missing parent", libSvc.CreateFolderRequest{Name: "A", ParentID: "missing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.CreateFolder(context.Background(), &tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestMoveDocument_Idempotent(t *testing.T) {
	ctx := context.Background()
	m := newEmptyManager(t, nil)

	a := mustCreateFolder(t, m, "A", "")
	doc := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Memo"})

	require.NoError(t, m.MoveDocument(ctx, doc, a))
	folders1, docs1 := m.store.Snapshot()

	require.NoError(t, m.MoveDocument(ctx, doc, a))
	folders2, docs2 := m.store.Snapshot()

	assert.Equal(t, folders1, folders2)
	assert.Equal(t, docs1, docs2)

	got, err := m.GetDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, a, got.FolderID)
}

func TestMoveDocument_DoesNotCheckDestination(t *testing.T) {
	ctx := context.Background()
	m := newEmptyManager(t, nil)
	doc := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Memo"})

	require.NoError(t, m.MoveDocument(ctx, doc, "nowhere"))
	got, err := m.GetDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "nowhere", got.FolderID)

	assert.ErrorIs(t, m.MoveDocument(ctx, "missing", models.RootFolderID), domain.ErrNotFound)
}

func TestListDocumentsIn_CategoryViewIgnoresFolder(t *testing.T) {
	m := newTestManager(t, nil, bareDefaults(t))

	a := mustCreateFolder(t, m, "A", "")
	d1 := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "One", Content: "body", FolderID: a, CategoryID: strPtr("guides")})
	d2 := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Two", FolderID: a, CategoryID: strPtr("policies")})
	d3 := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Three", CategoryID: strPtr("guides")})
	mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Four"})

	inCategory := m.ListDocumentsIn(libSvc.DocumentQuery{FolderID: a, CategoryID: "guides", IncludeDrafts: true})
	assert.ElementsMatch(t, []string{d1, d3}, documentIDs(inCategory))
	for _, d := range inCategory {
		assert.Equal(t, "guides", d.Category())
		assert.Empty(t, d.Content, "listings carry no content")
	}

	inFolder := m.ListDocumentsIn(libSvc.DocumentQuery{FolderID: a, IncludeDrafts: true})
	assert.ElementsMatch(t, []string{d1, d2}, documentIDs(inFolder))
}

func TestVisibility_DraftsHiddenFromUsers(t *testing.T) {
	m := newEmptyManager(t, nil)

	published := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Handbook", Status: models.StatusPublished})
	draft := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Handbook draft"})

	user := m.ListDocumentsIn(libSvc.DocumentQuery{})
	assert.Equal(t, []string{published}, documentIDs(user))

	manager := m.ListDocumentsIn(libSvc.DocumentQuery{IncludeDrafts: true})
	assert.ElementsMatch(t, []string{published, draft}, documentIDs(manager))

	assert.Len(t, m.SearchDocuments("handbook", false), 1)
	assert.Len(t, m.SearchDocuments("handbook", true), 2)

	assert.Equal(t, 1, m.Tree(false).Documents)
	assert.Equal(t, 2, m.Tree(true).Documents)
}

func TestCreateDocument(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, nil, nil)

	t.Run("defaults", func(t *testing.T) {
		doc, err := m.CreateDocument(ctx, &libSvc.CreateDocumentRequest{Title: " Notes ", Content: "one two three"})
		require.NoError(t, err)
		assert.Equal(t, "Notes", doc.Title)
		assert.Equal(t, models.StatusDraft, doc.Status)
		assert.Equal(t, models.RootFolderID, doc.FolderID)
		assert.Equal(t, "manual", doc.Source)
		assert.Equal(t, 3, doc.WordCount)
		assert.Equal(t, 13, doc.Size)
	})
	t.Run("duplicate id", func(t *testing.T) {
		_, err := m.CreateDocument(ctx, &libSvc.CreateDocumentRequest{ID: "welcome", Title: "Again"})
		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "welcome", conflict.ResourceID)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
	t.Run("unknown category is kept", func(t *testing.T) {
		doc, err := m.CreateDocument(ctx, &libSvc.CreateDocumentRequest{Title: "Tagged", CategoryID: strPtr("recipes")})
		require.NoError(t, err)
		assert.Equal(t, "recipes", doc.Category())
	})
	t.Run("invalid", func(t *testing.T) {
		for _, req := range []libSvc.CreateDocumentRequest{
			{Title: ""},
			{Title: "Bad id", ID: "has space"},
			{Title: "Bad status", Status: "hidden"},
			{Title: "No folder", FolderID: "missing"},
		} {
			_, err := m.CreateDocument(ctx, &req)
			assert.ErrorIs(t, err, domain.ErrValidation, req.Title)
		}
	})
}

func TestUpdateDocument(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, nil, bareDefaults(t))
	id := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Memo", CategoryID: strPtr("guides")})

	doc, err := m.UpdateDocument(ctx, id, &libSvc.UpdateDocumentRequest{
		Title:   strPtr("Memo v2"),
		Content: strPtr("alpha beta"),
		Status:  strPtr("Published"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Memo v2", doc.Title)
	assert.Equal(t, 2, doc.WordCount)
	assert.Equal(t, models.StatusPublished, doc.Status)
	assert.Equal(t, "guides", doc.Category(), "absent category is left alone")

	doc, err = m.UpdateDocument(ctx, id, &libSvc.UpdateDocumentRequest{
		CategoryID: httputil.OptionalString{Present: true},
	})
	require.NoError(t, err)
	assert.Nil(t, doc.CategoryID)

	doc, err = m.UpdateDocument(ctx, id, &libSvc.UpdateDocumentRequest{
		CategoryID: httputil.Set("policies"),
	})
	require.NoError(t, err)
	assert.Equal(t, "policies", doc.Category())

	_, err = m.UpdateDocument(ctx, id, &libSvc.UpdateDocumentRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = m.UpdateDocument(ctx, id, &libSvc.UpdateDocumentRequest{Status: strPtr("hidden")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	got, err := m.GetDocument(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, got.Status, "an invalid status leaves the document alone")

	doc, err = m.SetDocumentStatus(ctx, id, models.StatusArchived)
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, doc.Status)
	_, err = m.SetDocumentStatus(ctx, id, models.DocumentStatus("hidden"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = m.UpdateDocument(ctx, "missing", &libSvc.UpdateDocumentRequest{Title: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBrowse(t *testing.T) {
	m := newTestManager(t, nil, nil)

	t.Run("folder view", func(t *testing.T) {
		view, err := m.Browse(libSvc.DocumentQuery{FolderID: "category-getting-started"})
		require.NoError(t, err)
		assert.Nil(t, view.Category)
		assert.Equal(t, "category-getting-started", view.Folder.ID)
		assert.Equal(t, []string{"category-getting-started"}, folderIDs(view.Breadcrumb))
		assert.Equal(t, []string{"welcome"}, documentIDs(view.Documents))
	})
	t.Run("unknown folder falls back to root", func(t *testing.T) {
		view, err := m.Browse(libSvc.DocumentQuery{FolderID: "missing"})
		require.NoError(t, err)
		assert.True(t, view.Folder.IsRoot)
		assert.Len(t, view.Folders, 4)
		assert.Empty(t, view.Breadcrumb)
	})
	t.Run("category view", func(t *testing.T) {
		view, err := m.Browse(libSvc.DocumentQuery{CategoryID: "getting-started"})
		require.NoError(t, err)
		require.NotNil(t, view.Category)
		assert.Equal(t, "Getting Started", view.Category.Name)
		assert.Empty(t, view.Folders)
		assert.Equal(t, []string{"welcome"}, documentIDs(view.Documents))
	})
	t.Run("unknown category", func(t *testing.T) {
		_, err := m.Browse(libSvc.DocumentQuery{CategoryID: "missing"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSearchDocuments_TitleMatchesFirst(t *testing.T) {
	m := newEmptyManager(t, nil)

	body := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Expenses", Content: "Submit travel receipts monthly", Status: models.StatusPublished})
	title := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Travel policy", Status: models.StatusPublished})
	mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Holidays", Status: models.StatusPublished})

	assert.Equal(t, []string{title, body}, documentIDs(m.SearchDocuments("  TRAVEL ", false)))
	assert.Empty(t, m.SearchDocuments("", true))
}

func TestTree(t *testing.T) {
	m := newEmptyManager(t, nil)

	a := mustCreateFolder(t, m, "A", "")
	b := mustCreateFolder(t, m, "B", a)
	mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "In B", FolderID: b})
	mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "At root"})

	tree := m.Tree(true)
	assert.Equal(t, 3, tree.Folders)
	assert.Equal(t, 2, tree.Documents)
	assert.Equal(t, models.RootFolderID, tree.Root.ID)
	require.Len(t, tree.Root.Folders, 1)
	require.Len(t, tree.Root.Documents, 1)
	assert.Equal(t, a, tree.Root.Folders[0].ID)
	require.Len(t, tree.Root.Folders[0].Folders, 1)
	assert.Equal(t, "In B", tree.Root.Folders[0].Folders[0].Documents[0].Title)
}

func TestConcurrentMutations(t *testing.T) {
	m := newEmptyManager(t, nil)
	var mu sync.Mutex
	n := 0
	m.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("c-%d", n)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := m.CreateFolder(context.Background(), &libSvc.CreateFolderRequest{Name: fmt.Sprintf("F%d", i)})
			if err != nil {
				return
			}
			_, _ = m.CreateDocument(context.Background(), &libSvc.CreateDocumentRequest{Title: "Doc", FolderID: f.ID})
			_ = m.ListChildren(models.RootFolderID)
			_ = m.Categories().TotalCount(true)
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.ListChildren(models.RootFolderID), 20)
	assert.Equal(t, 20, m.Tree(true).Documents)
}
