package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain/repositories"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

// bareDefaultsYAML has categories and no seed documents
const bareDefaultsYAML = `
categories:
  - id: guides
    name: Guides
  - id: policies
    name: Policies
`

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestManager builds an initialized manager over gw with sequential ids
// and a fixed clock
func newTestManager(t *testing.T, gw repositories.Gateway, defaults *Defaults) *treeManager {
	t.Helper()
	if gw == nil {
		gw = memory.NewGateway()
	}
	if defaults == nil {
		var err error
		defaults, err = LoadDefaults()
		require.NoError(t, err)
	}

	m, err := newTreeManager(gw, nil, defaults, discardLogger())
	require.NoError(t, err)

	n := 0
	m.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	m.now = func() time.Time { return fixedTime }

	require.NoError(t, m.Init(context.Background()))
	return m
}

// newEmptyManager has a root and no category folders or seed documents
func newEmptyManager(t *testing.T, gw repositories.Gateway) *treeManager {
	t.Helper()
	d, err := ParseDefaults([]byte("categories: []\n"))
	require.NoError(t, err)
	return newTestManager(t, gw, d)
}

func bareDefaults(t *testing.T) *Defaults {
	t.Helper()
	d, err := ParseDefaults([]byte(bareDefaultsYAML))
	require.NoError(t, err)
	return d
}

var errStorageDown = errors.New("storage unavailable")

// failingGateway wraps a gateway and fails the chosen operations
type failingGateway struct {
	repositories.Gateway
	failLoad bool
	failSave bool
	saves    int
}

func (g *failingGateway) Load(ctx context.Context, key string) ([]byte, error) {
	if g.failLoad {
		return nil, errStorageDown
	}
	return g.Gateway.Load(ctx, key)
}

func (g *failingGateway) Save(ctx context.Context, key string, data []byte) error {
	g.saves++
	if g.failSave {
		return errStorageDown
	}
	return g.Gateway.Save(ctx, key, data)
}

func mustCreateFolder(t *testing.T, m *treeManager, name, parentID string) string {
	t.Helper()
	f, err := m.CreateFolder(context.Background(), &libSvc.CreateFolderRequest{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return f.ID
}

func mustCreateDocument(t *testing.T, m *treeManager, req *libSvc.CreateDocumentRequest) string {
	t.Helper()
	d, err := m.CreateDocument(context.Background(), req)
	require.NoError(t, err)
	return d.ID
}

func strPtr(s string) *string { return &s }
