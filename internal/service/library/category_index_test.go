package library

import (
	"context"
	"testing"

	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryIndex_Counts(t *testing.T) {
	m := newTestManager(t, nil, bareDefaults(t))

	mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "G1", CategoryID: strPtr("guides"), Status: models.StatusPublished})
	mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "G2", CategoryID: strPtr("guides")})
	mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "P1", CategoryID: strPtr("policies"), Status: models.StatusPublished})
	mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Untagged", Status: models.StatusPublished})
	mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "Unknown", CategoryID: strPtr("recipes"), Status: models.StatusPublished})

	idx := m.Categories()

	assert.Equal(t, 1, idx.DocumentCountByCategory("guides", false))
	assert.Equal(t, 2, idx.DocumentCountByCategory("guides", true))
	assert.Equal(t, 1, idx.DocumentCountByCategory("recipes", true), "unknown tags are still counted")
	assert.Zero(t, idx.DocumentCountByCategory("missing", true))

	summaries := idx.Summaries(true)
	require.Len(t, summaries, 2)
	assert.Equal(t, "guides", summaries[0].Category.ID)
	assert.Equal(t, 2, summaries[0].DocumentCount)
	assert.Equal(t, "policies", summaries[1].Category.ID)
	assert.Equal(t, 1, summaries[1].DocumentCount)

	assert.Equal(t, 3, idx.TotalCount(true), "only known categories are summed")
	assert.Equal(t, 2, idx.TotalCount(false))
}

func TestCategoryIndex_TracksMutations(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, nil, bareDefaults(t))
	idx := m.Categories()

	id := mustCreateDocument(t, m, &libSvc.CreateDocumentRequest{Title: "G1", CategoryID: strPtr("guides")})
	assert.Equal(t, 1, idx.DocumentCountByCategory("guides", true))

	require.NoError(t, m.DeleteDocument(ctx, id))
	assert.Zero(t, idx.DocumentCountByCategory("guides", true))
}

func TestCategoryIndex_Lookup(t *testing.T) {
	m := newTestManager(t, nil, nil)
	idx := m.Categories()

	c, ok := idx.Category("getting-started")
	require.True(t, ok)
	assert.True(t, c.IsSystemCategory)
	assert.True(t, idx.IsKnown("guides"))
	assert.False(t, idx.IsKnown("recipes"))

	cats := idx.Categories()
	require.Len(t, cats, 4)
	cats[0].Name = "changed"
	assert.Equal(t, "Getting Started", idx.Categories()[0].Name, "callers get a copy")
}
