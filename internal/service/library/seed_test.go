package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	d, err := LoadDefaults()
	require.NoError(t, err)
	assert.Len(t, d.Categories, 4)
	require.NotEmpty(t, d.Documents)
	assert.Equal(t, "welcome", d.Documents[0].ID)
}

func TestParseDefaults_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate category", "categories:\n  - id: a\n    name: A\n  - id: a\n    name: B\n"},
		{"missing id", "categories:\n  - name: A\n"},
		{"bad yaml", "categories: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDefaults([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSeedStore_SeedDocumentInUnknownCategoryGoesToRoot(t *testing.T) {
	d, err := ParseDefaults([]byte(`
categories:
  - id: guides
    name: Guides
documents:
  - id: intro
    title: Intro
    category: missing
    content: hello
`))
	require.NoError(t, err)

	s := NewEntityStore()
	require.NoError(t, seedStore(s, d, fixedTime))

	assert.Equal(t, 2, s.FolderCount())
	doc := s.Document("intro")
	require.NotNil(t, doc)
	assert.Equal(t, "root", doc.FolderID)
	assert.True(t, doc.IsPublished())
	assert.Equal(t, "seed", doc.Source)
}
