package library

import (
	"testing"

	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"

	"github.com/stretchr/testify/assert"
)

func folder(id, parent string) *models.Folder {
	f := &models.Folder{ID: id, Name: id}
	if parent != "" {
		f.ParentID = &parent
	}
	return f
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func TestCollectDescendants(t *testing.T) {
	folders := []*models.Folder{
		folder("root", ""),
		folder("a", "root"),
		folder("b", "a"),
		folder("c", "b"),
		folder("d", "a"),
		folder("e", "root"),
	}

	tests := []struct {
		name  string
		start string
		want  []string
	}{
		{"subtree", "a", []string{"b", "c", "d"}},
		{"leaf", "c", []string{}},
		{"whole tree", "root", []string{"a", "b", "c", "d", "e"}},
		{"unknown start", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, keys(CollectDescendants(folders, tt.start)))
		})
	}
}

func TestCollectDescendants_TerminatesOnCycle(t *testing.T) {
	folders := []*models.Folder{
		folder("a", "c"),
		folder("b", "a"),
		folder("c", "b"),
	}

	got := CollectDescendants(folders, "a")
	assert.ElementsMatch(t, []string{"b", "c"}, keys(got), "start is never reported as its own descendant")
}

func TestIsDescendant(t *testing.T) {
	folders := []*models.Folder{
		folder("root", ""),
		folder("a", "root"),
		folder("b", "a"),
	}

	assert.True(t, isDescendant(folders, "a", "b"))
	assert.True(t, isDescendant(folders, "root", "b"))
	assert.False(t, isDescendant(folders, "b", "a"))
	assert.False(t, isDescendant(folders, "a", "a"))
}
