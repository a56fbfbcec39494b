package library

import models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"

// CollectDescendants returns the ids of every folder transitively below
// startID, following parent links breadth-first. startID itself is not
// included. Each folder is visited once, so a cycle in the input cannot loop.
func CollectDescendants(folders []*models.Folder, startID string) map[string]struct{} {
	children := make(map[string][]string, len(folders))
	for _, f := range folders {
		if f.ParentID != nil {
			children[*f.ParentID] = append(children[*f.ParentID], f.ID)
		}
	}

	found := make(map[string]struct{})
	queue := []string{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if child == startID {
				continue
			}
			if _, seen := found[child]; seen {
				continue
			}
			found[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return found
}

// isDescendant reports whether candidateID lies below ancestorID
func isDescendant(folders []*models.Folder, ancestorID, candidateID string) bool {
	_, ok := CollectDescendants(folders, ancestorID)[candidateID]
	return ok
}
