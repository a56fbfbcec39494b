package library

import (
	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
)

// categoryIndex is a read-only view over the tree manager's store.
// Categories never change after startup, so only counts take the lock.
type categoryIndex struct {
	mgr        *treeManager
	categories []models.Category
	byID       map[string]int
}

func newCategoryIndex(mgr *treeManager, categories []models.Category) *categoryIndex {
	idx := &categoryIndex{
		mgr:        mgr,
		categories: append([]models.Category(nil), categories...),
		byID:       make(map[string]int, len(categories)),
	}
	for i, c := range idx.categories {
		idx.byID[c.ID] = i
	}
	return idx
}

// Categories returns the reference list in display order
func (idx *categoryIndex) Categories() []models.Category {
	return append([]models.Category(nil), idx.categories...)
}

// Category looks up a category by id
func (idx *categoryIndex) Category(id string) (*models.Category, bool) {
	return idx.lookup(id)
}

func (idx *categoryIndex) lookup(id string) (*models.Category, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return nil, false
	}
	c := idx.categories[i]
	return &c, true
}

// IsKnown reports whether id names a known category
func (idx *categoryIndex) IsKnown(id string) bool {
	_, ok := idx.byID[id]
	return ok
}

// DocumentCountByCategory counts documents tagged with categoryID
func (idx *categoryIndex) DocumentCountByCategory(categoryID string, includeDrafts bool) int {
	idx.mgr.mu.RLock()
	defer idx.mgr.mu.RUnlock()
	return idx.countLocked(includeDrafts)[categoryID]
}

// Summaries returns every category with its document count
func (idx *categoryIndex) Summaries(includeDrafts bool) []models.CategorySummary {
	idx.mgr.mu.RLock()
	counts := idx.countLocked(includeDrafts)
	idx.mgr.mu.RUnlock()

	out := make([]models.CategorySummary, 0, len(idx.categories))
	for _, c := range idx.categories {
		out = append(out, models.CategorySummary{Category: c, DocumentCount: counts[c.ID]})
	}
	return out
}

// TotalCount sums the counts of the known categories
func (idx *categoryIndex) TotalCount(includeDrafts bool) int {
	total := 0
	for _, s := range idx.Summaries(includeDrafts) {
		total += s.DocumentCount
	}
	return total
}

func (idx *categoryIndex) countLocked(includeDrafts bool) map[string]int {
	counts := make(map[string]int, len(idx.categories))
	for _, d := range idx.mgr.store.Documents(nil) {
		if d.CategoryID == nil || (!includeDrafts && !d.IsPublished()) {
			continue
		}
		counts[*d.CategoryID]++
	}
	return counts
}
