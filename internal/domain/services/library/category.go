package library

import models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"

// CategoryIndex is a read-only view grouping documents by category tag
type CategoryIndex interface {
	// Categories returns the reference list in display order
	Categories() []models.Category

	// Category looks up a category by id
	Category(id string) (*models.Category, bool)

	// IsKnown reports whether id names a known category
	IsKnown(id string) bool

	// DocumentCountByCategory counts documents tagged with categoryID.
	// Without includeDrafts only published documents count.
	DocumentCountByCategory(categoryID string, includeDrafts bool) int

	// Summaries returns every category with its document count
	Summaries(includeDrafts bool) []models.CategorySummary

	// TotalCount sums the per-category counts
	TotalCount(includeDrafts bool) int
}
