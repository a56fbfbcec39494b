package library

// Category is static reference data loaded at startup
type Category struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Icon             string `json:"icon" yaml:"icon"`
	Description      string `json:"description" yaml:"description"`
	Color            string `json:"color" yaml:"color"`
	IsSystemCategory bool   `json:"is_system_category,omitempty" yaml:"is_system_category"`
}

// CategorySummary pairs a category with its visible document count
type CategorySummary struct {
	Category      Category `json:"category"`
	DocumentCount int      `json:"document_count"`
}
