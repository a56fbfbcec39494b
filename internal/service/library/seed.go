package library

import (
	_ "embed"
	"fmt"
	"time"

	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/utils"

	"gopkg.in/yaml.v3"
)

//go:embed seed/defaults.yaml
var defaultsYAML []byte

// Defaults is the built-in reference data and starting content
type Defaults struct {
	Categories []models.Category `yaml:"categories"`
	Documents  []SeedDocument    `yaml:"documents"`
}

// SeedDocument is a system document created on first start
type SeedDocument struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Status   string `yaml:"status"`
	Content  string `yaml:"content"`
}

// LoadDefaults parses the embedded defaults
func LoadDefaults() (*Defaults, error) {
	return ParseDefaults(defaultsYAML)
}

// ParseDefaults parses defaults YAML, checking category ids are unique
func ParseDefaults(data []byte) (*Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal defaults: %w", err)
	}
	seen := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		if c.ID == "" {
			return nil, fmt.Errorf("category %q has no id", c.Name)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate category id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return &d, nil
}

// seedStore fills an empty store with the root, one system folder per
// category and the seed documents.
func seedStore(store *EntityStore, d *Defaults, now time.Time) error {
	store.Reset()

	root := models.NewRootFolder(now)
	if err := store.InsertFolder(root); err != nil {
		return err
	}

	for _, c := range d.Categories {
		parent := root.ID
		folder, err := models.NewFolder(categoryFolderID(c.ID), c.Name, &parent, now)
		if err != nil {
			return fmt.Errorf("seed folder for %q: %w", c.ID, err)
		}
		categoryID := c.ID
		folder.CategoryID = &categoryID
		folder.IsSystemFolder = true
		if err := store.InsertFolder(folder); err != nil {
			return err
		}
	}

	for _, sd := range d.Documents {
		status := models.StatusPublished
		if sd.Status != "" {
			parsed, err := models.ParseStatus(sd.Status)
			if err != nil {
				return fmt.Errorf("seed document %q: %w", sd.ID, err)
			}
			status = parsed
		}

		folderID := root.ID
		if sd.Category != "" && store.Folder(categoryFolderID(sd.Category)) != nil {
			folderID = categoryFolderID(sd.Category)
		}

		doc, err := models.NewDocument(sd.ID, sd.Title, sd.Content, folderID, status, now)
		if err != nil {
			return fmt.Errorf("seed document %q: %w", sd.ID, err)
		}
		if sd.Category != "" {
			category := sd.Category
			doc.CategoryID = &category
		}
		doc.IsSystemDocument = true
		doc.Source = "seed"
		doc.WordCount = utils.CountWords(doc.Content)
		if err := store.InsertDocument(doc); err != nil {
			return err
		}
	}
	return nil
}

func categoryFolderID(categoryID string) string {
	return "category-" + categoryID
}
