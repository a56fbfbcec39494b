package utils

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DocumentFrontmatter is the optional YAML header of an uploaded document
type DocumentFrontmatter struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Status   string `yaml:"status"`
}

var frontmatterDelim = []byte("---")

// SplitFrontmatter separates an optional YAML frontmatter block from the
// markdown body. Content without a leading "---" line is returned unchanged
// with a nil header.
// ---
// title: Onboarding
// category: getting-started
// ---
// # Markdown content here
func SplitFrontmatter(content []byte) (*DocumentFrontmatter, string, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf")) // UTF-8 BOM
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, string(content), nil
	}

	lines := bytes.Split(content, []byte("\n"))
	closing := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), frontmatterDelim) {
			closing = i
			break
		}
	}
	if closing == 0 {
		return nil, "", errors.New("missing closing frontmatter delimiter '---'")
	}

	var fm DocumentFrontmatter
	if err := yaml.Unmarshal(bytes.Join(lines[1:closing], []byte("\n")), &fm); err != nil {
		return nil, "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}
	fm.Title = strings.TrimSpace(fm.Title)
	fm.Category = strings.TrimSpace(fm.Category)
	fm.Status = strings.TrimSpace(fm.Status)

	body := string(bytes.Join(lines[closing+1:], []byte("\n")))
	return &fm, strings.TrimLeft(body, "\r\n"), nil
}

// TitleFromFilename derives a display title from an uploaded file name:
// directory and extension are dropped, dashes and underscores become spaces.
func TitleFromFilename(filename string) string {
	base := filepath.Base(filepath.ToSlash(filename))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}
