package converter

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
)

// ConverterRegistry routes uploaded files to a converter by extension.
// Safe for concurrent use.
type ConverterRegistry struct {
	mu         sync.RWMutex
	converters map[string]libSvc.ContentConverter // key: ".md", ".html", ...
}

// NewConverterRegistry creates a registry with the markdown, plaintext and
// html converters registered.
func NewConverterRegistry() *ConverterRegistry {
	r := &ConverterRegistry{
		converters: make(map[string]libSvc.ContentConverter),
	}
	r.Register(NewMarkdownConverter())
	r.Register(NewTextConverter())
	r.Register(NewHTMLConverter())
	return r
}

// Register associates a converter with its extensions, replacing any
// converter registered for the same extension.
func (r *ConverterRegistry) Register(c libSvc.ContentConverter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range c.SupportedExtensions() {
		r.converters[normalizeExt(ext)] = c
	}
}

// Lookup returns the converter for filename's extension, or nil
func (r *ConverterRegistry) Lookup(filename string) libSvc.ContentConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[normalizeExt(filepath.Ext(filename))]
}

// Convert picks the converter for filename and runs it. It returns the
// markdown and the converter name.
func (r *ConverterRegistry) Convert(ctx context.Context, filename string, content []byte) (string, string, error) {
	c := r.Lookup(filename)
	if c == nil {
		return "", "", &domain.ValidationError{
			Message: fmt.Sprintf("unsupported file type %q (supported: %s)",
				filepath.Ext(filename), strings.Join(r.SupportedExtensions(), ", ")),
		}
	}

	markdown, err := c.Convert(ctx, content)
	if err != nil {
		return "", "", fmt.Errorf("%s converter: %w", c.Name(), err)
	}
	return markdown, c.Name(), nil
}

// SupportedExtensions returns the registered extensions, sorted
func (r *ConverterRegistry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.converters))
	for ext := range r.converters {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
