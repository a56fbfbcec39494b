package converter

import (
	"context"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/service/library/converter/sanitizer"
)

// htmlConverter sanitizes HTML and then converts it to markdown
type htmlConverter struct {
	sanitizer *sanitizer.HTMLSanitizer
	converter *md.Converter
}

// NewHTMLConverter creates the HTML converter
func NewHTMLConverter() libSvc.ContentConverter {
	return &htmlConverter{
		sanitizer: sanitizer.NewHTMLSanitizer(),
		converter: md.NewConverter("", true, nil),
	}
}

func (c *htmlConverter) Convert(ctx context.Context, input []byte) (string, error) {
	text, err := normalizeText(input)
	if err != nil {
		return "", err
	}

	markdown, err := c.converter.ConvertString(c.sanitizer.Sanitize(text))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown) + "\n", nil
}

func (c *htmlConverter) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

func (c *htmlConverter) Name() string {
	return "html"
}
