package converter

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
)

// markdownConverter stores markdown as-is apart from line ending cleanup
type markdownConverter struct{}

// NewMarkdownConverter creates the markdown converter
func NewMarkdownConverter() libSvc.ContentConverter {
	return &markdownConverter{}
}

func (c *markdownConverter) Convert(ctx context.Context, input []byte) (string, error) {
	return normalizeText(input)
}

func (c *markdownConverter) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

func (c *markdownConverter) Name() string {
	return "markdown"
}

// normalizeText rejects binary input, drops a UTF-8 BOM and converts CRLF
// line endings.
func normalizeText(input []byte) (string, error) {
	if !utf8.Valid(input) {
		return "", &domain.ValidationError{Message: "file is not valid UTF-8 text"}
	}
	s := strings.TrimPrefix(string(input), "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return s, nil
}
