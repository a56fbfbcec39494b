package converter

import (
	"context"
	"strings"

	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
)

// textConverter keeps plain text readable once rendered as markdown:
// trailing spaces are trimmed and single line breaks are preserved.
type textConverter struct{}

// NewTextConverter creates the plaintext converter
func NewTextConverter() libSvc.ContentConverter {
	return &textConverter{}
}

func (c *textConverter) Convert(ctx context.Context, input []byte) (string, error) {
	s, err := normalizeText(input)
	if err != nil {
		return "", err
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		// A non-empty line followed by another non-empty line gets a hard break
		if line != "" && i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			line += "  "
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n"), nil
}

func (c *textConverter) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

func (c *textConverter) Name() string {
	return "plaintext"
}
