package utils

import (
	"strings"
	"unicode"
)

// CountWords counts the words in a markdown string, ignoring fenced code
// blocks and markdown punctuation.
func CountWords(markdown string) int {
	text := removeCodeBlocks(markdown)

	count := 0
	for _, line := range strings.Split(text, "\n") {
		line = stripLineMarker(strings.TrimSpace(line))
		for _, field := range strings.Fields(line) {
			if strings.IndexFunc(field, isWordRune) >= 0 {
				count++
			}
		}
	}
	return count
}

// stripLineMarker drops a leading list, heading or quote marker
func stripLineMarker(line string) string {
	line = strings.TrimLeft(line, "#>")
	line = strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(line, marker) {
			return line[len(marker):]
		}
	}
	// Numbered list ("1. ", "12. ")
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(line) && line[i] == '.' && line[i+1] == ' ' {
		return line[i+2:]
	}
	return line
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func removeCodeBlocks(text string) string {
	for {
		start := strings.Index(text, "```")
		if start == -1 {
			return text
		}
		end := strings.Index(text[start+3:], "```")
		if end == -1 {
			return text[:start]
		}
		text = text[:start] + text[start+3+end+3:]
	}
}
