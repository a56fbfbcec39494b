package sanitizer

import (
	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer strips scripts, event handlers and javascript: URLs from
// uploaded HTML before it is converted. Safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer keeps common formatting (headings, lists, tables, code,
// links). Images are limited to http(s) sources.
func NewHTMLSanitizer() *HTMLSanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.RequireNoFollowOnLinks(true)
	return &HTMLSanitizer{policy: policy}
}

// Sanitize returns html with unsafe elements and attributes removed
func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
