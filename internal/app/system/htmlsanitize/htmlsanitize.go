// Package htmlsanitize cleans admin-written class feedback before it is
// stored. Feedback is shown to instructors in the browser, so it may carry
// basic formatting but never scripts or event handlers.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy is safe for concurrent use once built.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with unsafe markup removed and surrounding
// whitespace trimmed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(policy.Sanitize(s))
}

// PlainText strips all markup. Used where the value lands in a
// spreadsheet cell rather than a page.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(s))
}
