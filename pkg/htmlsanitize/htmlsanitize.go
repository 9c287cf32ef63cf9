// Package htmlsanitize cleans user-supplied rich text before it is stored or mailed.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize keeps safe formatting markup (paragraphs, emphasis, lists, links)
// and strips scripts, event handlers and javascript: URLs.
func Sanitize(input string) string {
	if input == "" {
		return ""
	}
	return ugcPolicy.Sanitize(input)
}

// PlainText removes every tag, leaving only text content.
func PlainText(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}
