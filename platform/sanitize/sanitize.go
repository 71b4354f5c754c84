// Package sanitize cleans user-provided text before it is stored or fed to
// downstream consumers.
package sanitize

import (
	"regexp"
	"strings"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// Text strips HTML tags from user input and trims surrounding whitespace.
// Submitted lead fields flow into prompts, outbound email, and chat alerts,
// none of which should ever carry markup.
func Text(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	// Entity decoding can reveal encoded tags; strip again.
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}
