// Package sanitize reduces CMS excerpts to plain text for page metadata.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	tagPattern       = regexp.MustCompile(`<([^>]+)>`)
	shortcodePattern = regexp.MustCompile(`\[[^\]]*\]`)
)

// Excerpt strips every HTML tag, then only the first [shortcode] token, then
// surrounding whitespace. Later shortcodes are left in place.
func Excerpt(s string) string {
	if s == "" {
		return ""
	}
	text := tagPattern.ReplaceAllString(s, "")
	if loc := shortcodePattern.FindStringIndex(text); loc != nil {
		text = text[:loc[0]] + text[loc[1]:]
	}
	return strings.TrimSpace(text)
}
