package textnorm

import (
	"regexp"
	"strings"
)

var (
	// Keeps letters, digits, underscore, whitespace and basic punctuation; the
	// tokenizers downstream split on whitespace and compare lowercased words.
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?-]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	periodRun       = regexp.MustCompile(`\.{2,}`)
)

// Normalize canonicalizes raw document text for scoring: removes characters
// outside the allowed set, collapses whitespace runs to single spaces,
// collapses repeated periods and trims the result. Stripping happens before
// whitespace collapsing so that removals cannot leave double spaces behind,
// which keeps Normalize idempotent. It never fails.
func Normalize(text string) string {
	text = disallowedChars.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = periodRun.ReplaceAllString(text, ".")
	return strings.TrimSpace(text)
}
