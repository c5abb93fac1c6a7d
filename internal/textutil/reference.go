package textutil

import (
	"regexp"
	"strings"
)

var (
	specialCharPattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// SearchableReference canonicalizes a title into the form used as a cache
// key. Empty and whitespace-only input is returned unchanged. Roman numerals
// are replaced before punctuation is scrubbed, so a numeral masked by
// adjoining punctuation ("VI_II") passes through as letters and only
// converts on a second application; unmasked titles reach a fixed point in
// one pass.
func SearchableReference(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	normalized := ReplaceRomanNumerals(text)
	normalized = ReplaceSpecialChars(normalized)
	normalized = NormalizeSpaces(normalized)
	return strings.TrimSpace(normalized)
}

// ReplaceSpecialChars replaces every character that is not alphanumeric or
// whitespace with a single space.
func ReplaceSpecialChars(text string) string {
	return specialCharPattern.ReplaceAllString(text, " ")
}

// NormalizeSpaces collapses runs of whitespace into a single space.
func NormalizeSpaces(text string) string {
	return whitespacePattern.ReplaceAllString(text, " ")
}
