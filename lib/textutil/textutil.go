package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var punctuationRegex = regexp.MustCompile(`[.,'’()\-]`)

// NormalizeLocation canonicalizes a place name for comparison:
// lowercase, punctuation stripped, inner whitespace collapsed.
// "S. Korea" and "s korea" normalize to the same string.
func NormalizeLocation(name string) string {
	name = strings.ToLower(name)
	name = punctuationRegex.ReplaceAllString(name, " ")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return strings.Trim(name, " ")
}

// CollapseWhitespace trims a scraped text cell and squashes runs of
// whitespace (including newlines from wrapped markup) into single spaces.
func CollapseWhitespace(s string) string {
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}
