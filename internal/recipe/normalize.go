package recipe

import (
	"regexp"
	"strings"
)

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize normalizes a recipe name for case-insensitive matching:
// 1. Trim leading/trailing whitespace
// 2. Lowercase
// 3. Collapse internal whitespace to single spaces
func Normalize(s string) string {
	// Trim leading/trailing whitespace
	s = strings.TrimSpace(s)

	// Lowercase
	s = strings.ToLower(s)

	// Collapse internal whitespace to single spaces
	s = whitespaceRegex.ReplaceAllString(s, " ")

	return s
}
