package utils

import (
	"strings"
	"unicode"
)

// SplitTokens splits free text on commas and whitespace and drops empty tokens.
// "SN1, SN2\nSN3" yields [SN1 SN2 SN3].
func SplitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
