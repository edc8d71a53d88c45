package taskchain

import (
	"strings"
	"unicode"
)

// Normalize converts a task or group identifier to its storage form:
// CamelCase becomes snake_case, spaces and dashes become underscores, and
// everything is lowercased. Runs of capitals stay together, so
// "HTTPCache" normalizes to "http_cache".
func Normalize(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(runes) + 4)
	prevLower := false
	prevSep := false
	for i, r := range runes {
		switch {
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
			prevLower = false
			prevSep = true
		case unicode.IsUpper(r):
			// No extra underscore right after a separator already wrote one.
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && !prevSep && (prevLower || nextLower) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
			prevSep = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
			prevSep = false
		}
	}
	return b.String()
}
