package convert

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SanitizeName prepares a song name for use in an output filename.
// Used only when the -ascii-names flag is set; the default keeps the
// source name byte for byte.
//
// Character handling:
// - Non-ASCII → normalized to ASCII equivalents (ō→o, é→e)
// - Spaces → underscores
// - / and \ → underscores (filesystem-illegal)
// - Shell metacharacters ($ ! * ? & ; | < > etc.) → underscores
// - Quotes (' " `) → removed
// - Multiple consecutive underscores → collapsed to single underscore
// - Leading/trailing underscores → trimmed
func SanitizeName(s string) string {
	// First normalize non-ASCII to ASCII equivalents
	s = normalizeToASCII(s)

	var b strings.Builder
	b.Grow(len(s))

	lastWasUnderscore := false
	for _, r := range s {
		switch r {
		// Remove quotes (require shell quoting)
		case '\'', '"', '`':
			// skip - remove entirely

		// Replace with underscore
		case ' ': // space
			fallthrough
		case '/', '\\': // filesystem-illegal
			fallthrough
		case '$', '!': // shell expansion
			fallthrough
		case '*', '?', '[', ']': // glob patterns
			fallthrough
		case '(', ')': // subshell
			fallthrough
		case '{', '}': // brace expansion
			fallthrough
		case '<', '>', '|': // redirection/pipe
			fallthrough
		case '&', ';': // background/separator
			if !lastWasUnderscore {
				b.WriteByte('_')
				lastWasUnderscore = true
			}

		default:
			b.WriteRune(r)
			lastWasUnderscore = r == '_'
		}
	}

	// Trim leading/trailing underscores
	return strings.Trim(b.String(), "_")
}

// normalizeToASCII converts non-ASCII characters to their ASCII equivalents.
// Uses NFKD normalization to decompose characters (ō→o, é→e, etc.)
// and strips any remaining non-ASCII characters.
func normalizeToASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	result, _, _ := transform.String(t, s)

	// Strip any remaining non-ASCII
	var b strings.Builder
	for _, r := range result {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
