package faturex

import (
	"strings"
	"unicode"
)

// Clean prepares raw cell text for inclusion in a Record. Newlines,
// carriage returns, and tabs become single spaces, remaining C0/C1
// control characters are dropped, runs of whitespace collapse to one
// space, and the ends are trimmed. The result is safe to serialize
// without escaping surprises.
func Clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	pendingSpace := false
	for _, r := range raw {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case r < 0x20 || (r >= 0x7f && r <= 0x9f):
			// control character, drop
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
