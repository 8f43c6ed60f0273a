package backend

import (
	"strings"
	"unicode"
)

// makeIdentTitle squeezes an arbitrary configured name into a TitleCase
// identifier usable as a Scala object or value name.
func makeIdentTitle(inp string) string {
	var b strings.Builder
	nextUpper := true
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			nextUpper = true
		case unicode.IsLetter(r):
			if nextUpper {
				b.WriteString(strings.ToUpper(string(r)))
			} else {
				b.WriteRune(r)
			}
			nextUpper = false
		default:
			nextUpper = true
		}
	}
	return b.String()
}
