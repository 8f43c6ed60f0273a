// Package decode compiles instruction records and category rules into
// backend-agnostic decode tables and provides the matching selection
// strategies over enumeration codes.
package decode

import (
	"fmt"
	"strings"

	"github.com/rvtools/rvctrl/isa"
)

// Pattern is a wildcarded 32-bit encoding reduced to a match/mask pair:
// a word matches when word&Mask == Match. Don't-care bits are clear in Mask.
type Pattern struct {
	Match uint32
	Mask  uint32
}

// CompilePattern compiles a 32-character encoding (bit 31 leftmost) into a
// Pattern. Don't-cares may be spelled '?', 'x', 'X' or '-'.
func CompilePattern(encoding string) (Pattern, error) {
	if len(encoding) != isa.EncodingBits {
		return Pattern{}, fmt.Errorf("pattern is %d characters, want %d", len(encoding), isa.EncodingBits)
	}
	var p Pattern
	for i := 0; i < len(encoding); i++ {
		bit := uint32(1) << uint(isa.EncodingBits-1-i)
		switch encoding[i] {
		case '0':
			p.Mask |= bit
		case '1':
			p.Mask |= bit
			p.Match |= bit
		case '?', 'x', 'X', '-':
			// don't-care, bit stays clear in the mask
		default:
			return Pattern{}, fmt.Errorf("pattern has invalid character %q at bit %d", encoding[i], isa.EncodingBits-1-i)
		}
	}
	return p, nil
}

// Matches reports whether a concrete instruction word matches the pattern.
func (p Pattern) Matches(word uint32) bool {
	return word&p.Mask == p.Match
}

// String renders the pattern back into its 32-character form with '?' for
// don't-care bits.
func (p Pattern) String() string {
	var b strings.Builder
	b.Grow(isa.EncodingBits)
	for i := isa.EncodingBits - 1; i >= 0; i-- {
		bit := uint32(1) << uint(i)
		switch {
		case p.Mask&bit == 0:
			b.WriteByte('?')
		case p.Match&bit != 0:
			b.WriteByte('1')
		default:
			b.WriteByte('0')
		}
	}
	return b.String()
}
