// Package ctrl assigns enumeration codes to control-signal symbol sets and
// classifies instruction mnemonics into those symbols.
package ctrl

import (
	"errors"
	"fmt"
	"math/bits"
)

// Scheme selects how symbol codes are assigned.
type Scheme uint8

const (
	Binary Scheme = iota
	OneHot
	Gray
)

func (s Scheme) String() string {
	switch s {
	case Binary:
		return "Binary"
	case OneHot:
		return "OneHot"
	case Gray:
		return "Gray"
	default:
		return fmt.Sprintf("Scheme(%d)", uint8(s))
	}
}

// ParseScheme parses a scheme name as it appears in signal configs.
func ParseScheme(s string) (Scheme, error) {
	switch s {
	case "Binary":
		return Binary, nil
	case "OneHot":
		return OneHot, nil
	case "Gray":
		return Gray, nil
	default:
		return 0, fmt.Errorf("unknown coding scheme %q", s)
	}
}

// ErrFrozenTable is returned by Declare once the enumeration has been built.
var ErrFrozenTable = errors.New("enumeration is frozen, codes already assigned")

// Symbol is one declared enumeration value with its assigned code.
type Symbol struct {
	Name    string
	Ordinal int
	Code    uint64
}

// Enum accumulates symbol declarations for one control field. Codes are not
// assigned until Build, so there is no window where a partially declared
// table can be read. Declaration order is significant: the Nth declared
// symbol (0-based) gets code N (Binary), 1<<N (OneHot) or N^(N>>1) (Gray).
type Enum struct {
	scheme Scheme
	names  []string
	seen   map[string]struct{}
	frozen bool
}

// NewEnum starts an enumeration with the given coding scheme. The scheme is
// fixed for the lifetime of the enumeration.
func NewEnum(scheme Scheme) *Enum {
	return &Enum{scheme: scheme, seen: make(map[string]struct{})}
}

// Declare appends symbols in order. Declaring after Build fails with
// ErrFrozenTable; re-declaring a name is an error since codes must stay
// unique per table.
func (e *Enum) Declare(names ...string) error {
	if e.frozen {
		return fmt.Errorf("%w: cannot declare %v", ErrFrozenTable, names)
	}
	for _, name := range names {
		if _, dup := e.seen[name]; dup {
			return fmt.Errorf("symbol %q declared twice", name)
		}
		e.seen[name] = struct{}{}
		e.names = append(e.names, name)
	}
	return nil
}

// Build computes the full code table in one pass and freezes the
// enumeration. A one-hot table wider than 64 symbols does not fit the code
// type and is rejected.
func (e *Enum) Build() (*CodeTable, error) {
	if e.scheme == OneHot && len(e.names) > 64 {
		return nil, fmt.Errorf("one-hot enumeration with %d symbols exceeds 64-bit codes", len(e.names))
	}
	e.frozen = true

	t := &CodeTable{
		scheme: e.scheme,
		syms:   make([]Symbol, len(e.names)),
		byName: make(map[string]int, len(e.names)),
		width:  codeWidth(e.scheme, len(e.names)),
	}
	for i, name := range e.names {
		t.syms[i] = Symbol{Name: name, Ordinal: i, Code: codeFor(e.scheme, i)}
		t.byName[name] = i
	}
	return t, nil
}

func codeFor(scheme Scheme, n int) uint64 {
	switch scheme {
	case OneHot:
		return 1 << uint(n)
	case Gray:
		return uint64(n) ^ (uint64(n) >> 1)
	default:
		return uint64(n)
	}
}

func codeWidth(scheme Scheme, count int) uint {
	if scheme == OneHot {
		return uint(count)
	}
	if count <= 1 {
		return 0
	}
	return uint(bits.Len(uint(count - 1)))
}

// CodeTable is the frozen ordinal -> code mapping for one enumeration.
// It is immutable and freely shareable.
type CodeTable struct {
	scheme Scheme
	syms   []Symbol
	byName map[string]int
	width  uint
}

func (t *CodeTable) Scheme() Scheme {
	return t.scheme
}

// Width is the code width in bits: symbol count for OneHot,
// ceil(log2(count)) for Binary and Gray.
func (t *CodeTable) Width() uint {
	return t.width
}

func (t *CodeTable) Len() int {
	return len(t.syms)
}

// Symbol returns the symbol declared at the given ordinal.
func (t *CodeTable) Symbol(ordinal int) (Symbol, bool) {
	if ordinal < 0 || ordinal >= len(t.syms) {
		return Symbol{}, false
	}
	return t.syms[ordinal], true
}

// Lookup finds a symbol by name.
func (t *CodeTable) Lookup(name string) (Symbol, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Symbol{}, false
	}
	return t.syms[i], true
}

// Symbols returns all symbols in declaration order. The slice is shared;
// callers treat it as read-only.
func (t *CodeTable) Symbols() []Symbol {
	return t.syms
}
