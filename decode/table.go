package decode

import (
	"fmt"

	"github.com/rvtools/rvctrl/ctrl"
	"github.com/rvtools/rvctrl/isa"
)

// Entry is one compiled decode-table row: a wildcard pattern and the control
// code the matching instruction resolves to. Name is the mnemonic the row was
// compiled from, kept for human-readable backend output only.
type Entry struct {
	Name    string
	Pattern Pattern
	Code    uint64
}

// DecodeTable is the compiled decode logic for one control field: rows in
// input-record order plus a default code for words matching no row. The table
// is self-contained (patterns and codes only, no record references) and
// immutable once compiled.
//
// Overlapping or duplicate patterns are not merged, minimized or detected
// here; consumers that need disjoint rows run a minimizer downstream.
type DecodeTable struct {
	field     string
	entries   []Entry
	def       uint64
	width     uint
	unmatched int
}

// Compile builds the decode table for one control field. Every record
// classifies to a symbol through the rule (first match, else the rule
// default) and contributes one row, in record order. The count of records
// that fell through to the default is retained so missing classifications
// are discoverable rather than silently absorbed.
func Compile(field string, recs []isa.Record, rule *ctrl.Rule, codes *ctrl.CodeTable) (*DecodeTable, error) {
	t := &DecodeTable{
		field:   field,
		entries: make([]Entry, 0, len(recs)),
		def:     rule.Default().Code,
		width:   codes.Width(),
	}
	for _, rec := range recs {
		pat, err := CompilePattern(rec.Encoding)
		if err != nil {
			return nil, fmt.Errorf("%s: instruction %q: %w", field, rec.Name, err)
		}
		sym, matched := rule.ClassifyMatched(rec.Name)
		if !matched {
			t.unmatched++
		}
		t.entries = append(t.entries, Entry{Name: rec.Name, Pattern: pat, Code: sym.Code})
	}
	return t, nil
}

// Field is the control field this table was compiled for.
func (t *DecodeTable) Field() string {
	return t.field
}

// Entries returns the rows in compilation order. The slice is shared;
// callers treat it as read-only.
func (t *DecodeTable) Entries() []Entry {
	return t.entries
}

func (t *DecodeTable) Len() int {
	return len(t.entries)
}

// Default is the code returned for words matching no row.
func (t *DecodeTable) Default() uint64 {
	return t.def
}

// Width is the control code width in bits.
func (t *DecodeTable) Width() uint {
	return t.width
}

// Unmatched counts records that resolved to the rule default because no
// classification case listed them.
func (t *DecodeTable) Unmatched() int {
	return t.unmatched
}

// Decode is the software-switch consumer of the table: it returns the code
// of the first row matching the word, else the default.
func (t *DecodeTable) Decode(word uint32) uint64 {
	for _, e := range t.entries {
		if e.Pattern.Matches(word) {
			return e.Code
		}
	}
	return t.def
}
