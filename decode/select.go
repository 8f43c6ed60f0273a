package decode

import (
	"errors"
	"fmt"

	"github.com/rvtools/rvctrl/ctrl"
)

var (
	// ErrArityMismatch is returned when a selection mapping does not have
	// exactly one value per declared enumeration symbol.
	ErrArityMismatch = errors.New("selection mapping arity mismatch")
	// ErrSchemeMismatch is returned when a one-hot selection strategy is
	// requested for a non-one-hot enumeration.
	ErrSchemeMismatch = errors.New("selection strategy requires a one-hot enumeration")
)

func checkArity[T any](table *ctrl.CodeTable, mapping []T) error {
	if len(mapping) != table.Len() {
		return fmt.Errorf("%w: %d mapping values for %d symbols", ErrArityMismatch, len(mapping), table.Len())
	}
	return nil
}

// Mux is the plain lookup selection strategy, valid for any coding scheme:
// the key is compared against every symbol code and the matching symbol's
// mapping value is selected.
type Mux[T any] struct {
	codes   []uint64
	mapping []T
	def     T
}

// NewMux builds a lookup selector. The mapping is indexed by symbol ordinal
// and must carry exactly one value per symbol.
func NewMux[T any](table *ctrl.CodeTable, mapping []T, def T) (*Mux[T], error) {
	if err := checkArity(table, mapping); err != nil {
		return nil, err
	}
	codes := make([]uint64, table.Len())
	for i, sym := range table.Symbols() {
		codes[i] = sym.Code
	}
	return &Mux[T]{codes: codes, mapping: mapping, def: def}, nil
}

// Select returns the mapping value whose symbol code equals key, else the
// default.
func (m *Mux[T]) Select(key uint64) T {
	for i, code := range m.codes {
		if code == key {
			return m.mapping[i]
		}
	}
	return m.def
}

// Mux1H is the parallel one-hot selection strategy: the result is the OR of
// every mapping value whose key bit is asserted. The caller guarantees a
// one-hot key, in which case this reduces to the single asserted entry; the
// default is returned when no bit within the table width is set.
type Mux1H struct {
	mapping []uint64
	def     uint64
}

// NewMux1H builds a parallel one-hot selector over numeric mapping values.
// The enumeration must use the OneHot scheme.
func NewMux1H(table *ctrl.CodeTable, mapping []uint64, def uint64) (*Mux1H, error) {
	if table.Scheme() != ctrl.OneHot {
		return nil, fmt.Errorf("%w: parallel select on %v enumeration", ErrSchemeMismatch, table.Scheme())
	}
	if err := checkArity(table, mapping); err != nil {
		return nil, err
	}
	return &Mux1H{mapping: mapping, def: def}, nil
}

// Select ORs together the mapping values of all asserted key bits.
func (m *Mux1H) Select(key uint64) uint64 {
	var out uint64
	hit := false
	for i := range m.mapping {
		if key&(1<<uint(i)) != 0 {
			out |= m.mapping[i]
			hit = true
		}
	}
	if !hit {
		return m.def
	}
	return out
}

// PriorityMux is the priority one-hot selection strategy: key bits are
// scanned in ordinal order, lowest ordinal first, and the first asserted
// bit's mapping value wins.
type PriorityMux[T any] struct {
	mapping []T
	def     T
}

// NewPriorityMux builds a priority one-hot selector. The enumeration must
// use the OneHot scheme.
func NewPriorityMux[T any](table *ctrl.CodeTable, mapping []T, def T) (*PriorityMux[T], error) {
	if table.Scheme() != ctrl.OneHot {
		return nil, fmt.Errorf("%w: priority select on %v enumeration", ErrSchemeMismatch, table.Scheme())
	}
	if err := checkArity(table, mapping); err != nil {
		return nil, err
	}
	return &PriorityMux[T]{mapping: mapping, def: def}, nil
}

// Select returns the mapping value of the lowest asserted key bit, else the
// default.
func (m *PriorityMux[T]) Select(key uint64) T {
	for i := range m.mapping {
		if key&(1<<uint(i)) != 0 {
			return m.mapping[i]
		}
	}
	return m.def
}
