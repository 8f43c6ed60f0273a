package ctrl

import "sort"

// Case binds a set of instruction mnemonics to a target symbol. Members are
// kept in listed order for reproducible output, membership tests use a set.
type Case struct {
	Members []string
	Symbol  Symbol
}

type ruleCase struct {
	members map[string]struct{}
	symbol  Symbol
}

// Rule is an ordered first-match classifier for one control field: cases are
// evaluated in listed order and the earliest set containing a mnemonic wins.
// A mnemonic in no set resolves to the default symbol. Overlapping
// memberships are permitted, not an error; Overlaps surfaces them as a
// diagnostic. A Rule is immutable once constructed.
type Rule struct {
	cases []ruleCase
	def   Symbol
}

// NewRule builds a classifier from ordered cases and a default symbol.
// The case order given here is the match priority, which is why this is an
// explicit list rather than a keyed map.
func NewRule(def Symbol, cases ...Case) *Rule {
	r := &Rule{def: def, cases: make([]ruleCase, len(cases))}
	for i, c := range cases {
		members := make(map[string]struct{}, len(c.Members))
		for _, name := range c.Members {
			members[name] = struct{}{}
		}
		r.cases[i] = ruleCase{members: members, symbol: c.Symbol}
	}
	return r
}

// Classify resolves a mnemonic to its control symbol, first match wins.
func (r *Rule) Classify(name string) Symbol {
	sym, _ := r.ClassifyMatched(name)
	return sym
}

// ClassifyMatched additionally reports whether any case matched, so callers
// can count silent default fallbacks instead of masking them.
func (r *Rule) ClassifyMatched(name string) (Symbol, bool) {
	for _, c := range r.cases {
		if _, ok := c.members[name]; ok {
			return c.symbol, true
		}
	}
	return r.def, false
}

func (r *Rule) Default() Symbol {
	return r.def
}

// Overlaps reports mnemonics appearing in more than one case, mapped to the
// symbol names of every case listing them (in case order). Advisory only:
// first-match semantics silently pick the earliest case either way.
func (r *Rule) Overlaps() map[string][]string {
	count := make(map[string][]string)
	for _, c := range r.cases {
		names := make([]string, 0, len(c.members))
		for name := range c.members {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			count[name] = append(count[name], c.symbol.Name)
		}
	}
	overlaps := make(map[string][]string)
	for name, syms := range count {
		if len(syms) > 1 {
			overlaps[name] = syms
		}
	}
	return overlaps
}
