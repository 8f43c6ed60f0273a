package isa

import (
	"fmt"
	"sort"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"
)

// opcodeEntry is one instruction definition in the riscv-opcodes
// instr_dict.json shape:
//
//	"add": {
//	  "encoding": "0000000----------000-----0110011",
//	  "variable_fields": ["rd", "rs1", "rs2"],
//	  "extension": ["rv_i"]
//	}
type opcodeEntry struct {
	Encoding       string   `json:"encoding"`
	VariableFields []string `json:"variable_fields"`
	Extension      []string `json:"extension"`
}

// LoadOpcodesJSON imports a riscv-opcodes instruction dictionary into a
// record store. Encodings are normalized to the {0,1,?} alphabet. An
// instruction listed under several extensions yields one record per
// extension, since record names are only unique within an extension.
// Entries without an encoding are skipped. Records are ordered by name then
// extension so the import is deterministic.
func LoadOpcodesJSON(path string) (*Store, error) {
	dict, err := jsonutil.LoadJSON[map[string]opcodeEntry](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load opcodes JSON: %w", err)
	}

	names := make([]string, 0, len(*dict))
	for name := range *dict {
		names = append(names, name)
	}
	sort.Strings(names)

	st := &Store{}
	for _, name := range names {
		entry := (*dict)[name]
		if entry.Encoding == "" {
			continue
		}
		encoding := NormalizeEncoding(entry.Encoding)
		if err := CheckEncoding(encoding); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		exts := entry.Extension
		if len(exts) == 0 {
			exts = []string{"unknown"}
		}
		for _, ext := range exts {
			st.Add(Record{
				Name:      name,
				Extension: ext,
				Encoding:  encoding,
				Args:      entry.VariableFields,
			})
		}
	}
	return st, nil
}

// Extensions lists every extension tag present in the store, sorted.
func (s *Store) Extensions() []string {
	seen := make(map[string]struct{})
	for _, rec := range s.recs {
		seen[rec.Extension] = struct{}{}
	}
	exts := make([]string, 0, len(seen))
	for ext := range seen {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// FilterExtensions keeps only records whose extension tag is in the requested
// set, preserving order. It also reports requested tags that matched nothing,
// so a typo in a filter is visible instead of silently shrinking the output.
// Filtering away every record is an error.
func (s *Store) FilterExtensions(tags []string) (*Store, []string, error) {
	want := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		want[tag] = struct{}{}
	}

	matched := make(map[string]struct{})
	out := &Store{}
	for _, rec := range s.recs {
		if _, ok := want[rec.Extension]; ok {
			matched[rec.Extension] = struct{}{}
			out.Add(rec)
		}
	}

	var unknown []string
	for _, tag := range tags {
		if _, ok := matched[tag]; !ok {
			unknown = append(unknown, tag)
		}
	}
	sort.Strings(unknown)

	if out.Count() == 0 {
		return nil, unknown, fmt.Errorf("no instructions left after filtering extensions %v", tags)
	}
	return out, unknown, nil
}

// Validate re-checks every record encoding and returns a list of issues,
// empty when the store is clean. Loading already enforces the invariant, so
// this mainly guards hand-edited databases.
func (s *Store) Validate() []string {
	var issues []string
	for _, rec := range s.recs {
		if err := CheckEncoding(rec.Encoding); err != nil {
			issues = append(issues, fmt.Sprintf("instruction %q: %v", rec.Name, err))
		}
	}
	return issues
}
