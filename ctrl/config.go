package ctrl

import (
	"fmt"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"
)

// SignalConfig is the declarative description of one control field, as
// written in the JSON signal config consumed by the CLI:
//
//	{
//	  "name": "FuType",
//	  "scheme": "OneHot",
//	  "default": "ALU",
//	  "values": [
//	    {"name": "ALU", "instructions": ["add", "addi", "sub"]},
//	    {"name": "MUL", "instructions": ["mul", "mulh"]}
//	  ]
//	}
//
// Value order is declaration order and therefore fixes both code assignment
// and classification priority. An empty default picks the first value.
type SignalConfig struct {
	Name    string        `json:"name"`
	Scheme  string        `json:"scheme"`
	Default string        `json:"default,omitempty"`
	Values  []SignalValue `json:"values"`
}

type SignalValue struct {
	Name         string   `json:"name"`
	Instructions []string `json:"instructions"`
}

// Signal is a built control field: its frozen code table, the classifier,
// and the configured cases (kept for backends that list memberships).
type Signal struct {
	Name    string
	Codes   *CodeTable
	Rule    *Rule
	Cases   []Case
	Default Symbol
}

// Build turns the config into a Signal. Symbols are declared strictly in
// listed order, then the table is frozen before any rule is constructed.
func (c SignalConfig) Build() (*Signal, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("signal config without a name")
	}
	if len(c.Values) == 0 {
		return nil, fmt.Errorf("signal %q declares no values", c.Name)
	}
	scheme, err := ParseScheme(c.Scheme)
	if err != nil {
		return nil, fmt.Errorf("signal %q: %w", c.Name, err)
	}

	enum := NewEnum(scheme)
	for _, v := range c.Values {
		if err := enum.Declare(v.Name); err != nil {
			return nil, fmt.Errorf("signal %q: %w", c.Name, err)
		}
	}
	codes, err := enum.Build()
	if err != nil {
		return nil, fmt.Errorf("signal %q: %w", c.Name, err)
	}

	defName := c.Default
	if defName == "" {
		defName = c.Values[0].Name
	}
	def, ok := codes.Lookup(defName)
	if !ok {
		return nil, fmt.Errorf("signal %q: default %q is not a declared value", c.Name, defName)
	}

	cases := make([]Case, len(c.Values))
	for i, v := range c.Values {
		sym, _ := codes.Lookup(v.Name)
		cases[i] = Case{Members: v.Instructions, Symbol: sym}
	}

	return &Signal{
		Name:    c.Name,
		Codes:   codes,
		Rule:    NewRule(def, cases...),
		Cases:   cases,
		Default: def,
	}, nil
}

// LoadSignals reads a JSON signal config file: a list of SignalConfig.
func LoadSignals(path string) ([]SignalConfig, error) {
	cfgs, err := jsonutil.LoadJSON[[]SignalConfig](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load signal config: %w", err)
	}
	return *cfgs, nil
}
