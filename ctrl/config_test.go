package ctrl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func fuTypeConfig() SignalConfig {
	return SignalConfig{
		Name:   "FuType",
		Scheme: "OneHot",
		Values: []SignalValue{
			{Name: "ALU", Instructions: []string{"add", "addi", "sub"}},
			{Name: "MUL", Instructions: []string{"mul", "mulh"}},
			{Name: "LSU", Instructions: []string{"lw", "sw"}},
		},
	}
}

func TestSignalConfigBuild(t *testing.T) {
	sig, err := fuTypeConfig().Build()
	require.NoError(t, err)

	require.Equal(t, "FuType", sig.Name)
	require.Equal(t, OneHot, sig.Codes.Scheme())
	require.Equal(t, uint(3), sig.Codes.Width())

	alu, ok := sig.Codes.Lookup("ALU")
	require.True(t, ok)
	require.Equal(t, uint64(1), alu.Code)
	lsu, ok := sig.Codes.Lookup("LSU")
	require.True(t, ok)
	require.Equal(t, uint64(4), lsu.Code)

	require.Equal(t, alu, sig.Default, "empty default picks the first value")
	require.Equal(t, lsu, sig.Rule.Classify("sw"))
}

func TestSignalConfigExplicitDefault(t *testing.T) {
	cfg := fuTypeConfig()
	cfg.Default = "LSU"
	sig, err := cfg.Build()
	require.NoError(t, err)
	require.Equal(t, "LSU", sig.Default.Name)
	require.Equal(t, sig.Default, sig.Rule.Classify("unknown-mnemonic"))
}

func TestSignalConfigErrors(t *testing.T) {
	t.Run("bad scheme", func(t *testing.T) {
		cfg := fuTypeConfig()
		cfg.Scheme = "TwoHot"
		_, err := cfg.Build()
		require.ErrorContains(t, err, "TwoHot")
	})
	t.Run("unknown default", func(t *testing.T) {
		cfg := fuTypeConfig()
		cfg.Default = "FPU"
		_, err := cfg.Build()
		require.ErrorContains(t, err, "FPU")
	})
	t.Run("no values", func(t *testing.T) {
		cfg := fuTypeConfig()
		cfg.Values = nil
		_, err := cfg.Build()
		require.Error(t, err)
	})
	t.Run("duplicate value", func(t *testing.T) {
		cfg := fuTypeConfig()
		cfg.Values = append(cfg.Values, SignalValue{Name: "ALU"})
		_, err := cfg.Build()
		require.Error(t, err)
	})
}

func TestLoadSignals(t *testing.T) {
	cfgJSON := `[
  {
    "name": "FuType",
    "scheme": "OneHot",
    "default": "ALU",
    "values": [
      {"name": "ALU", "instructions": ["add", "sub"]},
      {"name": "MUL", "instructions": ["mul"]}
    ]
  }
]`
	path := filepath.Join(t.TempDir(), "signals.json")
	require.NoError(t, os.WriteFile(path, []byte(cfgJSON), 0o644))

	cfgs, err := LoadSignals(path)
	require.NoError(t, err)
	require.Len(t, cfgs, 1)
	require.Equal(t, "FuType", cfgs[0].Name)
	require.Equal(t, "ALU", cfgs[0].Default)
	require.Len(t, cfgs[0].Values, 2)
}
