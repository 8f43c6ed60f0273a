package ctrl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func declare(t *testing.T, scheme Scheme, names ...string) *CodeTable {
	t.Helper()
	e := NewEnum(scheme)
	require.NoError(t, e.Declare(names...))
	table, err := e.Build()
	require.NoError(t, err)
	return table
}

func TestBinaryCodes(t *testing.T) {
	table := declare(t, Binary, "ALU", "MUL", "DEV", "LSU", "BRU", "CSU")
	require.Equal(t, uint(3), table.Width(), "6 symbols need 3 bits")
	require.Equal(t, 6, table.Len())
	for i, sym := range table.Symbols() {
		require.Equal(t, i, sym.Ordinal)
		require.Equal(t, uint64(i), sym.Code)
	}
}

func TestOneHotCodes(t *testing.T) {
	table := declare(t, OneHot, "ALU", "MUL", "DEV", "LSU", "BRU", "CSU")
	require.Equal(t, uint(6), table.Width(), "one-hot width equals symbol count")

	want := map[string]uint64{"ALU": 1, "MUL": 2, "DEV": 4, "LSU": 8, "BRU": 16, "CSU": 32}
	for name, code := range want {
		sym, ok := table.Lookup(name)
		require.True(t, ok, name)
		require.Equal(t, code, sym.Code, name)
	}
}

func TestGrayCodes(t *testing.T) {
	table := declare(t, Gray, "a", "b", "c", "d")
	require.Equal(t, uint(2), table.Width())
	var codes []uint64
	for _, sym := range table.Symbols() {
		codes = append(codes, sym.Code)
	}
	require.Equal(t, []uint64{0, 1, 3, 2}, codes)
}

func TestWidthEdgeCases(t *testing.T) {
	require.Equal(t, uint(0), declare(t, Binary, "only").Width())
	require.Equal(t, uint(1), declare(t, Gray, "a", "b").Width())
	require.Equal(t, uint(2), declare(t, Binary, "a", "b", "c").Width())
	require.Equal(t, uint(1), declare(t, OneHot, "only").Width())
}

func TestDeclareAfterBuildIsFrozen(t *testing.T) {
	e := NewEnum(Binary)
	require.NoError(t, e.Declare("a", "b"))
	_, err := e.Build()
	require.NoError(t, err)
	require.ErrorIs(t, e.Declare("late"), ErrFrozenTable)
}

func TestDuplicateSymbol(t *testing.T) {
	e := NewEnum(Binary)
	require.NoError(t, e.Declare("a"))
	require.Error(t, e.Declare("a"))
}

func TestOneHotTooWide(t *testing.T) {
	e := NewEnum(OneHot)
	for i := 0; i < 65; i++ {
		require.NoError(t, e.Declare(string(rune('a'+i%26))+string(rune('0'+i/26))))
	}
	_, err := e.Build()
	require.Error(t, err)
}

func TestCodesUniquePerTable(t *testing.T) {
	for _, scheme := range []Scheme{Binary, OneHot, Gray} {
		table := declare(t, scheme, "a", "b", "c", "d", "e")
		seen := make(map[uint64]string)
		for _, sym := range table.Symbols() {
			prev, dup := seen[sym.Code]
			require.False(t, dup, "%v: code %d assigned to both %s and %s", scheme, sym.Code, prev, sym.Name)
			seen[sym.Code] = sym.Name
		}
	}
}

func TestParseScheme(t *testing.T) {
	for _, name := range []string{"Binary", "OneHot", "Gray"} {
		scheme, err := ParseScheme(name)
		require.NoError(t, err)
		require.Equal(t, name, scheme.String())
	}
	_, err := ParseScheme("Johnson")
	require.Error(t, err)
}
