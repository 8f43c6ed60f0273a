package decode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	addEncoding = "0000000??????????000?????0110011"
	mulEncoding = "0000001??????????000?????0110011"
)

func TestCompilePattern(t *testing.T) {
	p, err := CompilePattern(addEncoding)
	require.NoError(t, err)
	require.Equal(t, uint32(0xFE00707F), p.Mask)
	require.Equal(t, uint32(0x00000033), p.Match)
}

func TestPatternMatches(t *testing.T) {
	add, err := CompilePattern(addEncoding)
	require.NoError(t, err)
	mul, err := CompilePattern(mulEncoding)
	require.NoError(t, err)

	addWord := uint32(0x00B50533) // add a0, a0, a1
	mulWord := uint32(0x02B50533) // mul a0, a0, a1

	require.True(t, add.Matches(addWord))
	require.False(t, add.Matches(mulWord))
	require.True(t, mul.Matches(mulWord))
	require.False(t, mul.Matches(addWord))
}

func TestPatternString(t *testing.T) {
	p, err := CompilePattern(addEncoding)
	require.NoError(t, err)
	require.Equal(t, addEncoding, p.String())

	q, err := CompilePattern("0000000xxxxxxxxxx000-----0110011")
	require.NoError(t, err)
	require.Equal(t, addEncoding, q.String(), "alternate don't-care spellings render as '?'")
}

func TestCompilePatternErrors(t *testing.T) {
	_, err := CompilePattern("0110011")
	require.ErrorContains(t, err, "32")

	_, err = CompilePattern("0000000??????????2000????0110011")
	require.ErrorContains(t, err, "invalid character")
}
