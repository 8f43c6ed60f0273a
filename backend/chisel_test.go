package backend

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rvtools/rvctrl/ctrl"
	"github.com/rvtools/rvctrl/decode"
	"github.com/rvtools/rvctrl/isa"
)

func emitFixture(t *testing.T, scheme string) string {
	t.Helper()
	cfg := ctrl.SignalConfig{
		Name:   "FuType",
		Scheme: scheme,
		Values: []ctrl.SignalValue{
			{Name: "ALU", Instructions: []string{"add", "addi", "sub", "and", "or", "xor"}},
			{Name: "MUL", Instructions: []string{"mul"}},
		},
	}
	sig, err := cfg.Build()
	require.NoError(t, err)

	recs := []isa.Record{
		{Name: "add", Extension: "rv_i", Encoding: "0000000??????????000?????0110011"},
		{Name: "mul", Extension: "rv_m", Encoding: "0000001??????????000?????0110011"},
	}
	tbl, err := decode.Compile(sig.Name, recs, sig.Rule, sig.Codes)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteChisel(&buf, "rv.util.decoder.ctrl", sig, tbl))
	return buf.String()
}

func TestWriteChiselOneHot(t *testing.T) {
	out := emitFixture(t, "OneHot")

	require.Contains(t, out, "package rv.util.decoder.ctrl")
	require.Contains(t, out, "object FuType extends CtrlEnum(CtrlEnum.OneHot) {")
	require.Contains(t, out, "val ALU = Value")
	require.Contains(t, out, "val MUL = Value")
	require.Contains(t, out, "def isALU: Seq[String] = Seq(")
	require.Contains(t, out, `"add", "addi", "sub", "and", "or",`)
	require.Contains(t, out, `"xor"`)

	require.Contains(t, out, "object FuTypeDecode {")
	require.Contains(t, out, "def default: UInt = FuType.ALU")
	require.Contains(t, out, `BitPat("b0000000??????????000?????0110011") -> FuType.ALU, // add`)
	require.Contains(t, out, `BitPat("b0000001??????????000?????0110011") -> FuType.MUL, // mul`)
	require.Contains(t, out, "Mux1H(key, mapping)")
	require.Contains(t, out, "PriorityMux(key.asBools, mapping)")
}

func TestWriteChiselBinary(t *testing.T) {
	out := emitFixture(t, "Binary")

	require.Contains(t, out, "object FuType extends CtrlEnum(CtrlEnum.Binary) {")
	require.Contains(t, out, "MuxLookup(key, default)(mapping)")
	require.NotContains(t, out, "Mux1H", "lookup scheme gets no one-hot helpers")
	require.Contains(t, out, "// 1-bit Binary code per matching instruction word")
}

func TestMakeIdentTitle(t *testing.T) {
	require.Equal(t, "ALU", makeIdentTitle("ALU"))
	require.Equal(t, "FuType", makeIdentTitle("fu_type"))
	require.Equal(t, "_2NdStage", makeIdentTitle("2nd stage"))
}

func TestWriteChiselValueOrderMatchesDeclaration(t *testing.T) {
	out := emitFixture(t, "OneHot")
	require.Less(t,
		strings.Index(out, "val ALU = Value"),
		strings.Index(out, "val MUL = Value"),
		"values emit in declaration (ordinal) order")
}
