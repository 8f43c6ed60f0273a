// Package backend turns compiled decode tables into hardware-description
// source. It consumes only the decode.DecodeTable and ctrl.CodeTable data
// structures, never the instruction records they were compiled from.
package backend

import (
	"fmt"
	"io"

	"github.com/rvtools/rvctrl/ctrl"
	"github.com/rvtools/rvctrl/decode"
)

// instructions listed per line in generated membership Seqs
const seqWrap = 5

// WriteChisel emits the Chisel fragments for one control field: a CtrlEnum
// object declaring the values in ordinal order with their mnemonic
// memberships, and a decode object carrying the BitPat rows, the default and
// the selection helper matching the coding scheme.
func WriteChisel(w io.Writer, pkg string, sig *ctrl.Signal, tbl *decode.DecodeTable) error {
	name := makeIdentTitle(sig.Name)

	fmt.Fprintf(w, "package %s\n\n", pkg)
	fmt.Fprintf(w, "import chisel3._\n")
	fmt.Fprintf(w, "import chisel3.util._\n")
	fmt.Fprintf(w, "import rv.util.CtrlEnum\n\n")

	if err := writeCtrlEnum(w, name, sig); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n")
	return writeDecodeObject(w, name, sig, tbl)
}

func writeCtrlEnum(w io.Writer, name string, sig *ctrl.Signal) error {
	fmt.Fprintf(w, "object %s extends CtrlEnum(CtrlEnum.%s) {\n", name, sig.Codes.Scheme())
	for _, sym := range sig.Codes.Symbols() {
		fmt.Fprintf(w, "  val %s = Value\n", makeIdentTitle(sym.Name))
	}
	for _, c := range sig.Cases {
		if len(c.Members) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n  def is%s: Seq[String] = Seq(\n", makeIdentTitle(c.Symbol.Name))
		for i, mnem := range c.Members {
			if i%seqWrap == 0 {
				fmt.Fprintf(w, "    ")
			}
			fmt.Fprintf(w, "%q", mnem)
			switch {
			case i == len(c.Members)-1:
				fmt.Fprintf(w, "\n")
			case i%seqWrap == seqWrap-1:
				fmt.Fprintf(w, ",\n")
			default:
				fmt.Fprintf(w, ", ")
			}
		}
		fmt.Fprintf(w, "  )\n")
	}
	_, err := fmt.Fprintf(w, "}\n")
	return err
}

func writeDecodeObject(w io.Writer, name string, sig *ctrl.Signal, tbl *decode.DecodeTable) error {
	fmt.Fprintf(w, "object %sDecode {\n", name)
	fmt.Fprintf(w, "  // %d-bit %s code per matching instruction word\n", tbl.Width(), sig.Codes.Scheme())
	fmt.Fprintf(w, "  def default: UInt = %s.%s\n\n", name, makeIdentTitle(sig.Default.Name))
	fmt.Fprintf(w, "  def table: Seq[(BitPat, UInt)] = Seq(\n")
	for _, e := range tbl.Entries() {
		sym := symbolForCode(sig.Codes, e.Code)
		fmt.Fprintf(w, "    BitPat(\"b%s\") -> %s.%s, // %s\n", e.Pattern, name, makeIdentTitle(sym.Name), e.Name)
	}
	fmt.Fprintf(w, "  )\n\n")

	switch sig.Codes.Scheme() {
	case ctrl.OneHot:
		fmt.Fprintf(w, "  def select[T <: Data](key: UInt, mapping: Seq[T]): T =\n")
		fmt.Fprintf(w, "    Mux1H(key, mapping)\n\n")
		fmt.Fprintf(w, "  def prioritySelect[T <: Data](key: UInt, mapping: Seq[T]): T =\n")
		fmt.Fprintf(w, "    PriorityMux(key.asBools, mapping)\n")
	default:
		fmt.Fprintf(w, "  def select[T <: Data](key: UInt, mapping: Seq[(UInt, T)], default: T): T =\n")
		fmt.Fprintf(w, "    MuxLookup(key, default)(mapping)\n")
	}
	_, err := fmt.Fprintf(w, "}\n")
	return err
}

// symbolForCode maps a compiled code back to its symbol. Codes are unique
// per table, so the first hit is the only hit.
func symbolForCode(codes *ctrl.CodeTable, code uint64) ctrl.Symbol {
	for _, sym := range codes.Symbols() {
		if sym.Code == code {
			return sym
		}
	}
	// Compile resolves every code through the same table, so this is
	// unreachable for tables produced by decode.Compile.
	return ctrl.Symbol{Name: fmt.Sprintf("Unknown%d", code)}
}
