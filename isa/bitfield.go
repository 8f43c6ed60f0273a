package isa

// Field is a named fixed bit range [Lo, Hi] of a 32-bit instruction word.
// The ranges below are defined by the ISA and are compile-time constants,
// never derived from the encodings themselves.
type Field struct {
	Name string
	Hi   uint
	Lo   uint
}

var (
	Opcode = Field{"opcode", 6, 0}
	Rd     = Field{"rd", 11, 7}
	Funct3 = Field{"funct3", 14, 12}
	Rs1    = Field{"rs1", 19, 15}
	Rs2    = Field{"rs2", 24, 20}
	Funct7 = Field{"funct7", 31, 25}
	CSR    = Field{"csr", 31, 20}
)

// Fields lists the standard subfields, low bits first.
func Fields() []Field {
	return []Field{Opcode, Rd, Funct3, Rs1, Rs2, Funct7, CSR}
}

func (f Field) Width() uint {
	return f.Hi - f.Lo + 1
}

// Mask is the field's bit mask within a 32-bit word.
func (f Field) Mask() uint32 {
	return ((1 << f.Width()) - 1) << f.Lo
}

// Extract slices the field's bits out of a 32-character encoding, preserving
// bit order: bit 31 is the leftmost character. The encoding invariant is
// checked at record construction, so no bounds check happens here.
func Extract(encoding string, f Field) string {
	return encoding[EncodingBits-1-f.Hi : EncodingBits-f.Lo]
}

// ExtractWord slices the field's bits out of a concrete instruction word,
// shifted down to bit 0.
func ExtractWord(word uint32, f Field) uint32 {
	return (word & f.Mask()) >> f.Lo
}
