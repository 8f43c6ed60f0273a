// Package isa holds the instruction record model shared by the decode-table
// compiler: flat-database parsing, the fixed RISC-V bit-field layout, and the
// riscv-opcodes JSON import.
package isa

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMalformedRecord is returned when an instruction record line does not
// carry at least a name, an extension tag and a 32-bit encoding, or when the
// encoding itself is not a 32-character string over {0,1,?}.
var ErrMalformedRecord = errors.New("malformed instruction record")

// EncodingBits is the fixed instruction word width. Every record encoding is
// exactly this many characters, most-significant bit first.
const EncodingBits = 32

// Record is one instruction entry: mnemonic, the extension it belongs to, its
// wildcarded 32-bit encoding, and the ordered argument-field names. Names are
// unique only within an extension; the same mnemonic may appear under several
// extensions as distinct records.
type Record struct {
	Name      string
	Extension string
	Encoding  string
	Args      []string
}

func (r Record) String() string {
	return fmt.Sprintf("%s (%s): %s", r.Name, r.Extension, r.Encoding)
}

// ParseRecord parses one whitespace-separated database line:
//
//	<name> <extension> <encoding32> [<arg0> <arg1> ...]
//
// Fewer than 3 tokens is a malformed record. Trailing tokens are the ordered
// argument names and may be absent. The encoding is validated and normalized
// here so that downstream field extraction never needs bounds checks.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Record{}, fmt.Errorf("%w: want name, extension and encoding, got %d field(s)", ErrMalformedRecord, len(fields))
	}
	rec := Record{
		Name:      fields[0],
		Extension: fields[1],
		Encoding:  NormalizeEncoding(fields[2]),
		Args:      fields[3:],
	}
	if err := CheckEncoding(rec.Encoding); err != nil {
		return Record{}, fmt.Errorf("%s: %w", rec.Name, err)
	}
	return rec, nil
}

// NormalizeEncoding rewrites the accepted don't-care spellings ('x', 'X', '-')
// to the canonical '?' used by the flat database format. '0' and '1' pass
// through unchanged, as does anything CheckEncoding would reject.
func NormalizeEncoding(encoding string) string {
	var b strings.Builder
	b.Grow(len(encoding))
	for _, c := range encoding {
		switch c {
		case 'x', 'X', '-':
			b.WriteByte('?')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// CheckEncoding enforces the record encoding invariant: exactly EncodingBits
// characters, each one of '0', '1' or '?'.
func CheckEncoding(encoding string) error {
	if len(encoding) != EncodingBits {
		return fmt.Errorf("%w: encoding is %d characters, want %d", ErrMalformedRecord, len(encoding), EncodingBits)
	}
	for i := 0; i < len(encoding); i++ {
		switch encoding[i] {
		case '0', '1', '?':
		default:
			return fmt.Errorf("%w: encoding has invalid character %q at bit %d", ErrMalformedRecord, encoding[i], EncodingBits-1-i)
		}
	}
	return nil
}

// Store holds instruction records in input order. No dedup is performed:
// duplicate names across extensions are deliberately kept as distinct records.
type Store struct {
	recs []Record
}

func (s *Store) Add(recs ...Record) {
	s.recs = append(s.recs, recs...)
}

// Count reports the number of loaded records.
func (s *Store) Count() int {
	return len(s.recs)
}

// Records returns the records in input order. The slice is shared; callers
// treat it as read-only.
func (s *Store) Records() []Record {
	return s.recs
}

// ReadRecords parses a flat record database, one record per line. Blank lines
// and '#' comments are skipped. A malformed record aborts the whole load.
func ReadRecords(r io.Reader) (*Store, error) {
	st := &Store{}
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := trimComments(sc.Text())
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		st.Add(rec)
	}
	return st, sc.Err()
}

// LoadDB reads a flat record database from a file.
func LoadDB(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

// WriteRecords writes records in the flat database format consumed by
// ReadRecords. Output round-trips: ReadRecords(WriteRecords(recs)) == recs.
func WriteRecords(w io.Writer, recs []Record) error {
	for _, rec := range recs {
		line := rec.Name + " " + rec.Extension + " " + rec.Encoding
		if len(rec.Args) > 0 {
			line += " " + strings.Join(rec.Args, " ")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func trimComments(line string) string {
	hash := strings.IndexByte(line, '#')
	if hash == -1 {
		return line
	}
	return line[:hash]
}
