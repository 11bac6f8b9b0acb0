package barcode

import (
	"github.com/pkg/errors"
)

// iupacMask maps IUPAC nucleotide codes to a 4-bit base mask (A=1, C=2, G=4,
// T=8). Ambiguity codes are bitwise ORs of those bases (e.g., R=A|G). U is
// treated as T.
var iupacMask [256]uint8

const (
	maskA = 1
	maskC = 2
	maskG = 4
	maskT = 8
)

func init() {
	set := func(c byte, bits uint8) {
		iupacMask[c] = bits
		iupacMask[c+'a'-'A'] = bits
	}
	set('A', maskA)
	set('C', maskC)
	set('G', maskG)
	set('T', maskT)
	set('U', maskT)
	set('M', maskA|maskC)
	set('R', maskA|maskG)
	set('W', maskA|maskT)
	set('S', maskC|maskG)
	set('Y', maskC|maskT)
	set('K', maskG|maskT)
	set('V', maskA|maskC|maskG)
	set('H', maskA|maskC|maskT)
	set('D', maskA|maskG|maskT)
	set('B', maskC|maskG|maskT)
	set('N', maskA|maskC|maskG|maskT)
}

// Pattern is an IUPAC degenerate-base template compiled to one allowed-base
// mask per position.
type Pattern []uint8

// CompilePattern compiles an IUPAC pattern string. Any symbol outside the
// IUPAC alphabet (ACGTUMRWSYKVHDBN, either case) is a configuration error.
// Compilation happens once at startup, not per read.
func CompilePattern(pattern string) (Pattern, error) {
	p := make(Pattern, len(pattern))
	for i := 0; i < len(pattern); i++ {
		m := iupacMask[pattern[i]]
		if m == 0 {
			return nil, errors.Errorf("pattern %q: unknown IUPAC code %q at position %d", pattern, pattern[i], i)
		}
		p[i] = m
	}
	return p, nil
}

// baseMask maps a sequence base to its mask for matching against a compiled
// pattern. Only concrete bases (ACGTU, either case) match; ambiguous bases in
// the sequence, 'N' included, match no pattern position.
func baseMask(c byte) uint8 {
	switch c {
	case 'A', 'a':
		return maskA
	case 'C', 'c':
		return maskC
	case 'G', 'g':
		return maskG
	case 'T', 't', 'U', 'u':
		return maskT
	}
	return 0
}

// Match reports whether seq matches the full pattern: same length, and every
// base allowed at its position.
func (p Pattern) Match(seq string) bool {
	if len(seq) != len(p) {
		return false
	}
	for i := 0; i < len(seq); i++ {
		if baseMask(seq[i])&p[i] == 0 {
			return false
		}
	}
	return true
}
