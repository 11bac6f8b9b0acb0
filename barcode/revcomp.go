package barcode

// complement maps each nucleotide to its Watson-Crick complement, including
// IUPAC ambiguity codes (M<->K, R<->Y, etc.). Bytes outside the alphabet are
// left unchanged.
var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}
	pair := func(a, b byte) {
		complement[a] = b
		complement[b] = a
		complement[a+'a'-'A'] = b + 'a' - 'A'
		complement[b+'a'-'A'] = a + 'a' - 'A'
	}
	pair('A', 'T')
	pair('C', 'G')
	pair('M', 'K')
	pair('R', 'Y')
	pair('W', 'W')
	pair('S', 'S')
	pair('V', 'B')
	pair('H', 'D')
	complement['U'] = 'A'
	complement['u'] = 'a'
	// N is self-complementary.
}

// ReverseComplement computes the reverse complement of the given DNA string.
func ReverseComplement(seq string) string {
	buf := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		buf[len(seq)-1-i] = complement[seq[i]]
	}
	return string(buf)
}

// Reverse reverses a string byte-wise. It is the quality-track counterpart of
// ReverseComplement: the quality of the reverse-complemented read is the
// reversed quality string.
func Reverse(s string) string {
	buf := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		buf[len(s)-1-i] = s[i]
	}
	return string(buf)
}
