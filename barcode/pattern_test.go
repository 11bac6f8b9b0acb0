package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePattern(t *testing.T) {
	p, err := CompilePattern("NNNNNN")
	require.NoError(t, err)
	assert.Equal(t, 6, len(p))

	_, err = CompilePattern("ACGX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown IUPAC code")

	_, err = CompilePattern("AC-G")
	require.Error(t, err)
}

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		pattern string
		seq     string
		want    bool
	}{
		{"ACGT", "ACGT", true},
		{"ACGT", "acgt", true},
		{"ACGT", "ACGA", false},
		{"NNNN", "ACGT", true},
		{"NNNN", "ACG", false},  // full-string match: length must agree
		{"NNNN", "ACGTA", false},
		{"NNNN", "ACGN", false}, // N in the read matches nothing
		{"RYSW", "ACGT", true},  // R=A/G, Y=C/T, S=C/G, W=A/T
		{"RYSW", "GTCA", true},
		{"RYSW", "CACA", false},
		{"T", "U", true}, // U and T are interchangeable
		{"U", "T", true},
		{"MKVB", "AGAC", true},
		{"HD", "TA", true},
	}
	for _, test := range tests {
		p, err := CompilePattern(test.pattern)
		require.NoError(t, err)
		assert.Equal(t, test.want, p.Match(test.seq), "pattern %s vs %s", test.pattern, test.seq)
	}
}
