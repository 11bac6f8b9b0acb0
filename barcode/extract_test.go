package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("0,16")
	require.NoError(t, err)
	assert.Equal(t, Region{0, 16}, r)

	r, err = ParseRegion("8, 16")
	require.NoError(t, err)
	assert.Equal(t, Region{8, 16}, r)

	for _, bad := range []string{"", "8", "a,b", "-1,4", "8,4"} {
		_, err := ParseRegion(bad)
		assert.Error(t, err, "region %q", bad)
	}
}

func TestRegionSlice(t *testing.T) {
	seq := "ACGTACGTAAGGCCTT"
	tests := []struct {
		region Region
		want   string
	}{
		{Region{0, 8}, "ACGTACGT"},
		{Region{8, 16}, "AAGGCCTT"},
		{Region{0, 0}, ""},
		{Region{12, 32}, "CCTT"}, // clamped, not an error
		{Region{32, 40}, ""},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.region.Slice(seq), "%+v", test.region)
	}
	assert.True(t, Region{}.Empty())
	assert.False(t, Region{0, 8}.Empty())
}

// The reverse-UMI window is always read from the 3' end: slicing the
// reverse-complemented read at [start, end) is the same as reading the last
// end..start bases of the forward strand, complemented.
func TestReverseUMIWindow(t *testing.T) {
	seq := "AACCGGTTACGTAGCT"
	rc := ReverseComplement(seq)
	assert.Equal(t, "AGCTACGT", Region{0, 8}.Slice(rc))
	assert.Equal(t, ReverseComplement(seq[len(seq)-8:]), Region{0, 8}.Slice(rc))
}
