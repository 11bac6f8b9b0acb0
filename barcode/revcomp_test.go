package barcode

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestReverseComplement(t *testing.T) {
	expect.EQ(t, ReverseComplement("ACTG"), "CAGT")
	expect.EQ(t, ReverseComplement(""), "")
	expect.EQ(t, ReverseComplement("AANN"), "NNTT")
	expect.EQ(t, ReverseComplement("acgt"), "acgt")
	expect.EQ(t, ReverseComplement("MRWSYK"), "MRSWYK")
}

func TestReverseComplementRoundTrip(t *testing.T) {
	for _, seq := range []string{"", "A", "ACGT", "ACGTACGTAAGGCCTTNNT"} {
		expect.EQ(t, ReverseComplement(ReverseComplement(seq)), seq)
	}
}

func TestReverse(t *testing.T) {
	expect.EQ(t, Reverse("ABCD"), "DCBA")
	expect.EQ(t, Reverse(""), "")
}
