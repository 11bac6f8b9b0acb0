package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupsInsert(t *testing.T) {
	g := NewGroups()
	g.Insert("cellA", "umi1", "ACGT", "read1")
	g.Insert("cellA", "umi1", "ACGT", "read2")
	g.Insert("cellA", "umi1", "TTTT", "read3")
	g.Insert("cellA", "umi2", "ACGT", "read4")
	g.Insert("cellB", "umi1", "ACGT", "read5")

	assert.Equal(t, 2, g.NumCells())
	assert.Equal(t, 5, g.NumReads())
	// Identical (cell, molecule, sequence) always lands in the same bucket,
	// in processing order.
	assert.Equal(t, []string{"read1", "read2"}, g["cellA"]["umi1"]["ACGT"])
	assert.Equal(t, []string{"read3"}, g["cellA"]["umi1"]["TTTT"])
	assert.Equal(t, []string{"read4"}, g["cellA"]["umi2"]["ACGT"])
}

func TestGroupsEachOrder(t *testing.T) {
	g := NewGroups()
	g.Insert("b", "x", "T", "r1")
	g.Insert("a", "y", "G", "r2")
	g.Insert("a", "x", "C", "r3")
	g.Insert("a", "x", "A", "r4")

	type bucket struct{ cell, molecule, seq string }
	var walked []bucket
	g.Each(func(cell, molecule, seq string, readIDs []string) {
		walked = append(walked, bucket{cell, molecule, seq})
	})
	assert.Equal(t, []bucket{
		{"a", "x", "A"},
		{"a", "x", "C"},
		{"a", "y", "G"},
		{"b", "x", "T"},
	}, walked)
}
