package barcode

import "sort"

// Groups is the grouping store: cell barcode -> molecule identity -> distinct
// trimmed sequence -> read IDs in input order. Sequences are grouped only
// when byte-identical after trimming; there is no fuzzy matching at this
// stage. The store only grows, one insert per surviving read.
type Groups map[string]map[string]map[string][]string

// NewGroups returns an empty grouping store.
func NewGroups() Groups {
	return Groups{}
}

// Insert appends readID to the (cell, molecule, seq) bucket, creating
// intermediate levels on first use.
func (g Groups) Insert(cell, molecule, seq, readID string) {
	molecules := g[cell]
	if molecules == nil {
		molecules = map[string]map[string][]string{}
		g[cell] = molecules
	}
	seqs := molecules[molecule]
	if seqs == nil {
		seqs = map[string][]string{}
		molecules[molecule] = seqs
	}
	seqs[seq] = append(seqs[seq], readID)
}

// NumCells returns the number of distinct cell barcodes in the store.
func (g Groups) NumCells() int {
	return len(g)
}

// NumReads returns the total number of read IDs across all buckets.
func (g Groups) NumReads() int {
	n := 0
	for _, molecules := range g {
		for _, seqs := range molecules {
			for _, ids := range seqs {
				n += len(ids)
			}
		}
	}
	return n
}

// Each calls fn for every (cell, molecule, seq) bucket in sorted key order.
// Read IDs keep their insertion order. The sorted walk makes serialization
// and reporting deterministic.
func (g Groups) Each(fn func(cell, molecule, seq string, readIDs []string)) {
	for _, cell := range sortedKeys3(g) {
		molecules := g[cell]
		for _, molecule := range sortedKeys2(molecules) {
			seqs := molecules[molecule]
			for _, seq := range sortedKeys1(seqs) {
				fn(cell, molecule, seq, seqs[seq])
			}
		}
	}
}

func sortedKeys3(m map[string]map[string]map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys2(m map[string]map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys1(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
