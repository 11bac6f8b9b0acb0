package barcode

// Stats represents high-level statistics for one extraction run. Exactly one
// of the discard counters is incremented for a dropped read: the first
// failing check wins and short-circuits the rest.
type Stats struct {
	// Total is the number of reads seen.
	Total int
	// LowQual is the number of reads discarded because a base inside an
	// extracted region fell below the quality threshold.
	LowQual int
	// BadID is the number of reads discarded because an extracted barcode or
	// UMI failed whitelist or pattern validation.
	BadID int
}

// Grouped returns the number of reads that survived filtering and were
// inserted into the grouping store.
func (s Stats) Grouped() int {
	return s.Total - s.LowQual - s.BadID
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Total += o.Total
	s.LowQual += o.LowQual
	s.BadID += o.BadID
	return s
}
