package barcode

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/umitools/umigroup/encoding/seqio"
)

// Processor applies the per-read extraction pipeline and accumulates the
// grouping store and run counters. It is single-threaded: one Processor per
// input stream, driven by one goroutine.
type Processor struct {
	opts   Opts
	stats  Stats
	groups Groups
}

// NewProcessor creates a Processor for one run over one input file (or one
// paired file-pair).
func NewProcessor(opts Opts) *Processor {
	return &Processor{opts: opts, groups: NewGroups()}
}

// fieldCheck couples one extracted value with the offset window it came from,
// the quality track that window indexes into, and the identity spec that
// constrains it. The three barcode fields run through the same checks.
type fieldCheck struct {
	value  string
	region Region
	qual   string
	spec   IdentitySpec
}

// Process runs one read through extraction, filtering, trimming and grouping.
// In paired mode mate must be the lockstep record from the R2 stream;
// otherwise it is ignored. The returned error is fatal (paired-stream
// identity mismatch); per-read quality and identity failures are recoverable
// and only counted.
func (p *Processor) Process(read, mate *seqio.Read) error {
	if p.opts.PairedEnd {
		if mate == nil {
			return errors.Errorf("read %s: missing R2 mate", read.ID)
		}
		if TrimMateSuffix(read.ID) != TrimMateSuffix(mate.ID) {
			return errors.Errorf("sequence id mismatch between R1 and R2: %s vs %s", read.ID, mate.ID)
		}
	}
	p.stats.Total++

	cell := p.opts.Cell.Slice(read.Seq)
	fwdID := p.opts.UMI.Slice(read.Seq)
	revID := ""
	revQual := ""
	if !p.opts.R2UMI.Empty() {
		revID = p.opts.R2UMI.Slice(ReverseComplement(read.Seq))
		revQual = Reverse(read.Qual)
	}

	checks := [...]fieldCheck{
		{cell, p.opts.Cell, read.Qual, p.opts.CellSpec},
		{fwdID, p.opts.UMI, read.Qual, p.opts.UMISpec},
		{revID, p.opts.R2UMI, revQual, p.opts.UMI2Spec},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		if c.qual != "" && !regionQualityOK(c.qual, c.region, p.opts.MinQual) {
			p.stats.LowQual++
			return nil
		}
		if !c.spec.Accept(c.value) {
			p.stats.BadID++
			return nil
		}
	}

	// Combine UMIs and trim the consumed regions from the retained payload.
	moleculeID := fwdID + revID
	keepFrom := p.opts.Cell.End
	if p.opts.UMI.End > keepFrom {
		keepFrom = p.opts.UMI.End
	}
	seq := Region{Start: keepFrom, End: len(read.Seq)}.Slice(read.Seq)
	if n := p.opts.R2UMI.End; n > 0 {
		if n >= len(seq) {
			seq = ""
		} else {
			seq = seq[:len(seq)-n]
		}
	}
	if p.opts.PairedEnd {
		// The primary read only carried the barcodes; the mate is the payload.
		seq = mate.Seq
	} else if p.opts.RevComp {
		seq = ReverseComplement(seq)
	}

	id := read.ID
	if cell != "" {
		id += ";cell=" + cell
	} else {
		// No cell barcode: store the molecule identity as the cell barcode so
		// the store never keys on an empty cell while a molecule exists.
		cell = moleculeID
	}
	if moleculeID != "" {
		id += ";umi=" + moleculeID
	} else {
		// No UMI: the cell barcode stands in for the molecule identity.
		moleculeID = cell
	}

	p.groups.Insert(cell, moleculeID, seq, id)
	return nil
}

// Stats returns the run counters accumulated so far.
func (p *Processor) Stats() Stats {
	return p.stats
}

// Groups returns the grouping store. The caller must not mutate it while
// processing continues.
func (p *Processor) Groups() Groups {
	return p.groups
}

// TrimMateSuffix strips a trailing "/1" or "/2" read-pair marker from a
// record ID, so R1 and R2 identities compare equal.
func TrimMateSuffix(id string) string {
	if strings.HasSuffix(id, "/1") || strings.HasSuffix(id, "/2") {
		return id[:len(id)-2]
	}
	return id
}
