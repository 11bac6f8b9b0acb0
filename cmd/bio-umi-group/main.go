package main

/*
bio-umi-group extracts cell barcodes and UMIs from raw sequencing reads,
validates them against whitelists or IUPAC patterns, trims them from the
retained sequence, and groups the surviving reads by (cell, molecule)
identity. The grouping store is written as a recordio file next to the input
for the downstream consensus-collapsing stage.

The input is one FASTA or FASTQ file, optionally gzip-compressed. In paired
mode (-pe) a second file, derived from the first by inserting a "-r2" marker
before the format extension, is walked in lockstep and its sequence replaces
the retained payload.
*/

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"

	"github.com/umitools/umigroup/barcode"
	"github.com/umitools/umigroup/encoding/seqio"
)

var (
	cellRegion  = flag.String("cell", "", "Cell barcode offsets as start,end (0-based, half-open)")
	umiRegion   = flag.String("umi", "", "Forward UMI offsets as start,end (0-based, half-open)")
	r2umiRegion = flag.String("r2umi", "", "Reverse UMI offsets as start,end, sliced from the reverse-complemented read")

	pairedEnd = flag.Bool("pe", false, "Paired-end feature barcoding: substitute the R2 mate sequence for the retained payload")
	revComp   = flag.Bool("revcomp", false, "Reverse-complement the retained sequence after UMI identification (ignored with -pe)")
	minQual   = flag.Int("min-q", 0, "Minimum acceptable per-base Phred quality inside an extracted region (FASTQ only)")

	cellWhiteList = flag.String("cell-white-list", "", "Path to a newline-delimited list of allowed cell barcodes")
	cellPattern   = flag.String("cell-pattern", "", "IUPAC pattern allowed cell barcodes must match")
	umiWhiteList  = flag.String("umi-white-list", "", "Path to a newline-delimited list of allowed forward UMIs")
	umiPattern    = flag.String("umi-pattern", "", "IUPAC pattern allowed forward UMIs must match")
	umi2WhiteList = flag.String("umi2-white-list", "", "Path to a newline-delimited list of allowed reverse UMIs")
	umi2Pattern   = flag.String("umi2-pattern", "", "IUPAC pattern allowed reverse UMIs must match")

	summaryOutput = flag.String("summary-output", "", "Optional per-cell summary TSV path")
)

const progressInterval = 1024 * 1024

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] seqpath {fasta,fastq}\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Other options:\n")
	flag.PrintDefaults()
}

// identitySpec builds the validation spec for one field. The whitelist takes
// precedence over the pattern when both are configured.
func identitySpec(whiteListPath, pattern string) barcode.IdentitySpec {
	if whiteListPath != "" {
		spec, err := barcode.LoadWhitelist(whiteListPath)
		if err != nil {
			log.Fatalf("load whitelist: %v", err)
		}
		return spec
	}
	if pattern != "" {
		spec, err := barcode.PatternSpec(pattern)
		if err != nil {
			log.Fatalf("compile pattern: %v", err)
		}
		return spec
	}
	return barcode.IdentitySpec{}
}

func parseRegionFlag(name, value string) barcode.Region {
	if value == "" {
		return barcode.Region{}
	}
	r, err := barcode.ParseRegion(value)
	if err != nil {
		log.Fatalf("-%s: %v", name, err)
	}
	return r
}

// r2Path derives the mate-stream path from the primary path by inserting a
// "-r2" marker before the format extension: features0001.fastq.gz becomes
// features0001-r2.fastq.gz.
func r2Path(path string) string {
	gz := ""
	base := path
	if strings.HasSuffix(base, ".gz") {
		gz = ".gz"
		base = strings.TrimSuffix(base, ".gz")
	}
	ext := ""
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base, ext = base[:i], base[i:]
	}
	return base + "-r2" + ext + gz
}

// outputPath derives the serialized-store path from the input path: the
// format extension (and any .gz suffix) is replaced by the persistence
// extension.
func outputPath(path string) string {
	base := strings.TrimSuffix(path, ".gz")
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base + barcode.Extension
}

// openSeq opens a possibly-compressed sequence file. The returned cleanup
// closes the underlying file.
func openSeq(ctx context.Context, path string) (io.Reader, func() error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		log.Fatalf("open %v: %v", path, err)
	}
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	return r, func() error { return in.Close(ctx) }
}

func writeSummary(ctx context.Context, path string, groups barcode.Groups) {
	out, err := file.Create(ctx, path)
	if err != nil {
		log.Fatalf("create %v: %v", path, err)
	}
	w := tsv.NewWriter(out.Writer(ctx))
	w.WriteString("#CELL\tMOLECULES\tSEQUENCES\tREADS")
	if err := w.EndLine(); err != nil {
		log.Fatalf("write %v: %v", path, err)
	}
	type cellCounts struct{ molecules, seqs, reads int }
	counts := map[string]*cellCounts{}
	var cells []string
	groups.Each(func(cell, molecule, seq string, readIDs []string) {
		c := counts[cell]
		if c == nil {
			c = &cellCounts{}
			counts[cell] = c
			cells = append(cells, cell)
		}
		c.seqs++
		c.reads += len(readIDs)
	})
	for cell, molecules := range groups {
		counts[cell].molecules = len(molecules)
	}
	// Each walks cells in sorted order, so cells is already sorted.
	for _, cell := range cells {
		c := counts[cell]
		w.WriteString(cell)
		w.WriteUint32(uint32(c.molecules))
		w.WriteUint32(uint32(c.seqs))
		w.WriteUint32(uint32(c.reads))
		if err := w.EndLine(); err != nil {
			log.Fatalf("write %v: %v", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("flush %v: %v", path, err)
	}
	if err := out.Close(ctx); err != nil {
		log.Fatalf("close %v: %v", path, err)
	}
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()
	ctx := vcontext.Background()

	if flag.NArg() != 2 {
		usage()
		log.Fatalf("exactly two arguments (seqpath and format) are required")
	}
	seqPath := flag.Arg(0)
	format, err := seqio.ParseFormat(flag.Arg(1))
	if err != nil {
		log.Fatal(err)
	}

	opts := barcode.DefaultOpts
	opts.Cell = parseRegionFlag("cell", *cellRegion)
	opts.UMI = parseRegionFlag("umi", *umiRegion)
	opts.R2UMI = parseRegionFlag("r2umi", *r2umiRegion)
	opts.PairedEnd = *pairedEnd
	opts.RevComp = *revComp
	opts.MinQual = *minQual
	opts.CellSpec = identitySpec(*cellWhiteList, *cellPattern)
	opts.UMISpec = identitySpec(*umiWhiteList, *umiPattern)
	opts.UMI2Spec = identitySpec(*umi2WhiteList, *umi2Pattern)

	log.Printf("starting to look for UMIs in %s", seqPath)
	proc := barcode.NewProcessor(opts)
	closers := errors.Once{}

	var nRead int
	progress := func() {
		nRead++
		if nRead%progressInterval == 0 {
			log.Printf("%s: %dMi reads", seqPath, nRead/progressInterval)
		}
	}
	if opts.PairedEnd {
		matePath := r2Path(seqPath)
		r1, close1 := openSeq(ctx, seqPath)
		r2, close2 := openSeq(ctx, matePath)
		sc := seqio.NewPairScanner(r1, r2, format)
		var rec, mate seqio.Read
		for sc.Scan(&rec, &mate) {
			if err := proc.Process(&rec, &mate); err != nil {
				log.Fatalf("%s: %v", seqPath, err)
			}
			progress()
		}
		if err := sc.Err(); err != nil {
			log.Fatalf("read %v, %v: %v", seqPath, matePath, err)
		}
		closers.Set(close1())
		closers.Set(close2())
	} else {
		r1, close1 := openSeq(ctx, seqPath)
		sc := seqio.NewScanner(r1, format)
		var rec seqio.Read
		for sc.Scan(&rec) {
			if err := proc.Process(&rec, nil); err != nil {
				log.Fatalf("%s: %v", seqPath, err)
			}
			progress()
		}
		if err := sc.Err(); err != nil {
			log.Fatalf("read %v: %v", seqPath, err)
		}
		closers.Set(close1())
	}
	if err := closers.Err(); err != nil {
		log.Fatalf("close inputs: %v", err)
	}

	stats := proc.Stats()
	groups := proc.Groups()
	log.Printf("finished %s: %d sequences in %d cells; discarded %d reads with low quality UMIs and %d additional reads with illegal UMIs",
		seqPath, stats.Total, groups.NumCells(), stats.LowQual, stats.BadID)

	outPath := outputPath(seqPath)
	out, err := file.Create(ctx, outPath)
	if err != nil {
		log.Fatalf("create %v: %v", outPath, err)
	}
	if err := barcode.WriteGroups(out.Writer(ctx), groups, opts, stats); err != nil {
		log.Fatalf("write %v: %v", outPath, err)
	}
	if err := out.Close(ctx); err != nil {
		log.Fatalf("close %v: %v", outPath, err)
	}
	log.Printf("wrote %d groups to %s", stats.Grouped(), outPath)

	if *summaryOutput != "" {
		writeSummary(ctx, *summaryOutput, groups)
	}
}
