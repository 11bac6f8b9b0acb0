package barcode

// The grouping store is persisted as a recordio file: one gob-encoded record
// per (cell, molecule, sequence) bucket, written in sorted key order, with
// the run options and counters gob-encoded in the trailer. The next pipeline
// stage depends on read-id ordering being insertion order, which the per-
// bucket ID slices preserve exactly.

import (
	"bytes"
	"encoding/gob"
	"io"

	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
	"github.com/pkg/errors"
)

const (
	// Extension is the filename extension of serialized grouping stores.
	Extension = ".rio"

	fileVersionHeader = "umigroupversion"
	fileVersion       = "UMIGROUP_V1"
)

// groupRecord is the serialization unit: one distinct trimmed sequence within
// one (cell, molecule) bucket.
type groupRecord struct {
	Cell     string
	Molecule string
	Seq      string
	ReadIDs  []string
}

// fileTrailer is stored in the trailer section of the recordio file.
type fileTrailer struct {
	Opts  Opts
	Stats Stats
}

// WriteGroups persists the grouping store to out so that ReadGroups restores
// it exactly: same nested structure, same per-bucket read-ID order.
func WriteGroups(out io.Writer, groups Groups, opts Opts, stats Stats) error {
	recordiozstd.Init()
	w := recordio.NewWriter(out, recordio.WriterOpts{
		Transformers: []string{recordiozstd.Name},
	})
	w.AddHeader(fileVersionHeader, fileVersion)
	w.AddHeader(recordio.KeyTrailer, true)

	var werr error
	groups.Each(func(cell, molecule, seq string, readIDs []string) {
		if werr != nil {
			return
		}
		b := bytes.NewBuffer(nil)
		if err := gob.NewEncoder(b).Encode(groupRecord{
			Cell:     cell,
			Molecule: molecule,
			Seq:      seq,
			ReadIDs:  readIDs,
		}); err != nil {
			werr = errors.Wrap(err, "encode group record")
			return
		}
		w.Append(b.Bytes())
	})
	if werr != nil {
		return werr
	}

	b := bytes.NewBuffer(nil)
	if err := gob.NewEncoder(b).Encode(fileTrailer{Opts: opts, Stats: stats}); err != nil {
		return errors.Wrap(err, "encode trailer")
	}
	w.SetTrailer(b.Bytes())
	return errors.Wrap(w.Finish(), "finish recordio")
}

// ReadGroups restores a grouping store written by WriteGroups, along with the
// options and counters of the run that produced it.
func ReadGroups(in io.ReadSeeker) (Groups, Opts, Stats, error) {
	recordiozstd.Init()
	r := recordio.NewScanner(in, recordio.ScannerOpts{})
	versionFound := false
	for _, kv := range r.Header() {
		if kv.Key == fileVersionHeader {
			v, ok := kv.Value.(string)
			if !ok || v != fileVersion {
				return nil, Opts{}, Stats{}, errors.Errorf("file version mismatch: got %v, expect %v", kv.Value, fileVersion)
			}
			versionFound = true
			break
		}
	}
	if !versionFound {
		return nil, Opts{}, Stats{}, errors.New(fileVersionHeader + " header not found")
	}

	groups := NewGroups()
	for r.Scan() {
		rec := groupRecord{}
		if err := gob.NewDecoder(bytes.NewReader(r.Get().([]byte))).Decode(&rec); err != nil {
			return nil, Opts{}, Stats{}, errors.Wrap(err, "decode group record")
		}
		molecules := groups[rec.Cell]
		if molecules == nil {
			molecules = map[string]map[string][]string{}
			groups[rec.Cell] = molecules
		}
		seqs := molecules[rec.Molecule]
		if seqs == nil {
			seqs = map[string][]string{}
			molecules[rec.Molecule] = seqs
		}
		seqs[rec.Seq] = rec.ReadIDs
	}
	if err := r.Err(); err != nil {
		return nil, Opts{}, Stats{}, errors.Wrap(err, "scan recordio")
	}

	trailer := fileTrailer{}
	if err := gob.NewDecoder(bytes.NewReader(r.Trailer())).Decode(&trailer); err != nil {
		return nil, Opts{}, Stats{}, errors.Wrap(err, "decode trailer")
	}
	return groups, trailer.Opts, trailer.Stats, nil
}
