// Package seqio contains code for streaming FASTA and FASTQ records.  Both
// formats are exposed through the same Read type; FASTA reads carry an empty
// quality string.  Record IDs are the first whitespace-delimited token of the
// header line, without the leading '@' or '>' marker.
package seqio

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var (
	// ErrShort is returned when a truncated FASTQ record is encountered.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when an invalid FASTA/FASTQ file is encountered.
	ErrInvalid = errors.New("invalid sequence file")
	// ErrDiscordant is returned when two underlying record streams have
	// different lengths.
	ErrDiscordant = errors.New("discordant read pairs")
)

// Format identifies the record format of a sequence file.
type Format int

const (
	// FASTA is the two-part format: '>' header plus possibly line-folded
	// sequence. Carries no per-base quality.
	FASTA Format = iota
	// FASTQ is the four-line format: '@' header, sequence, '+', quality.
	FASTQ
)

// ParseFormat converts a format name ("fasta" or "fastq", any case) to a
// Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "fasta":
		return FASTA, nil
	case "fastq":
		return FASTQ, nil
	}
	return FASTA, errors.New("unknown sequence format: " + s)
}

// String returns the lowercase format name.
func (f Format) String() string {
	if f == FASTQ {
		return "fastq"
	}
	return "fasta"
}

// A Read is one sequence record. Qual is empty for FASTA input; for FASTQ it
// is the raw Phred+33 quality string, the same length as Seq.
type Read struct {
	ID, Seq, Qual string
}

var errEOF = errors.New("eof")

// Scanner provides a convenient interface for reading sequence records. The
// Scan method fills in the next read, returning a boolean indicating whether
// the read succeeded. Scanners are not threadsafe.
//
// Scanner performs some validation: FASTQ ID lines must begin with "@" and
// line 3 with "+"; FASTA headers must begin with ">". It does not validate
// seq/qual length agreement or sequence alphabet.
type Scanner struct {
	b      *bufio.Scanner
	format Format
	err    error

	// pending holds a FASTA header line that terminated the previous record.
	pending string
}

// NewScanner constructs a new Scanner that reads raw records in the given
// format from the provided reader.
func NewScanner(r io.Reader, format Format) *Scanner {
	return &Scanner{b: bufio.NewScanner(r), format: format}
}

// Scan the next record into the provided read. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it never
// returns true again. Upon completion, the user should check the Err method
// to determine whether scanning stopped because of an error or because the
// end of the stream was reached.
func (s *Scanner) Scan(read *Read) bool {
	if s.err != nil {
		return false
	}
	if s.format == FASTQ {
		return s.scanFASTQ(read)
	}
	return s.scanFASTA(read)
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

func (s *Scanner) scanFASTQ(read *Read) bool {
	if !s.b.Scan() {
		if s.err = s.b.Err(); s.err == nil {
			s.err = errEOF
		}
		return false
	}
	id := s.b.Text()
	if len(id) == 0 || id[0] != '@' {
		s.err = ErrInvalid
		return false
	}
	read.ID = headerID(id)
	if !s.scanLine() {
		return false
	}
	read.Seq = s.b.Text()
	if !s.scanLine() {
		return false
	}
	plus := s.b.Bytes()
	if len(plus) == 0 || plus[0] != '+' {
		s.err = ErrInvalid
		return false
	}
	if !s.scanLine() {
		return false
	}
	read.Qual = s.b.Text()
	return true
}

func (s *Scanner) scanFASTA(read *Read) bool {
	header := s.pending
	s.pending = ""
	if header == "" {
		for {
			if !s.b.Scan() {
				if s.err = s.b.Err(); s.err == nil {
					s.err = errEOF
				}
				return false
			}
			line := s.b.Text()
			if len(line) == 0 {
				continue
			}
			header = line
			break
		}
	}
	if header[0] != '>' {
		s.err = ErrInvalid
		return false
	}
	var seq strings.Builder
	for s.b.Scan() {
		line := s.b.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start of the next record.
			s.pending = line
			break
		}
		seq.WriteString(line)
	}
	if err := s.b.Err(); err != nil {
		s.err = err
		return false
	}
	read.ID = headerID(header)
	read.Seq = seq.String()
	read.Qual = ""
	return true
}

func (s *Scanner) scanLine() bool {
	ok := s.b.Scan()
	if !ok {
		if s.err = s.b.Err(); s.err == nil {
			s.err = ErrShort
		}
	}
	return ok
}

// headerID extracts the record ID from a header line: the first
// whitespace-delimited token, without the leading marker byte.
func headerID(header string) string {
	id := header[1:]
	if i := strings.IndexAny(id, " \t"); i >= 0 {
		id = id[:i]
	}
	return id
}

// PairScanner composes a pair of scanners to scan a pair of record streams
// in lockstep.
type PairScanner struct {
	r1, r2 *Scanner
	err    error
}

// NewPairScanner creates a new pair scanner from the provided R1 and R2
// readers.
func NewPairScanner(r1, r2 io.Reader, format Format) *PairScanner {
	return &PairScanner{
		r1: NewScanner(r1, format),
		r2: NewScanner(r2, format),
	}
}

// Scan scans the next record pair into r1, r2. Scan returns a boolean
// indicating whether the scan succeeded. If one stream ends before the other,
// Err reports ErrDiscordant.
func (p *PairScanner) Scan(r1, r2 *Read) bool {
	ok1 := p.r1.Scan(r1)
	ok2 := p.r2.Scan(r2)
	if ok1 != ok2 {
		p.err = ErrDiscordant
	}
	return ok1 && ok2
}

// Err returns the scanning error, if any. It should be checked after Scan
// returns false.
func (p *PairScanner) Err() error {
	if err := p.r1.Err(); err != nil {
		return err
	}
	if err := p.r2.Err(); err != nil {
		return err
	}
	return p.err
}
