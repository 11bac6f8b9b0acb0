package barcode

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// IdentitySpec restricts the values accepted for one extracted barcode field.
// At most one of Whitelist and Pattern should be set; when both are set the
// whitelist wins. The zero value accepts everything.
type IdentitySpec struct {
	// Whitelist is an exact-match set of allowed codes.
	Whitelist map[string]bool
	// Pattern is a compiled IUPAC template; values must match it in full.
	Pattern Pattern
}

// Accept reports whether the extracted value passes the spec. An empty value
// always passes: a read is not penalized for a feature that was not
// configured.
func (s IdentitySpec) Accept(value string) bool {
	if value == "" {
		return true
	}
	if s.Whitelist != nil {
		return s.Whitelist[value]
	}
	if s.Pattern != nil {
		return s.Pattern.Match(value)
	}
	return true
}

// PatternSpec compiles an IUPAC pattern into an IdentitySpec.
func PatternSpec(pattern string) (IdentitySpec, error) {
	p, err := CompilePattern(pattern)
	if err != nil {
		return IdentitySpec{}, err
	}
	return IdentitySpec{Pattern: p}, nil
}

// ParseWhitelist reads a newline-delimited list of exact codes into an
// IdentitySpec. Blank lines are skipped.
func ParseWhitelist(r io.Reader) (IdentitySpec, error) {
	set := map[string]bool{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		code := strings.TrimSpace(scanner.Text())
		if code == "" {
			continue
		}
		set[code] = true
	}
	if err := scanner.Err(); err != nil {
		return IdentitySpec{}, errors.Wrap(err, "couldn't read whitelist")
	}
	return IdentitySpec{Whitelist: set}, nil
}

// LoadWhitelist reads a whitelist file, transparently decompressing when the
// path carries a .gz suffix.
func LoadWhitelist(path string) (spec IdentitySpec, err error) {
	in, err := os.Open(path)
	if err != nil {
		return IdentitySpec{}, err
	}
	defer func() {
		if e := in.Close(); e != nil && err == nil {
			err = e
		}
	}()
	var r io.Reader = in
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(in)
		if err != nil {
			return IdentitySpec{}, errors.Wrapf(err, "whitelist %s", path)
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}
	spec, err = ParseWhitelist(r)
	return spec, errors.Wrapf(err, "whitelist %s", path)
}
