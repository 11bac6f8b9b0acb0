package barcode

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Region is a half-open [Start, End) byte range into a read sequence. The
// zero value means "not configured".
type Region struct {
	Start, End int
}

// ParseRegion parses a "start,end" offset pair.
func ParseRegion(s string) (Region, error) {
	i := strings.IndexByte(s, ',')
	if i < 0 {
		return Region{}, errors.Errorf("region %q: want start,end", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(s[:i]))
	if err != nil {
		return Region{}, errors.Wrapf(err, "region %q", s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return Region{}, errors.Wrapf(err, "region %q", s)
	}
	if start < 0 || end < start {
		return Region{}, errors.Errorf("region %q: want 0 <= start <= end", s)
	}
	return Region{Start: start, End: end}, nil
}

// Empty reports whether the region selects no bases.
func (r Region) Empty() bool {
	return r.End <= r.Start
}

// Slice returns seq[Start:End] with Python slicing semantics: offsets past
// the end of seq are clamped, yielding a shorter-than-expected or empty
// string rather than panicking.
func (r Region) Slice(seq string) string {
	start, end := r.Start, r.End
	if start > len(seq) {
		start = len(seq)
	}
	if end > len(seq) {
		end = len(seq)
	}
	if end <= start {
		return ""
	}
	return seq[start:end]
}
