package barcode

// FASTQ encodes Phred scores with an ASCII offset of 33.
const phredOffset = 33

// regionQualityOK reports whether every base inside the region window of the
// Phred+33 quality track is at or above min. A read fails quality when any
// base in an extracted region falls below the threshold. Offsets past the end
// of the track are clamped, matching Region.Slice.
func regionQualityOK(qual string, r Region, min int) bool {
	window := r.Slice(qual)
	for i := 0; i < len(window); i++ {
		if int(window[i])-phredOffset < min {
			return false
		}
	}
	return true
}
