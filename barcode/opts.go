package barcode

// Opts configures one extraction run. Build it once from configuration at
// startup and treat it as read-only thereafter.
type Opts struct {
	// Cell, UMI and R2UMI are the offset windows of the cell barcode, the
	// forward UMI, and the reverse UMI. Cell and UMI are sliced from the
	// forward strand; R2UMI is sliced from the reverse-complemented read at
	// the same offsets, so it is always read from the 3' end. Unset regions
	// mean the field is not used.
	Cell  Region
	UMI   Region
	R2UMI Region

	// PairedEnd substitutes the mate sequence for the retained payload, for
	// the 10x PE short-read feature-barcoding strategy.
	PairedEnd bool
	// RevComp reverse-complements the retained sequence for SE feature
	// barcoding. Ignored when PairedEnd is set.
	RevComp bool

	// MinQual is the minimum acceptable per-base Phred quality inside an
	// extracted region. Only meaningful for FASTQ input.
	MinQual int

	// CellSpec, UMISpec and UMI2Spec validate the extracted values. Zero
	// specs accept everything.
	CellSpec IdentitySpec
	UMISpec  IdentitySpec
	UMI2Spec IdentitySpec
}

// DefaultOpts holds the default option values: no regions configured, no
// validation, single-end.
var DefaultOpts = Opts{}
