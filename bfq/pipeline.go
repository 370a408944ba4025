package bfq

// Kind classifies the bfq pipeline that produced an output directory. It is
// derived from the library-prep code in SampleSheet.csv.
type Kind int

const (
	// Unknown marks a library-prep code with no pipeline mapping. It is a
	// valid, non-fatal classification.
	Unknown Kind = iota
	// Standard covers the default bulk pipelines (RNA-seq, DNA).
	Standard
	// Microbiome covers 16S/ITS amplicon runs. Their raw FASTQ files live
	// under a raw_fastq_<experiment> directory.
	Microbiome
	// SingleCell covers droplet-based single-cell runs. Their FASTQ files
	// keep vendor naming and are never subsampled.
	SingleCell
)

func (k Kind) String() string {
	switch k {
	case Standard:
		return "default"
	case Microbiome:
		return "microbiome"
	case SingleCell:
		return "single-cell"
	}
	return "unknown"
}

// kindByLibprep is the fixed mapping from library-prep kit name to pipeline
// kind. Codes are matched exactly as they appear in the Libprep line.
var kindByLibprep = map[string]Kind{
	"TruSeq Stranded mRNA":                      Standard,
	"TruSeq Stranded Total RNA":                 Standard,
	"NEBNext Ultra II DNA":                      Standard,
	"NEBNext Ultra II Directional RNA":          Standard,
	"Lexogen QuantSeq 3' mRNA-Seq":              Standard,
	"16S Metagenomic Sequencing Library Prep":   Microbiome,
	"QIAseq 16S ITS Region Panel":               Microbiome,
	"Chromium Next GEM Single Cell 3'":          SingleCell,
	"Chromium Next GEM Single Cell 5'":          SingleCell,
	"Chromium Single Cell 3' Reagent Kits v3":   SingleCell,
	"Chromium Single Cell ATAC Reagent Kits v2": SingleCell,
}

// KindForLibprep maps a library-prep code to its pipeline kind. The second
// return value reports whether the code is in the table; unmapped codes
// classify as Unknown.
func KindForLibprep(code string) (Kind, bool) {
	k, ok := kindByLibprep[code]
	if !ok {
		return Unknown, false
	}
	return k, true
}
