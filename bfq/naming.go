package bfq

import (
	"fmt"
	"strings"
)

// ReadNumber classifies a FASTQ basename as an "R1" or "R2" file. Trailing
// ".gz" and ".fastq" extensions are stripped before the check; a name then
// ending in "_R1" classifies as R1, anything else as R2. Demultiplexed bfq
// output names sample files <sample>_R1.fastq.gz / <sample>_R2.fastq.gz, so
// R2 is the correct default for unmarked names.
func ReadNumber(basename string) string {
	name := strings.TrimSuffix(basename, ".gz")
	name = strings.TrimSuffix(name, ".fastq")
	if strings.HasSuffix(name, "_R1") {
		return "R1"
	}
	return "R2"
}

// OutputBasename derives the canonical name of a subsampled FASTQ file:
// <sample>_L001_<R1|R2>_001.fastq. The name is uncompressed; compression of
// the output directory happens in one pass after all samples are written.
func OutputBasename(sample, basename string) string {
	return fmt.Sprintf("%s_L001_%s_001.fastq", sample, ReadNumber(basename))
}
