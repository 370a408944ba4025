// Package bfq inspects bfq-pipeline output directories and subsamples them
// into small, self-consistent test fixtures: a subset of samples, each with a
// reduced read count, plus the run metadata copied verbatim.
package bfq

import (
	"os"
	"path/filepath"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

var (
	// ErrMissingDirectory is returned when the bfq output directory does not
	// exist.
	ErrMissingDirectory = errors.New("bfq output directory does not exist")
	// ErrMissingFastqDir is returned when the derived raw-FASTQ directory
	// does not exist.
	ErrMissingFastqDir = errors.New("missing fastq directory")
)

// Output represents one inspected bfq-pipeline output directory. It is
// read-only: Inspect never mutates the source directory, and the fields are
// fixed after construction.
type Output struct {
	// Dir is the inspected directory.
	Dir string
	// Kind is the pipeline classification derived from the Libprep line.
	Kind Kind
	// ExperimentID is the GCF number from the ExperimentName line.
	ExperimentID string
	// FastqDir is the directory holding the raw FASTQ files.
	FastqDir string
	// Samples lists the sample ids in run-manifest order.
	Samples []string
	// SampleFiles maps each sample id to the ordered FASTQ basenames whose
	// names it prefixes. A sample with no matching files maps to an empty
	// list; that is permitted, not an error.
	SampleFiles map[string][]string
}

// Inspect parses the manifests of a bfq output directory. It determines the
// pipeline kind from the library-prep code, the experiment id, the raw-FASTQ
// location, and the sample to FASTQ-file mapping.
func Inspect(dir string) (*Output, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.Wrap(ErrMissingDirectory, dir)
	}
	sheet, err := os.Open(filepath.Join(dir, SampleSheetName))
	if err != nil {
		return nil, errors.Wrap(err, "open sample sheet")
	}
	meta, err := scanSheetMeta(sheet)
	if cerr := sheet.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	log.Printf("identified gcf number from samplesheet: %s", meta.experimentID)

	out := &Output{Dir: dir, ExperimentID: meta.experimentID}
	if meta.libprep != "" {
		kind, ok := KindForLibprep(meta.libprep)
		if !ok {
			log.Error.Printf("failed to identify pipeline from libprep %q, using %s", meta.libprep, Unknown)
		}
		out.Kind = kind
		log.Printf("identified library prep kit from samplesheet: %s", meta.libprep)
		log.Printf("pipeline: %s", out.Kind)
	}

	fastqBase := meta.experimentID
	if out.Kind == Microbiome {
		fastqBase = "raw_fastq_" + meta.experimentID
	}
	out.FastqDir = filepath.Join(dir, fastqBase)
	if _, err := os.Stat(out.FastqDir); err != nil {
		return nil, errors.Wrapf(ErrMissingFastqDir, "expected %s", out.FastqDir)
	}

	out.Samples, err = readRunManifest(filepath.Join(dir, RunManifestName(meta.experimentID)))
	if err != nil {
		return nil, err
	}
	out.SampleFiles = make(map[string][]string, len(out.Samples))
	for _, sample := range out.Samples {
		matches, err := filepath.Glob(filepath.Join(out.FastqDir, sample+"*.fastq.gz"))
		if err != nil {
			return nil, errors.Wrapf(err, "glob fastq files for sample %s", sample)
		}
		basenames := make([]string, 0, len(matches))
		for _, m := range matches {
			basenames = append(basenames, filepath.Base(m))
		}
		out.SampleFiles[sample] = basenames
	}
	return out, nil
}
