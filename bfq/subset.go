package bfq

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/gcfntnu/bfqsubset/fastq"
)

var (
	// ErrOutputExists is returned when the output directory exists and
	// overwriting was not requested.
	ErrOutputExists = errors.New("output directory already exists")
	// ErrMissingAuxiliary is returned when a required auxiliary file or
	// directory is absent from the source.
	ErrMissingAuxiliary = errors.New("missing auxiliary file or directory")
)

// Auxiliary items copied verbatim into every generated directory.
var (
	auxDirs  = []string{"Stats", "InterOp"}
	auxFiles = []string{"bcl.done", "Sample-Submission-Form.xlsx"}
)

// InvalidSampleError is returned when an explicitly requested sample id is
// not present in the inspected directory. Valid carries the full set of
// acceptable ids for the error message.
type InvalidSampleError struct {
	Sample string
	Valid  []string
}

func (e *InvalidSampleError) Error() string {
	return fmt.Sprintf("sample %q is not a valid sample id (valid samples: %s)",
		e.Sample, strings.Join(e.Valid, ", "))
}

// Opts configures Generate.
type Opts struct {
	// Reads is the number of subsampled reads kept per FASTQ file.
	Reads int64
	// NSamples is the number of samples drawn at random, with replacement,
	// from the available sample ids. A draw may therefore repeat an id;
	// repeats collapse to one set of output files. Ignored when Samples is
	// set.
	NSamples int
	// Samples is a comma-separated list of explicit sample ids. Every id
	// must exist in the inspected directory.
	Samples string
	// Overwrite recursively deletes an existing output directory instead of
	// failing.
	Overwrite bool
	// Seed feeds both sample selection and read subsampling. There is no
	// ambient random state.
	Seed int64
	// BuiltinSampler subsamples reads in-process instead of piping through
	// seqkit.
	BuiltinSampler bool
	// Runner invokes the external tools. Defaults to ExecRunner.
	Runner Runner
}

// DefaultOpts holds the default generation parameters.
var DefaultOpts = Opts{
	Reads:    1000,
	NSamples: 3,
	Seed:     123456,
}

// Generate writes a subsampled copy of the inspected directory to outputDir:
// auxiliary metadata verbatim, the selected samples' FASTQ files reduced to
// opts.Reads reads each, and a sample sheet filtered to the selection. Any
// failure aborts the run; a partial output directory is left behind.
func Generate(ctx context.Context, out *Output, outputDir string, opts Opts) error {
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	selected, err := resolveSelection(out, opts)
	if err != nil {
		return err
	}

	log.Printf("start copy of files from bfq output to: %s", outputDir)
	if _, err := os.Stat(outputDir); err == nil {
		if !opts.Overwrite {
			return errors.Wrap(ErrOutputExists, outputDir)
		}
		if err := os.RemoveAll(outputDir); err != nil {
			return errors.Wrap(err, "remove output directory")
		}
	}
	if err := os.MkdirAll(outputDir, 0775); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	for _, d := range auxDirs {
		src, dst := filepath.Join(out.Dir, d), filepath.Join(outputDir, d)
		log.Printf("copy tree: %s -> %s", src, dst)
		if err := copyTree(src, dst); err != nil {
			return errors.Wrapf(ErrMissingAuxiliary, "%s: %v", src, err)
		}
	}
	for _, fn := range auxFiles {
		src, dst := filepath.Join(out.Dir, fn), filepath.Join(outputDir, fn)
		log.Printf("copy file: %s -> %s", src, dst)
		if err := copyFile(src, dst); err != nil {
			return errors.Wrapf(ErrMissingAuxiliary, "%s: %v", src, err)
		}
	}

	fastqOut := filepath.Join(outputDir, filepath.Base(out.FastqDir))
	if err := os.MkdirAll(fastqOut, 0775); err != nil {
		return errors.Wrap(err, "create fastq output directory")
	}
	for _, sample := range selected {
		for _, basename := range out.SampleFiles[sample] {
			src := filepath.Join(out.FastqDir, basename)
			if out.Kind == SingleCell {
				// Single-cell files pass through unsampled and
				// unrenamed; the downstream pipeline needs the vendor
				// naming intact.
				log.Printf("copy file: %s -> %s", src, filepath.Join(fastqOut, basename))
				if err := copyFile(src, filepath.Join(fastqOut, basename)); err != nil {
					return errors.Wrapf(err, "copy single-cell fastq %s", src)
				}
				continue
			}
			dst := filepath.Join(fastqOut, OutputBasename(sample, basename))
			if err := subsampleFile(ctx, opts, src, dst); err != nil {
				return err
			}
		}
	}

	if err := compressAll(ctx, opts.Runner, fastqOut); err != nil {
		return err
	}

	log.Printf("subsampling %s ...", SampleSheetName)
	return rewriteSampleSheet(out, outputDir, selected)
}

// resolveSelection validates an explicit sample list, or draws NSamples ids
// at random with replacement.
func resolveSelection(out *Output, opts Opts) ([]string, error) {
	if opts.Samples != "" {
		var selected []string
		for _, s := range strings.Split(opts.Samples, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if _, ok := out.SampleFiles[s]; !ok {
				return nil, &InvalidSampleError{Sample: s, Valid: out.Samples}
			}
			selected = append(selected, s)
		}
		if len(selected) == 0 {
			return nil, errors.New("no sample ids in explicit sample list")
		}
		return selected, nil
	}
	if len(out.Samples) == 0 {
		return nil, errors.Errorf("no samples in run manifest for %s", out.ExperimentID)
	}
	random := rand.New(rand.NewSource(opts.Seed))
	selected := make([]string, 0, opts.NSamples)
	for i := 0; i < opts.NSamples; i++ {
		selected = append(selected, out.Samples[random.Intn(len(out.Samples))])
	}
	return selected, nil
}

// subsampleFile decompresses src and writes opts.Reads randomly selected
// reads to dst, either through seqkit or the in-process sampler.
func subsampleFile(ctx context.Context, opts Opts, src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "open fastq")
	}
	defer in.Close() // nolint: errcheck
	gz, err := gzip.NewReader(in)
	if err != nil {
		return errors.Wrapf(err, "decompress %s", src)
	}
	defer gz.Close() // nolint: errcheck
	w, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "create fastq")
	}
	if opts.BuiltinSampler {
		log.Printf("sampling %d reads: %s -> %s", opts.Reads, src, dst)
		err = fastq.SampleToCount(opts.Reads, opts.Seed, gz, w)
	} else {
		log.Printf("seqkit sample -n %d -s %d: %s -> %s", opts.Reads, opts.Seed, src, dst)
		err = opts.Runner.Run(ctx, gz, w, "seqkit", "sample",
			"-n", strconv.FormatInt(opts.Reads, 10),
			"-s", strconv.FormatInt(opts.Seed, 10))
	}
	if err != nil {
		w.Close() // nolint: errcheck
		return err
	}
	return errors.Wrapf(w.Close(), "close %s", dst)
}

// compressAll gzips every plain file in dir with a single external gzip
// invocation. Files already ending in .gz (single-cell pass-throughs) are
// skipped; gzip exits non-zero on them.
func compressAll(ctx context.Context, runner Runner, dir string) error {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return errors.Wrap(err, "list fastq output directory")
	}
	var plain []string
	for _, e := range entries {
		if !e.IsDir() && !strings.HasSuffix(e.Name(), ".gz") {
			plain = append(plain, filepath.Join(dir, e.Name()))
		}
	}
	if len(plain) == 0 {
		return nil
	}
	log.Printf("compressing %d fastq files ...", len(plain))
	return runner.Run(ctx, nil, nil, "gzip", plain...)
}

func rewriteSampleSheet(out *Output, outputDir string, selected []string) error {
	in, err := os.Open(filepath.Join(out.Dir, SampleSheetName))
	if err != nil {
		return errors.Wrap(err, "open sample sheet")
	}
	defer in.Close() // nolint: errcheck
	w, err := os.Create(filepath.Join(outputDir, SampleSheetName))
	if err != nil {
		return errors.Wrap(err, "create sample sheet")
	}
	if err := FilterSampleSheet(in, w, selected, out.Samples); err != nil {
		w.Close() // nolint: errcheck
		return err
	}
	return errors.Wrap(w.Close(), "close sample sheet")
}

// copyTree recursively copies the directory tree rooted at src to dst.
func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, info.Mode())
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() // nolint: errcheck
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close() // nolint: errcheck
		return err
	}
	return out.Close()
}
