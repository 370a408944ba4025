package main

/*
bfq-subset creates testdata suitable for running bfq pipelines by subsampling
an existing bfq output folder: a subset of samples, each reduced to a fixed
number of reads, with the run metadata (Stats, InterOp, sample sheet) carried
over so the result is a valid, self-consistent run folder.
*/

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/lookpath"

	"github.com/gcfntnu/bfqsubset/bfq"
)

var (
	output         = flag.String("output", "", "Output directory (required)")
	nReads         = flag.Int64("n-reads", bfq.DefaultOpts.Reads, "Number of reads to keep per fastq file (random subset)")
	nSamples       = flag.Int("n-samples", bfq.DefaultOpts.NSamples, "Number of samples to keep (random subset, drawn with replacement)")
	samples        = flag.String("samples", "", "Comma-separated list of sample ids to keep. Overrides -n-samples")
	overwrite      = flag.Bool("overwrite", true, "Force overwriting of an existing output directory")
	seed           = flag.Int64("seed", bfq.DefaultOpts.Seed, "Seed for sample selection and read subsampling")
	builtinSampler = flag.Bool("builtin-sampler", false, "Subsample reads in-process instead of piping through seqkit")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] runfolder\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("exactly one positional argument (runfolder) is required; please check flag syntax")
	}
	if *output == "" {
		log.Fatalf("-output is required")
	}
	if !*builtinSampler {
		env := map[string]string{"PATH": os.Getenv("PATH")}
		for _, tool := range []string{"seqkit", "gzip"} {
			if _, err := lookpath.Look(env, tool); err != nil {
				log.Fatalf("%s not found on PATH (install it, or rerun with -builtin-sampler)", tool)
			}
		}
	}

	ctx := vcontext.Background()
	out, err := bfq.Inspect(flag.Arg(0))
	if err != nil {
		log.Fatalf("%v", err)
	}
	opts := bfq.Opts{
		Reads:          *nReads,
		NSamples:       *nSamples,
		Samples:        *samples,
		Overwrite:      *overwrite,
		Seed:           *seed,
		BuiltinSampler: *builtinSampler,
	}
	if err := bfq.Generate(ctx, out, *output, opts); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}
