package bfq_test

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/klauspost/compress/gzip"
)

// fixtureOpts describes a synthetic bfq output directory.
type fixtureOpts struct {
	experimentID string
	libprep      string
	fastqBase    string              // defaults to experimentID
	samples      []string            // run-manifest order
	files        map[string][]string // fastq basenames per sample
	readsPerFile int                 // defaults to 4
	noStats      bool
}

// writeFixture materializes a bfq output directory under dir.
func writeFixture(t *testing.T, dir string, opts fixtureOpts) {
	if opts.fastqBase == "" {
		opts.fastqBase = opts.experimentID
	}
	if opts.readsPerFile == 0 {
		opts.readsPerFile = 4
	}
	assert.NoError(t, os.MkdirAll(dir, 0775))

	sheet := strings.Builder{}
	sheet.WriteString("[Header]\nIEMFileVersion,4\n")
	fmt.Fprintf(&sheet, "ExperimentName,%s\n", opts.experimentID)
	if opts.libprep != "" {
		fmt.Fprintf(&sheet, "Libprep,%s\n", opts.libprep)
	}
	sheet.WriteString("[Reads]\n75\n[Data]\nLane,Sample_ID,Sample_Name,index\n")
	manifest := strings.Builder{}
	manifest.WriteString("Sample_ID\tSample_Project\n")
	for i, s := range opts.samples {
		fmt.Fprintf(&sheet, "1,%s,%s,IDX%03d\n", s, s, i)
		fmt.Fprintf(&manifest, "%s\t%s\n", s, opts.experimentID)
	}
	writeFile(t, filepath.Join(dir, "SampleSheet.csv"), sheet.String())
	writeFile(t, filepath.Join(dir, opts.experimentID+"_samplesheet.tsv"), manifest.String())

	fastqDir := filepath.Join(dir, opts.fastqBase)
	assert.NoError(t, os.MkdirAll(fastqDir, 0775))
	for sample, basenames := range opts.files {
		for _, basename := range basenames {
			writeFastqGz(t, filepath.Join(fastqDir, basename), sample, opts.readsPerFile)
		}
	}

	if !opts.noStats {
		assert.NoError(t, os.MkdirAll(filepath.Join(dir, "Stats"), 0775))
		writeFile(t, filepath.Join(dir, "Stats", "Stats.json"), `{"Flowcell":"HGWTTBGX9"}`)
	}
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "InterOp"), 0775))
	writeFile(t, filepath.Join(dir, "InterOp", "QMetricsOut.bin"), "interop")
	writeFile(t, filepath.Join(dir, "bcl.done"), "")
	writeFile(t, filepath.Join(dir, "Sample-Submission-Form.xlsx"), "xlsx-bytes")
}

func writeFile(t *testing.T, path, content string) {
	assert.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
}

// writeFastqGz writes a gzipped FASTQ file with n synthetic reads.
func writeFastqGz(t *testing.T, path, sample string, n int) {
	buf := bytes.Buffer{}
	gz := gzip.NewWriter(&buf)
	for i := 0; i < n; i++ {
		fmt.Fprintf(gz, "@%s:read%04d\nACGTACGTACGT\n+\nIIIIIIIIIIII\n", sample, i)
	}
	assert.NoError(t, gz.Close())
	assert.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0644))
}
