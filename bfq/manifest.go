package bfq

import (
	"io"
	"os"

	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

// RunManifestName returns the basename of the per-run sample manifest for an
// experiment, e.g. GCF-2019-123_samplesheet.tsv.
func RunManifestName(experimentID string) string {
	return experimentID + "_samplesheet.tsv"
}

// readRunManifest reads the tab-separated per-run sample manifest and returns
// its Sample_ID column in row order.
func readRunManifest(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open run manifest")
	}
	defer f.Close() // nolint: errcheck
	r := tsv.NewReader(f)
	r.HasHeaderRow = true
	r.UseHeaderNames = true
	type row struct {
		SampleID string `tsv:"Sample_ID"`
	}
	var ids []string
	for {
		var v row
		if err := r.Read(&v); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "read run manifest %s", path)
		}
		ids = append(ids, v.SampleID)
	}
	return ids, nil
}
