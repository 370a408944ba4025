package bfq

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// SampleSheetName is the fixed basename of the primary run manifest.
const SampleSheetName = "SampleSheet.csv"

const (
	experimentTag = "ExperimentName"
	libprepTag    = "Libprep"
	dataTag       = "[Data]"
	sampleIDCol   = "Sample_ID"
)

// sheetMeta holds the two metadata fields Inspect needs from the sample
// sheet.
type sheetMeta struct {
	experimentID string
	libprep      string
}

// scanSheetMeta scans the metadata region of a sample sheet for the
// ExperimentName and Libprep lines. The scan stops at the first Libprep line;
// later duplicates are ignored.
func scanSheetMeta(r io.Reader) (sheetMeta, error) {
	var meta sheetMeta
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, experimentTag) {
			meta.experimentID = csvField(line, 1)
		}
		if strings.HasPrefix(line, libprepTag) {
			meta.libprep = csvField(line, 1)
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return meta, errors.Wrap(err, "scan sample sheet")
	}
	if meta.experimentID == "" {
		return meta, errors.Errorf("no %s line in sample sheet", experimentTag)
	}
	return meta, nil
}

func csvField(line string, i int) string {
	els := strings.Split(line, ",")
	if i >= len(els) {
		return ""
	}
	return els[i]
}

// FilterSampleSheet copies a sample sheet from in to out, keeping only the
// data rows that belong to the selected samples. Everything up to and
// including the [Data] column-header row is copied verbatim. A data row is
// dropped iff its Sample_ID names a valid-but-unselected sample; rows with
// ids outside valid (and blank trailing lines) pass through untouched.
func FilterSampleSheet(in io.Reader, out io.Writer, selected, valid []string) error {
	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read sample sheet")
	}

	headerLine := -1
	sampleIDIndex := -1
	for i, line := range lines {
		if strings.HasPrefix(line, dataTag) && i+1 < len(lines) {
			headerLine = i + 1
			for j, col := range strings.Split(lines[headerLine], ",") {
				if col == sampleIDCol {
					sampleIDIndex = j
					break
				}
			}
			break
		}
	}
	if headerLine < 0 {
		return errors.Errorf("no %s section in sample sheet", dataTag)
	}
	if sampleIDIndex < 0 {
		return errors.Errorf("no %s column in %s header", sampleIDCol, dataTag)
	}

	remove := make(map[string]bool)
	for _, s := range valid {
		remove[s] = true
	}
	for _, s := range selected {
		delete(remove, s)
	}

	w := bufio.NewWriter(out)
	for i, line := range lines {
		if i > headerLine && remove[csvField(line, sampleIDIndex)] {
			continue
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return errors.Wrap(err, "write sample sheet")
		}
	}
	return errors.Wrap(w.Flush(), "write sample sheet")
}
