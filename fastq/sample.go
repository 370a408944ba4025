package fastq

import (
	"io"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
)

// SampleToCount writes up to n pseudorandomly selected reads from in to out.
// Selection is a seeded reservoir over the whole stream, so every read has
// equal inclusion probability and the output is deterministic for a given
// seed. Selected reads are emitted in input order. If the input holds fewer
// than n reads, all of them are written.
func SampleToCount(n int64, seed int64, in io.Reader, out io.Writer) error {
	if n <= 0 {
		return errors.Errorf("read count must be positive: %d", n)
	}
	type numbered struct {
		index int64
		read  Read
	}
	random := rand.New(rand.NewSource(seed))
	reservoir := make([]numbered, 0, n)
	scanner := NewScanner(in)
	var seen int64
	for {
		var r Read
		if !scanner.Scan(&r) {
			break
		}
		if seen < n {
			reservoir = append(reservoir, numbered{seen, r})
		} else if j := random.Int63n(seen + 1); j < n {
			reservoir[j] = numbered{seen, r}
		}
		seen++
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "error reading FASTQ input")
	}
	sort.Slice(reservoir, func(i, j int) bool { return reservoir[i].index < reservoir[j].index })
	w := NewWriter(out)
	for i := range reservoir {
		if err := w.Write(&reservoir[i].read); err != nil {
			return errors.Wrap(err, "error writing FASTQ output")
		}
	}
	return nil
}
