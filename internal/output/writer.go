// Package output implements the row writers the sweep controller streams
// aggregates through. The text format is the contract consumed by the
// plotting collaborator: two whitespace-separated numeric fields per line,
// p then mean burn time, ascending p. Every writer flushes per row so a
// killed process leaves a valid, truncatable result file.
package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/rivanek/forestfire/internal/sim"
)

// Formats accepted by NewWriter.
const (
	FormatText  = "text"
	FormatJSONL = "jsonl"
)

// NewWriter returns a row writer for the given format. withStats extends the
// text format with standard deviation and sample count columns; the default
// two-column form is kept for the downstream plot, which reads columns 1
// and 2. The jsonl writer always carries the full aggregate.
func NewWriter(format string, w io.Writer, withStats bool) (sim.RowWriter, error) {
	switch format {
	case FormatText:
		return &textWriter{w: bufio.NewWriter(w), stats: withStats}, nil
	case FormatJSONL:
		return &jsonlWriter{w: bufio.NewWriter(w)}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

type textWriter struct {
	w     *bufio.Writer
	stats bool
}

func (t *textWriter) WriteRow(a sim.Aggregate) error {
	var err error
	if t.stats {
		_, err = fmt.Fprintf(t.w, "%.4f\t%.5f\t%.5f\t%d\n", a.P, a.Mean, stdDev(a), a.Samples)
	} else {
		_, err = fmt.Fprintf(t.w, "%.4f\t%.5f\n", a.P, a.Mean)
	}
	if err != nil {
		return err
	}
	return t.w.Flush()
}

type jsonlWriter struct {
	w *bufio.Writer
}

func (j *jsonlWriter) WriteRow(a sim.Aggregate) error {
	enc := json.NewEncoder(j.w)
	if err := enc.Encode(a); err != nil {
		return err
	}
	return j.w.Flush()
}

func stdDev(a sim.Aggregate) float64 {
	if a.Variance <= 0 {
		return 0
	}
	return math.Sqrt(a.Variance)
}
