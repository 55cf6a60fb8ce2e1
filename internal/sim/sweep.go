package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RowWriter receives one aggregate per completed probability point. An
// implementation must make the row durable (flush) before returning, so a
// killed process leaves a valid prefix of the sweep in its output file.
type RowWriter interface {
	WriteRow(Aggregate) error
}

// Sweep walks the probability range for one lattice side, aggregates each
// point, and streams rows in ascending p as they complete.
type Sweep struct {
	// Sampler aggregates trials for each probability point.
	Sampler *Sampler

	// Resolution is the number of equidistant intervals in [0, 1]; the sweep
	// evaluates p = k/Resolution for k = 0..Resolution.
	Resolution int

	// Logger receives per-point diagnostics on the error stream. Optional.
	Logger *slog.Logger
}

// Run executes the sweep, writing one row per probability point. Rows are
// emitted as soon as a point completes, never buffered until the end, so a
// long sweep's partial progress can be inspected from the output file while
// it is still running. Cancellation is honored between points.
func (s *Sweep) Run(ctx context.Context, w RowWriter) error {
	if s.Resolution <= 2 {
		return fmt.Errorf("resolution must be greater than 2, got %d", s.Resolution)
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for k := 0; k <= s.Resolution; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := float64(k) / float64(s.Resolution)

		start := time.Now()
		agg, err := s.Sampler.Aggregate(ctx, k, p)
		if err != nil {
			return fmt.Errorf("aggregate p=%.4f: %w", p, err)
		}
		if err := w.WriteRow(agg); err != nil {
			return fmt.Errorf("write row p=%.4f: %w", p, err)
		}

		logger.Debug("point complete",
			"p", agg.P,
			"mean", agg.Mean,
			"samples", agg.Samples,
			"elapsed", time.Since(start))
	}
	return nil
}
