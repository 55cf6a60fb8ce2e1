// Package sim contains the trial runner, the sampler that aggregates many
// independent trials for one occupation probability, and the sweep controller
// that walks the probability range and streams result rows.
package sim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/rivanek/forestfire/internal/lattice"
	"github.com/rivanek/forestfire/internal/spread"
	"github.com/rivanek/forestfire/internal/stats"
)

// Aggregate is the summary of all trials for one (side, p) pair. It is the
// unit written to the output stream.
type Aggregate struct {
	P        float64 `json:"p"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Samples  int     `json:"samples"`
}

// Sampler runs batches of independent trials for a fixed lattice side and
// reports the aggregate burn-time statistics per probability point.
type Sampler struct {
	// Side is the lattice side length. Must be positive.
	Side int

	// Samples is the number of independent trials per probability point.
	// Must be positive.
	Samples int

	// Workers is the number of goroutines running trials. 0 means all CPUs.
	Workers int

	// Neighborhood selects the adjacency rule for spreading.
	Neighborhood spread.Neighborhood

	// Seed is the base random seed. Worker streams are derived from it, the
	// probability point index, and the worker index, so a run is reproducible
	// for a fixed seed and worker count.
	Seed uint64
}

// Aggregate runs Samples independent trials at occupation probability p and
// returns the aggregated burn-time statistics. Trials are split across the
// worker pool; each worker owns a private lattice buffer, spreader, and
// random stream, and folds its results into a private accumulator. The
// per-worker accumulators are merged only after every worker has finished,
// so no partial result is ever observed.
func (s *Sampler) Aggregate(ctx context.Context, point int, p float64) (Aggregate, error) {
	if s.Samples <= 0 {
		return Aggregate{}, fmt.Errorf("sample count must be positive, got %d", s.Samples)
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > s.Samples {
		workers = s.Samples
	}

	// Build each worker's resources up front so configuration errors surface
	// before any goroutine starts.
	lattices := make([]*lattice.Lattice, workers)
	for w := range lattices {
		lat, err := lattice.New(s.Side)
		if err != nil {
			return Aggregate{}, err
		}
		lattices[w] = lat
	}

	// Distribute the trial count as evenly as possible.
	base := s.Samples / workers
	rem := s.Samples % workers

	accs := make([]stats.Accumulator, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		count := base
		if w < rem {
			count++
		}
		go func(w, count int) {
			defer wg.Done()
			lat := lattices[w]
			sp := spread.New(s.Neighborhood)
			rng := rand.New(rand.NewPCG(s.Seed, streamID(point, w)))
			for i := 0; i < count; i++ {
				if ctx.Err() != nil {
					return
				}
				steps := RunTrial(lat, sp, p, rng)
				accs[w].Add(float64(steps))
			}
		}(w, count)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Aggregate{}, err
	}

	var total stats.Accumulator
	for w := range accs {
		total.Merge(accs[w])
	}
	return Aggregate{
		P:        p,
		Mean:     total.Mean(),
		Variance: total.Variance(),
		Samples:  total.N(),
	}, nil
}

// streamID derives a distinct PCG stream for each (probability point, worker)
// pair under a fixed base seed.
func streamID(point, worker int) uint64 {
	return uint64(point)<<32 | uint64(worker)
}
