package sim_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/rivanek/forestfire/internal/lattice"
	"github.com/rivanek/forestfire/internal/sim"
	"github.com/rivanek/forestfire/internal/spread"
)

func newSampler(side, samples int) *sim.Sampler {
	return &sim.Sampler{
		Side:         side,
		Samples:      samples,
		Workers:      4,
		Neighborhood: spread.VonNeumann,
		Seed:         42,
	}
}

func TestAggregate_ZeroSamplesIsConfigurationError(t *testing.T) {
	s := newSampler(8, 0)
	if _, err := s.Aggregate(context.Background(), 0, 0.5); err == nil {
		t.Fatal("Aggregate with 0 samples expected error, got nil")
	}
}

func TestAggregate_InvalidSideIsConfigurationError(t *testing.T) {
	s := newSampler(0, 10)
	if _, err := s.Aggregate(context.Background(), 0, 0.5); err == nil {
		t.Fatal("Aggregate with side 0 expected error, got nil")
	}
}

func TestAggregate_DegenerateProbabilities(t *testing.T) {
	// p=0: no occupied cells, nothing ignites, every trial burns 0 steps.
	s := newSampler(8, 50)
	agg, err := s.Aggregate(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("Aggregate(p=0) error = %v", err)
	}
	if agg.Mean != 0 || agg.Variance != 0 {
		t.Errorf("p=0: mean=%v variance=%v, want 0, 0", agg.Mean, agg.Variance)
	}
	if agg.Samples != 50 {
		t.Errorf("p=0: samples = %d, want 50", agg.Samples)
	}

	// p=1: the front advances one row per step, every trial burns exactly
	// side steps.
	const side = 5
	s = newSampler(side, 50)
	agg, err = s.Aggregate(context.Background(), 0, 1)
	if err != nil {
		t.Fatalf("Aggregate(p=1) error = %v", err)
	}
	if agg.Mean != side || agg.Variance != 0 {
		t.Errorf("p=1: mean=%v variance=%v, want %d, 0", agg.Mean, agg.Variance, side)
	}
}

func TestAggregate_ReproducibleForFixedSeedAndWorkers(t *testing.T) {
	a, err := newSampler(12, 400).Aggregate(context.Background(), 3, 0.45)
	if err != nil {
		t.Fatalf("first Aggregate error = %v", err)
	}
	b, err := newSampler(12, 400).Aggregate(context.Background(), 3, 0.45)
	if err != nil {
		t.Fatalf("second Aggregate error = %v", err)
	}
	if a != b {
		t.Errorf("same seed and worker count produced %+v and %+v", a, b)
	}
}

func TestAggregate_MeanNondecreasingInP(t *testing.T) {
	// Statistical monotonicity: below the point where spanning becomes
	// near-certain, raising p cannot lower the mean burn time. A small
	// tolerance absorbs sampling noise.
	const tolerance = 0.25
	s := newSampler(16, 1500)

	means := make([]float64, 0, 3)
	for i, p := range []float64{0.1, 0.4, 0.7} {
		agg, err := s.Aggregate(context.Background(), i, p)
		if err != nil {
			t.Fatalf("Aggregate(p=%.1f) error = %v", p, err)
		}
		means = append(means, agg.Mean)
	}

	for i := 1; i < len(means); i++ {
		if means[i]+tolerance < means[i-1] {
			t.Errorf("mean burn time decreased: %.4f at step %d vs %.4f at step %d",
				means[i], i, means[i-1], i-1)
		}
	}
}

func TestRunTrial_BoundedByCellCount(t *testing.T) {
	const side = 10
	lat, err := lattice.New(side)
	if err != nil {
		t.Fatalf("lattice.New error = %v", err)
	}
	sp := spread.New(spread.VonNeumann)
	rng := rand.New(rand.NewPCG(5, 13))

	for _, p := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		for trial := 0; trial < 200; trial++ {
			steps := sim.RunTrial(lat, sp, p, rng)
			if steps < 0 || steps > side*side {
				t.Fatalf("p=%.1f: steps = %d, want within [0, %d]", p, steps, side*side)
			}
		}
	}
}
