package lattice

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestNew_RejectsNonPositiveSide(t *testing.T) {
	for _, side := range []int{0, -1, -64} {
		if _, err := New(side); err == nil {
			t.Errorf("New(%d) expected error, got nil", side)
		}
	}
}

func TestGenerate_ExtremeProbabilities(t *testing.T) {
	lat, err := New(8)
	if err != nil {
		t.Fatalf("New(8) error = %v", err)
	}
	rng := rand.New(rand.NewPCG(1, 2))

	lat.Generate(0, rng)
	if got := lat.CountState(Empty); got != lat.Len() {
		t.Errorf("p=0: empty cells = %d, want %d", got, lat.Len())
	}

	lat.Generate(1, rng)
	if got := lat.CountState(Occupied); got != lat.Len() {
		t.Errorf("p=1: occupied cells = %d, want %d", got, lat.Len())
	}
}

func TestGenerate_OccupancyTracksProbability(t *testing.T) {
	lat, err := New(64)
	if err != nil {
		t.Fatalf("New(64) error = %v", err)
	}
	rng := rand.New(rand.NewPCG(7, 11))

	const p = 0.4
	lat.Generate(p, rng)
	frac := float64(lat.CountState(Occupied)) / float64(lat.Len())
	if math.Abs(frac-p) > 0.05 {
		t.Errorf("occupancy fraction = %.4f, want within 0.05 of %.2f", frac, p)
	}
}

func TestGenerate_ClearsPreviousTrialState(t *testing.T) {
	lat, err := New(4)
	if err != nil {
		t.Fatalf("New(4) error = %v", err)
	}
	rng := rand.New(rand.NewPCG(3, 5))

	// Leave burnt/burning debris from a previous trial in the buffer.
	lat.Set(0, 0, Burning)
	lat.Set(2, 3, Burnt)

	lat.Generate(0, rng)
	for i := 0; i < lat.Len(); i++ {
		if got := lat.AtIndex(i); got != Empty {
			t.Fatalf("cell %d = %v after regenerate at p=0, want empty", i, got)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	lat, err := New(3)
	if err != nil {
		t.Fatalf("New(3) error = %v", err)
	}
	lat.Set(1, 1, Occupied)

	cp := lat.Clone()
	cp.Set(1, 1, Burnt)

	if got := lat.At(1, 1); got != Occupied {
		t.Errorf("original cell mutated through clone: got %v, want occupied", got)
	}
	if got := cp.At(1, 1); got != Burnt {
		t.Errorf("clone cell = %v, want burnt", got)
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{Empty, "empty"},
		{Occupied, "occupied"},
		{Burning, "burning"},
		{Burnt, "burnt"},
	}
	for _, tt := range tests {
		if got := tt.cell.String(); got != tt.want {
			t.Errorf("Cell(%d).String() = %q, want %q", uint8(tt.cell), got, tt.want)
		}
	}
}
