// Package lattice provides the square site lattice the burning process runs
// on. A lattice is generated fresh for every trial: each cell is independently
// Occupied with the trial's occupation probability, else Empty. The buffer is
// reusable across trials under the trial runner's exclusive ownership, so the
// per-trial cost is one O(N²) refill with no allocation.
package lattice

import (
	"fmt"
	"math/rand/v2"
)

// Cell is the state of a single lattice site.
type Cell uint8

const (
	// Empty sites never ignite.
	Empty Cell = iota
	// Occupied sites are flammable.
	Occupied
	// Burning sites ignite their occupied neighbors on the next step.
	Burning
	// Burnt sites have finished burning.
	Burnt
)

// String returns a short human-readable name for the cell state.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Occupied:
		return "occupied"
	case Burning:
		return "burning"
	case Burnt:
		return "burnt"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}

// Lattice is a side×side grid of cells stored row-major.
type Lattice struct {
	side  int
	cells []Cell
}

// New allocates a lattice of the given side length with every cell Empty.
// Side lengths below 1 are a configuration error.
func New(side int) (*Lattice, error) {
	if side <= 0 {
		return nil, fmt.Errorf("lattice side must be positive, got %d", side)
	}
	return &Lattice{
		side:  side,
		cells: make([]Cell, side*side),
	}, nil
}

// Side returns the side length of the lattice.
func (l *Lattice) Side() int { return l.side }

// Len returns the total number of cells.
func (l *Lattice) Len() int { return len(l.cells) }

// Index converts (row, col) to the flat cell index.
func (l *Lattice) Index(row, col int) int { return row*l.side + col }

// At returns the cell state at (row, col).
func (l *Lattice) At(row, col int) Cell { return l.cells[row*l.side+col] }

// Set writes the cell state at (row, col).
func (l *Lattice) Set(row, col int, c Cell) { l.cells[row*l.side+col] = c }

// AtIndex returns the cell state at a flat index.
func (l *Lattice) AtIndex(i int) Cell { return l.cells[i] }

// SetIndex writes the cell state at a flat index.
func (l *Lattice) SetIndex(i int, c Cell) { l.cells[i] = c }

// Generate refills the lattice for a new trial: every cell becomes Occupied
// with probability p, else Empty. Any Burning/Burnt state from a previous
// trial is overwritten. All randomness of the simulation lives here; the
// spreading process itself is deterministic.
func (l *Lattice) Generate(p float64, rng *rand.Rand) {
	switch {
	case p <= 0:
		for i := range l.cells {
			l.cells[i] = Empty
		}
	case p >= 1:
		for i := range l.cells {
			l.cells[i] = Occupied
		}
	default:
		for i := range l.cells {
			if rng.Float64() < p {
				l.cells[i] = Occupied
			} else {
				l.cells[i] = Empty
			}
		}
	}
}

// CountState returns how many cells are currently in the given state.
func (l *Lattice) CountState(c Cell) int {
	n := 0
	for _, cell := range l.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the lattice. Used by tests that need
// to re-run the deterministic spreading process on identical occupation.
func (l *Lattice) Clone() *Lattice {
	cp := &Lattice{
		side:  l.side,
		cells: make([]Cell, len(l.cells)),
	}
	copy(cp.cells, l.cells)
	return cp
}
