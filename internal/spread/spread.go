// Package spread implements the burning process over a generated lattice.
// Ignition marks every occupied cell on the top edge as burning; each
// synchronous step turns burning cells to burnt and ignites their occupied
// neighbors. The step count until quiescence is the trial's burn time.
//
// The update is synchronous: a cell ignited during step k does not spread
// until step k+1. Rather than double-buffering the whole grid, the spreader
// keeps an explicit worklist of burning cells and advances it one frontier
// generation per step, so total work per trial is proportional to the number
// of occupied cells, not steps×N².
package spread

import (
	"fmt"

	"github.com/rivanek/forestfire/internal/lattice"
)

// Neighborhood selects the adjacency rule used when the fire spreads.
type Neighborhood int

const (
	// VonNeumann is 4-connectivity (orthogonal neighbors).
	VonNeumann Neighborhood = iota
	// Moore is 8-connectivity (orthogonal plus diagonal neighbors).
	Moore
)

// ParseNeighborhood maps a connectivity degree (4 or 8) to a Neighborhood.
func ParseNeighborhood(connectivity int) (Neighborhood, error) {
	switch connectivity {
	case 4:
		return VonNeumann, nil
	case 8:
		return Moore, nil
	default:
		return 0, fmt.Errorf("connectivity must be 4 or 8, got %d", connectivity)
	}
}

func (n Neighborhood) String() string {
	switch n {
	case VonNeumann:
		return "von-neumann"
	case Moore:
		return "moore"
	default:
		return fmt.Sprintf("neighborhood(%d)", int(n))
	}
}

// Spreader drives one lattice from ignition to quiescence. It owns two
// reusable frontier worklists so repeated trials allocate nothing. A Spreader
// is not safe for concurrent use; each worker owns its own.
type Spreader struct {
	neighborhood Neighborhood
	frontier     []int
	next         []int
}

// New creates a spreader for the given adjacency rule.
func New(neighborhood Neighborhood) *Spreader {
	return &Spreader{neighborhood: neighborhood}
}

// Run ignites the top edge of the lattice and advances synchronous steps
// until no cell is burning. It returns the number of steps applied: one per
// frontier generation consumed, so a lattice whose ignition row has no
// occupied cell burns for 0 steps, and a fully occupied lattice burns for
// exactly side steps. The result is fully determined by the lattice
// occupation; all randomness lives in lattice generation.
func (s *Spreader) Run(lat *lattice.Lattice) int {
	side := lat.Side()

	// Ignition: every occupied cell in row 0 starts burning.
	s.frontier = s.frontier[:0]
	for col := 0; col < side; col++ {
		if lat.At(0, col) == lattice.Occupied {
			lat.Set(0, col, lattice.Burning)
			s.frontier = append(s.frontier, lat.Index(0, col))
		}
	}

	steps := 0
	for len(s.frontier) > 0 {
		steps++
		s.next = s.next[:0]
		for _, idx := range s.frontier {
			lat.SetIndex(idx, lattice.Burnt)
			row, col := idx/side, idx%side

			s.ignite(lat, row-1, col)
			s.ignite(lat, row+1, col)
			s.ignite(lat, row, col-1)
			s.ignite(lat, row, col+1)
			if s.neighborhood == Moore {
				s.ignite(lat, row-1, col-1)
				s.ignite(lat, row-1, col+1)
				s.ignite(lat, row+1, col-1)
				s.ignite(lat, row+1, col+1)
			}
		}
		s.frontier, s.next = s.next, s.frontier
	}
	return steps
}

// ignite marks (row, col) as burning and queues it for the next step if it
// is an occupied cell inside the open boundary.
func (s *Spreader) ignite(lat *lattice.Lattice, row, col int) {
	side := lat.Side()
	if row < 0 || row >= side || col < 0 || col >= side {
		return
	}
	if lat.At(row, col) != lattice.Occupied {
		return
	}
	lat.Set(row, col, lattice.Burning)
	s.next = append(s.next, lat.Index(row, col))
}
