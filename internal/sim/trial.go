package sim

import (
	"math/rand/v2"

	"github.com/rivanek/forestfire/internal/lattice"
	"github.com/rivanek/forestfire/internal/spread"
)

// RunTrial executes one complete lattice-generate-and-spread cycle and
// returns the burn time in steps. The caller supplies the lattice buffer and
// spreader so repeated trials reuse their scratch space; both are owned
// exclusively by the caller for the duration of the call and nothing escapes
// it except the step count.
func RunTrial(lat *lattice.Lattice, sp *spread.Spreader, p float64, rng *rand.Rand) int {
	lat.Generate(p, rng)
	return sp.Run(lat)
}
