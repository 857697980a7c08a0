package tsp

import (
	"log"

	"github.com/arlenix/tsplk/oracle"
)

// TwoOptOptions configures the 2-opt improver (§4.H, §6).
type TwoOptOptions struct {
	CacheOptions

	// NeighborSize is the per-city candidate list length. Must be at
	// least 1 (DefaultNeighborSize in the default options).
	NeighborSize int

	// Seed drives the don't-look-bit driver's random vertex selection.
	// Zero selects the package default seed.
	Seed int64
}

// DefaultTwoOptOptions returns the conservative default configuration.
func DefaultTwoOptOptions() TwoOptOptions {
	return TwoOptOptions{
		CacheOptions: DefaultCacheOptions(),
		NeighborSize: DefaultNeighborSize,
		Seed:         0,
	}
}

func (o TwoOptOptions) validate() error {
	if err := o.CacheOptions.validate(); err != nil {
		return err
	}
	if o.NeighborSize < 1 {
		return ErrInvalidOptions
	}
	return nil
}

// TwoOpt runs the 2-opt local search improver directly against a
// [TwoLevelTour] (§4.H): a don't-look-bit driver repeatedly pops a random
// active vertex, searches its neighbor candidates for the single best
// positive-gain 2-opt move, applies it, and re-activates the four
// affected cities; vertices that yield no improvement are retired.
//
// Grounded on the don't-look-bit loop in the original's opt2 improver.
//
// tour is mutated in place. neighbors must already cover dist's
// dimension. Returns the total gain applied (non-negative, since the
// improver only ever accepts strictly positive moves).
func TwoOpt(dist oracle.Distance, tour *TwoLevelTour, neighbors *NeighborTable, opts TwoOptOptions) int64 {
	if err := opts.validate(); err != nil {
		panic(err)
	}
	n := tour.Len()
	if n == 0 {
		return 0
	}
	rng := rngFromSeed(opts.Seed)

	active := NewIntSet(n)
	active.SetAll()

	var totalGain int64
	for !active.IsEmpty() {
		a := active.RandomSelect(rng)
		b := tour.Next(a)

		bestGain := int64(0)
		bestC, bestD := -1, -1

		for _, c := range neighbors.Neighbors(a) {
			if c == a || c == b {
				continue
			}
			d := tour.Next(c)
			if d == a || b == c {
				continue
			}
			gain := dist.Dist(a, b) + dist.Dist(c, d) - dist.Dist(a, c) - dist.Dist(b, d)
			if gain > bestGain {
				bestGain = gain
				bestC, bestD = c, d
			}
		}

		if bestGain > 0 {
			tour.Swap(b, bestC)
			totalGain += bestGain
			active.Push(a)
			active.Push(b)
			active.Push(bestC)
			active.Push(bestD)
		} else {
			active.Remove(a)
		}
	}

	if opts.Debug {
		log.Printf("tsp: 2-opt finished, total gain %d", totalGain)
	}
	return totalGain
}
