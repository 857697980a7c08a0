// Package tsp - unified driver chaining the local-search pipeline.
//
// This file provides the canonical entry point, Solve, which builds the
// identity tour, constructs (or loads) the shared neighbor table, and
// chains 2-opt -> 3-opt -> LKH -> divide-and-conquer repeatedly until
// the objective stalls, then finishes with one long LKH pass (§4.M;
// SPEC_FULL.md supplemental resolution 6 — no single binary in the
// original does this end-to-end, so the chain is a legitimate supplement
// rather than an invention, since spec.md's §2 table and §4.M prose call
// for exactly this shape).
package tsp

import (
	"log"

	"github.com/arlenix/tsplk/oracle"
)

// Options configures a full Solve run: one embedded Options struct per
// stage of the pipeline, following the teacher's "one Options struct per
// concern" convention.
type Options struct {
	TwoOpt         TwoOptOptions
	ThreeOpt       ThreeOptOptions
	LKH            LKHOptions
	DivideConquer  DivideConquerOptions
	FinalLKH       LKHOptions
	StallRounds    int // consecutive non-improving pipeline rounds before stopping
	Debug          bool
}

// DefaultOptions returns a pipeline configuration suitable for a
// from-scratch solve: moderate per-stage time budgets, a 3-round
// stagnation threshold, and a long final LKH pass.
func DefaultOptions() Options {
	finalLKH := DefaultLKHOptions()
	finalLKH.TimeMS = 60_000

	return Options{
		TwoOpt:        DefaultTwoOptOptions(),
		ThreeOpt:      DefaultThreeOptOptions(),
		LKH:           DefaultLKHOptions(),
		DivideConquer: DefaultDivideConquerOptions(),
		FinalLKH:      finalLKH,
		StallRounds:   3,
		Debug:         false,
	}
}

func (o Options) validate() error {
	if err := o.TwoOpt.validate(); err != nil {
		return err
	}
	if err := o.ThreeOpt.validate(); err != nil {
		return err
	}
	if err := o.LKH.validate(); err != nil {
		return err
	}
	if err := o.DivideConquer.validate(); err != nil {
		return err
	}
	if err := o.FinalLKH.validate(); err != nil {
		return err
	}
	if o.StallRounds < 1 {
		return ErrInvalidOptions
	}
	return nil
}

// Solve runs the full pipeline against dist and returns the best tour
// found as a plain city-ID slice (forward order, starting at city 0)
// together with its objective value.
//
// Pipeline (§2, §4.M):
//  1. Build the identity tour and the shared neighbor table (loading the
//     on-disk cache if configured).
//  2. Repeatedly run 2-opt, then 3-opt, then LKH, then divide-and-conquer
//     passes until they stall ([RefineUntilStall]) against the two-level
//     tour, tracking the objective; stop once opts.StallRounds consecutive
//     rounds fail to improve it.
//  3. Finish with one long LKH pass (opts.FinalLKH) as a final polish.
//
// Complexity: dominated by the LKH/divide-and-conquer rounds; see their
// individual docs.
func Solve(dist oracle.Distance, opts Options) ([]int, int64) {
	if err := validateDistance(dist); err != nil {
		panic(err)
	}
	if err := opts.validate(); err != nil {
		panic(err)
	}
	n := dist.Dimension()

	neighborSize := opts.LKH.NeighborSize
	if neighborSize < 1 {
		neighborSize = DefaultNeighborSize
	}
	neighbors := LoadOrBuildNeighborTable(dist, neighborSize, opts.LKH.CacheOptions)

	identity := NewArrayTour(n)
	twoLevel := NewTwoLevelTour(identity)

	bestEval := Evaluate(dist, twoLevel)
	if opts.Debug {
		log.Printf("tsp: initial eval %d", bestEval)
	}

	stall := 0
	for stall < opts.StallRounds {
		TwoOpt(dist, twoLevel, neighbors, opts.TwoOpt)
		ThreeOpt(dist, twoLevel, neighbors, opts.ThreeOpt)

		arr := NewArrayTourFromTour(twoLevel)
		LKH(dist, arr, neighbors, opts.LKH)
		twoLevel = NewTwoLevelTour(arr)

		refined := RefineUntilStall(dist, twoLevel, opts.DivideConquer)
		twoLevel = NewTwoLevelTour(refined)

		eval := Evaluate(dist, twoLevel)
		if opts.Debug {
			log.Printf("tsp: round eval %d (best %d)", eval, bestEval)
		}
		if eval < bestEval {
			bestEval = eval
			stall = 0
		} else {
			stall++
		}
	}

	finalArr := NewArrayTourFromTour(twoLevel)
	finalEval := LKH(dist, finalArr, neighbors, opts.FinalLKH)
	if finalEval < bestEval {
		bestEval = finalEval
	}

	if opts.Debug {
		log.Printf("tsp: solve finished, eval %d", bestEval)
	}
	return ToSlice(finalArr), bestEval
}
