package tsp

import (
	"log"
	"math/rand"
	"time"

	"github.com/arlenix/tsplk/oracle"
)

// LKHOptions configures the Lin-Kernighan-style k-opt improver (§4.J,
// §6). Field names follow the original's LKHConfig verbatim (Go-cased),
// per SPEC_FULL.md supplemental resolution 4.
type LKHOptions struct {
	CacheOptions

	// NeighborSize is the per-city candidate list length. Must be at
	// least 1 (DefaultNeighborSize in [DefaultLKHOptions]).
	NeighborSize int

	// Seed drives every randomized choice: don't-look-bit selection, the
	// inner search's symmetric-expansion coin flip, and kick resampling.
	Seed int64

	// TimeMS is the wall-clock budget in milliseconds. Must be positive:
	// the outer loop checks it between iterations and returns the
	// best-seen tour once exceeded (§5 "Cancellation").
	TimeMS int64

	// StartKickStep is the number of chained double-bridge-flavoured
	// swaps performed by one perturbation kick. A plain LKH call uses
	// this as a constant kick length; the divide-and-conquer wrapper
	// widens it across repeated stalls (§4.K).
	StartKickStep int

	// KickStepDiff and EndKickStep describe the progressive-kick
	// schedule used by the divide-and-conquer wrapper (§4.K); unused by
	// a standalone LKH call.
	KickStepDiff int
	EndKickStep  int

	// FailCountThreshold is the number of consecutive non-improving
	// divide-and-conquer passes tolerated before RefineUntilStall stops;
	// unused by a standalone LKH call.
	FailCountThreshold int

	// MaxDepth is the iterative-deepening ceiling. Must be at least 2
	// (DefaultMaxDepth in [DefaultLKHOptions]).
	MaxDepth int
}

// DefaultLKHOptions returns the conservative default configuration: a
// 1-second time budget, depth ceiling 6, and a constant 100-swap kick.
func DefaultLKHOptions() LKHOptions {
	return LKHOptions{
		CacheOptions:       DefaultCacheOptions(),
		NeighborSize:       DefaultNeighborSize,
		Seed:               0,
		TimeMS:             1000,
		StartKickStep:      DefaultKickSteps,
		KickStepDiff:       0,
		EndKickStep:        DefaultKickSteps,
		FailCountThreshold: 3,
		MaxDepth:           DefaultMaxDepth,
	}
}

func (o LKHOptions) validate() error {
	if err := o.CacheOptions.validate(); err != nil {
		return err
	}
	if o.NeighborSize < 1 || o.TimeMS <= 0 || o.MaxDepth < 2 || o.StartKickStep < 1 {
		return ErrInvalidOptions
	}
	return nil
}

// LKH runs the sequential k-opt local search with iterative deepening
// and double-bridge-flavoured kicks (§4.J) against tour, in place.
//
// Grounded verbatim on the outer loop, inner search, and kick mechanics
// in the original's lkh::solve. Per the original, the inner search
// explores via an [ArrayTour] + [SpeculativeLog] pair rather than the
// (two-level) tour type the caller may otherwise be using for 2-opt/
// 3-opt — see [IndexedTour]'s doc comment for why.
//
// Returns the best objective value found.
func LKH(dist oracle.Distance, tour *ArrayTour, neighbors *NeighborTable, opts LKHOptions) int64 {
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
	selected := NewBitset(n)

	eval := Evaluate(dist, tour)
	globalBestEval := eval
	globalBest := NewArrayTourFromTour(tour)

	start := time.Now()
	budget := time.Duration(opts.TimeMS) * time.Millisecond

	for time.Since(start) < budget {
		if active.IsEmpty() {
			if globalBestEval > eval {
				globalBestEval = eval
				globalBest.CopyFrom(tour)
			} else {
				tour.CopyFrom(globalBest)
			}
			lkhKick(tour, neighbors, active, rng, opts.StartKickStep)
			eval = Evaluate(dist, tour)
			continue
		}

		a := active.RandomSelect(rng)
		selected.ClearAll()

		currentFlip := NewSpeculativeLog(tour)
		bestFlip := NewSpeculativeLog(tour)
		bestGain := int64(0)

		aNext := tour.Next(a)
		aPrev := tour.Prev(a)
		edgeStack := make([][2]int, 0, opts.MaxDepth+1)

		for maxDepth := 2; maxDepth <= opts.MaxDepth; maxDepth++ {
			for _, ab := range [2][2]int{{aPrev, a}, {a, aNext}} {
				from, to := ab[0], ab[1]
				selected.Set(from)
				selected.Set(to)
				edgeStack = append(edgeStack, [2]int{from, to})

				lkhSolveInner(1, maxDepth, dist, neighbors, currentFlip, bestFlip, &edgeStack, 0, &bestGain, selected, rng)

				selected.Clear(from)
				selected.Clear(to)
				edgeStack = edgeStack[:len(edgeStack)-1]
			}
			if bestGain > 0 {
				break
			}
		}

		if bestGain > 0 {
			eval -= bestGain
			for _, sw := range bestFlip.ToSwapList() {
				tour.Swap(sw[0], sw[1])
				active.Push(sw[0])
				active.Push(sw[1])
			}
		} else {
			active.Remove(a)
		}
	}

	if globalBestEval > eval {
		globalBestEval = eval
	} else {
		tour.CopyFrom(globalBest)
	}

	if opts.Debug {
		log.Printf("tsp: LKH finished, best eval %d", globalBestEval)
	}
	return globalBestEval
}

// lkhSolveInner is the iterative-deepening recursion at one stack depth:
// at the ceiling it records current_flip as the new best if its gain
// improves; otherwise it expands the top-of-stack broken edge via
// candidate neighbors of either endpoint (chosen by a coin flip each
// call, per §4.J "may be randomized").
func lkhSolveInner(depth, maxDepth int, dist oracle.Distance, neighbors *NeighborTable,
	currentFlip, bestFlip *SpeculativeLog, edgeStack *[][2]int, gain int64, bestGain *int64,
	selected *Bitset, rng *rand.Rand) {

	if depth == maxDepth {
		if *bestGain < gain {
			*bestGain = gain
			bestFlip.CopyFrom(currentFlip)
		}
		return
	}

	last := (*edgeStack)[len(*edgeStack)-1]
	f1, t1 := last[0], last[1]

	if rng.Float64() < 0.5 {
		for _, f2 := range neighbors.Neighbors(f1) {
			t2 := currentFlip.Next(f2)
			lkhCheck(depth, maxDepth, dist, neighbors, currentFlip, bestFlip, edgeStack, gain, bestGain, selected, f1, t1, f2, t2, rng)
		}
	} else {
		for _, t2 := range neighbors.Neighbors(t1) {
			f2 := currentFlip.Prev(t2)
			lkhCheck(depth, maxDepth, dist, neighbors, currentFlip, bestFlip, edgeStack, gain, bestGain, selected, f1, t1, f2, t2, rng)
		}
	}
}

// lkhCheck tries one candidate continuation edge pair (f2, t2): if
// neither endpoint is already committed to the current chain, it
// speculatively swaps (t1, f2), computes the partial gain of replacing
// edges (f1,t1)/(f2,t2) with (f1,f2)/(t1,t2), and recurses on both
// resulting broken edges before undoing.
func lkhCheck(depth, maxDepth int, dist oracle.Distance, neighbors *NeighborTable,
	currentFlip, bestFlip *SpeculativeLog, edgeStack *[][2]int, gain int64, bestGain *int64,
	selected *Bitset, f1, t1, f2, t2 int, rng *rand.Rand) {

	if selected.Test(f2) || selected.Test(t2) {
		return
	}
	selected.Set(f2)
	selected.Set(t2)
	currentFlip.Swap(t1, f2)

	partialGain := dist.Dist(f1, t1) + dist.Dist(f2, t2) - dist.Dist(f1, f2) - dist.Dist(t1, t2)

	for _, edge := range [2][2]int{{f1, f2}, {t1, t2}} {
		*edgeStack = append(*edgeStack, edge)
		lkhSolveInner(depth+1, maxDepth, dist, neighbors, currentFlip, bestFlip, edgeStack, gain+partialGain, bestGain, selected, rng)
		*edgeStack = (*edgeStack)[:len(*edgeStack)-1]
	}

	currentFlip.Undo()
	selected.Clear(f2)
	selected.Clear(t2)
}

// lkhKick applies one double-bridge-flavoured chained-2-opt perturbation
// (§4.J "Kick"): starting from a random edge (a,b), it repeatedly picks
// a nearby edge (c,d) to swap against, chaining through the tour rather
// than jumping to a single distant 4-opt.
//
// Per SPEC_FULL.md supplemental resolution 2, both resampling loops
// (picking a new `a`, picking a non-marked `c`) are capped at
// len(neighbors)*4 attempts and fall back to a uniform random unmarked
// vertex, resolving the §9 Open Question against the original's
// unbounded `while` (which can loop forever once the neighbor graph is
// fully marked). Once every vertex or edge is marked, the fallback
// picks a uniformly random city regardless of marks.
func lkhKick(tour *ArrayTour, neighbors *NeighborTable, active *IntSet, rng *rand.Rand, steps int) {
	n := tour.Len()
	a := rng.Intn(n)
	b := tour.Next(a)

	selected := NewBitset(n)
	selected.Set(a)
	selected.Set(b)

	allNeighborsMarked := func(v int) bool {
		for _, u := range neighbors.Neighbors(v) {
			if !selected.Test(u) && !selected.Test(tour.Next(u)) {
				return false
			}
		}
		return true
	}

	for step := 0; step < steps; step++ {
		aCap := len(neighbors.Neighbors(a)) * 4
		aResamples := 0
		for allNeighborsMarked(a) {
			if aResamples >= aCap {
				a = randomUnmarkedVertex(n, selected, rng)
				break
			}
			aNeighbors := neighbors.Neighbors(a)
			a = aNeighbors[rng.Intn(len(aNeighbors))]
			aResamples++
		}

		aNeighbors := neighbors.Neighbors(a)
		cCap := len(aNeighbors) * 4
		cIdx := rng.Intn(len(aNeighbors))
		c := aNeighbors[cIdx]
		d := tour.Next(c)

		cResamples := 0
		for selected.Test(c) || selected.Test(d) {
			if cResamples >= cCap {
				c = randomUnmarkedPairStart(tour, n, selected, rng)
				d = tour.Next(c)
				break
			}
			cIdx = rng.Intn(len(aNeighbors))
			c = aNeighbors[cIdx]
			d = tour.Next(c)
			cResamples++
		}
		selected.Set(c)
		selected.Set(d)

		tour.Swap(b, c)
		active.Push(a)
		active.Push(b)
		active.Push(c)
		active.Push(d)

		a, b = b, d
	}
}

// randomUnmarkedVertex returns a uniformly random city not marked in
// selected, sampling first and falling back to a linear scan. When every
// city is marked it returns a uniformly random city.
func randomUnmarkedVertex(n int, selected *Bitset, rng *rand.Rand) int {
	for i := 0; i < n; i++ {
		candidate := rng.Intn(n)
		if !selected.Test(candidate) {
			return candidate
		}
	}
	for i := 0; i < n; i++ {
		if !selected.Test(i) {
			return i
		}
	}
	return rng.Intn(n)
}

// randomUnmarkedPairStart returns a city c, unmarked, whose successor is
// also unmarked, for the kick's (c, next(c)) edge selection fallback.
// When no such edge is left it returns a uniformly random city.
func randomUnmarkedPairStart(tour *ArrayTour, n int, selected *Bitset, rng *rand.Rand) int {
	for i := 0; i < n; i++ {
		candidate := rng.Intn(n)
		if !selected.Test(candidate) && !selected.Test(tour.Next(candidate)) {
			return candidate
		}
	}
	for i := 0; i < n; i++ {
		if !selected.Test(i) && !selected.Test(tour.Next(i)) {
			return i
		}
	}
	return rng.Intn(n)
}
