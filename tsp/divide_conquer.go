package tsp

import (
	"log"
	"math/rand"
	"sync"

	"github.com/arlenix/tsplk/oracle"
)

// DivideConquerOptions configures the divide-and-conquer refiner (§4.K,
// §6): `NoSplit` plus every LKH field except the cache path fields,
// which don't apply to the per-segment sub-instances (they are relabeled
// 0..m and never share a neighbor cache with the parent problem).
type DivideConquerOptions struct {
	// NoSplit is the number of contiguous segments the tour is
	// partitioned into. Must be at least 1 (DefaultNoSplit in
	// [DefaultDivideConquerOptions]).
	NoSplit int

	Seed               int64
	Debug              bool
	TimeMS             int64
	StartKickStep      int
	KickStepDiff       int
	EndKickStep        int
	FailCountThreshold int
	MaxDepth           int
	NeighborSize       int
}

// DefaultDivideConquerOptions returns the conservative default
// configuration, mirroring the original's hardcoded per-segment LKH
// config (time_ms: 120_000, start_kick_step: 10, kick_step_diff: 10,
// end_kick_step: segment_size/10, fail_count_threashold: 50).
func DefaultDivideConquerOptions() DivideConquerOptions {
	return DivideConquerOptions{
		NoSplit:            DefaultNoSplit,
		Seed:               0,
		Debug:              false,
		TimeMS:             120_000,
		StartKickStep:      10,
		KickStepDiff:       10,
		EndKickStep:        0, // 0 selects segmentSize/10 per segment
		FailCountThreshold: 50,
		MaxDepth:           DefaultMaxDepth,
		NeighborSize:       DefaultNeighborSize,
	}
}

func (o DivideConquerOptions) validate() error {
	if o.NoSplit < 1 || o.TimeMS <= 0 || o.MaxDepth < 2 || o.StartKickStep < 1 {
		return ErrInvalidOptions
	}
	return nil
}

// dividedDistance wraps a ref oracle for one segment's open-path
// sub-TSP (§4.K): the segment's cities are relabeled 0..m, and the
// artificial edge (0, m-1) is zeroed so an LKH cycle over the relabeled
// instance is equivalent to optimising the open path 0 -> ... -> m-1.
//
// Grounded on the original's DividedDistance.
type dividedDistance struct {
	ref       oracle.Distance
	vertexMap []int // vertexMap[relabeled] = original city id
	begin     int
	end       int
}

func newDividedDistance(ref oracle.Distance, vertexMap []int) *dividedDistance {
	return &dividedDistance{
		ref:       ref,
		vertexMap: vertexMap,
		begin:     0,
		end:       len(vertexMap) - 1,
	}
}

func (d *dividedDistance) Dist(i, j int) int64 {
	if (i == d.begin && j == d.end) || (i == d.end && j == d.begin) {
		return 0
	}
	return d.ref.Dist(d.vertexMap[i], d.vertexMap[j])
}

func (d *dividedDistance) Dimension() int {
	return len(d.vertexMap)
}

func (d *dividedDistance) Name() string {
	return "divided"
}

// partitionTour walks tour forward from a random start city, splitting
// it into noSplit contiguous runs of roughly equal length (§4.K "pick a
// random starting city; walk forward, partitioning... into no_split
// contiguous segments of roughly equal length").
func partitionTour(tour Tour, noSplit int, rng *rand.Rand) [][]int {
	n := tour.Len()
	id := rng.Intn(n)
	segments := make([][]int, noSplit)
	for seg := 0; seg < noSplit; seg++ {
		segLen := n*(seg+1)/noSplit - n*seg/noSplit
		members := make([]int, segLen)
		for i := 0; i < segLen; i++ {
			members[i] = id
			id = tour.Next(id)
		}
		segments[seg] = members
	}
	return segments
}

// solveSegment optimises one partition's open-path sub-TSP with LKH and
// returns the optimised cities in original-ID space, oriented from the
// segment's first city toward its last (§4.K "reconstruct... by walking
// the resulting cycle from 0 toward m-1").
func solveSegment(ref oracle.Distance, vertexMap []int, opts DivideConquerOptions, seed int64) []int {
	m := len(vertexMap)
	if m <= 1 {
		out := make([]int, m)
		copy(out, vertexMap)
		return out
	}

	partial := newDividedDistance(ref, vertexMap)
	neighborSize := opts.NeighborSize
	if neighborSize > m-1 {
		neighborSize = m - 1
	}
	neighbors := BuildNeighborTable(partial, neighborSize)

	endKickStep := opts.EndKickStep
	if endKickStep <= 0 {
		endKickStep = m / 10
		if endKickStep < opts.StartKickStep {
			endKickStep = opts.StartKickStep
		}
	}

	lkhOpts := LKHOptions{
		CacheOptions:       DefaultCacheOptions(),
		NeighborSize:       neighborSize,
		Seed:               seed,
		TimeMS:             opts.TimeMS,
		StartKickStep:      opts.StartKickStep,
		KickStepDiff:       opts.KickStepDiff,
		EndKickStep:        endKickStep,
		FailCountThreshold: opts.FailCountThreshold,
		MaxDepth:           opts.MaxDepth,
	}

	segTour := NewArrayTour(m)
	LKH(partial, segTour, neighbors, lkhOpts)

	n := m - 1
	inOrder := segTour.Prev(0) == n

	out := make([]int, m)
	id := 0
	for i := 0; i < m; i++ {
		out[i] = vertexMap[id]
		if inOrder {
			id = segTour.Next(id)
		} else {
			id = segTour.Prev(id)
		}
	}
	return out
}

// DivideAndConquer partitions tour into opts.NoSplit contiguous
// segments, refines each independently and in parallel with LKH over a
// [dividedDistance]-relabeled open-path sub-instance, then stitches the
// optimised segments back together in their original rotation order
// (§4.K).
//
// Per §5's concurrency model, each segment owns its own sub-tour,
// speculative log, RNG (seeded from opts.Seed via deriveSeed), don't-look
// set, and bitset; the only shared resource is the read-only dist oracle.
//
// Returns a fresh [ArrayTour] holding the refined tour.
func DivideAndConquer(dist oracle.Distance, tour Tour, opts DivideConquerOptions) *ArrayTour {
	if err := opts.validate(); err != nil {
		panic(err)
	}
	n := tour.Len()
	if n == 0 {
		return NewArrayTour(0)
	}

	rng := rngFromSeed(opts.Seed)
	segments := partitionTour(tour, opts.NoSplit, rng)

	refined := make([][]int, len(segments))
	var wg sync.WaitGroup
	for i, seg := range segments {
		wg.Add(1)
		go func(i int, seg []int) {
			defer wg.Done()
			segSeed := deriveSeed(opts.Seed, uint64(i))
			refined[i] = solveSegment(dist, seg, opts, segSeed)
		}(i, seg)
	}
	wg.Wait()

	flat := make([]int, 0, n)
	for _, seg := range refined {
		flat = append(flat, seg...)
	}

	out := NewArrayTour(n)
	for i, city := range flat {
		out.content[i] = city
		out.indexOf[city] = i
	}

	if opts.Debug {
		log.Printf("tsp: divide-and-conquer refined %d segments, eval %d", opts.NoSplit, Evaluate(dist, out))
	}
	return out
}

// RefineUntilStall repeatedly calls DivideAndConquer, widening the kick
// step each pass from opts.StartKickStep toward opts.EndKickStep by
// opts.KickStepDiff, until opts.FailCountThreshold consecutive passes
// fail to improve the objective (§4.K "repeats with rising time_ms and
// start_kick_step until improvement stalls beyond a threshold";
// SPEC_FULL.md supplemental resolution 4).
func RefineUntilStall(dist oracle.Distance, tour Tour, opts DivideConquerOptions) *ArrayTour {
	if err := opts.validate(); err != nil {
		panic(err)
	}

	current := NewArrayTourFromTour(tour)
	bestEval := Evaluate(dist, current)

	passOpts := opts
	failCount := 0
	pass := 0
	for failCount < opts.FailCountThreshold {
		candidate := DivideAndConquer(dist, current, passOpts)
		candidateEval := Evaluate(dist, candidate)

		if candidateEval < bestEval {
			bestEval = candidateEval
			current = candidate
			failCount = 0
		} else {
			failCount++
		}

		passOpts.Seed = deriveSeed(passOpts.Seed, uint64(pass))
		passOpts.TimeMS += opts.TimeMS
		if passOpts.StartKickStep+opts.KickStepDiff <= opts.EndKickStep || opts.EndKickStep == 0 {
			passOpts.StartKickStep += opts.KickStepDiff
		}
		pass++
	}

	if opts.Debug {
		log.Printf("tsp: RefineUntilStall stopped after %d passes, best eval %d", pass, bestEval)
	}
	return current
}
