package tsp

import (
	"log"

	"github.com/arlenix/tsplk/oracle"
)

// ThreeOptOptions configures the 3-opt improver (§4.I, §6).
type ThreeOptOptions struct {
	CacheOptions

	// NeighborSize is the per-city candidate list length. Must be at
	// least 1 (DefaultNeighborSize in the default options).
	NeighborSize int

	// Seed drives the don't-look-bit driver's random vertex selection.
	Seed int64
}

// DefaultThreeOptOptions returns the conservative default configuration.
func DefaultThreeOptOptions() ThreeOptOptions {
	return ThreeOptOptions{
		CacheOptions: DefaultCacheOptions(),
		NeighborSize: DefaultNeighborSize,
		Seed:         0,
	}
}

func (o ThreeOptOptions) validate() error {
	if err := o.CacheOptions.validate(); err != nil {
		return err
	}
	if o.NeighborSize < 1 {
		return ErrInvalidOptions
	}
	return nil
}

// threeOptPattern records the 1-3 swap pairs that realise one of the
// seven classical reconnections (§4.I), in the order they must be
// applied to the tour.
type threeOptPattern struct {
	swaps [3][2]int
	count int
}

func pat1(i1, i2 int) threeOptPattern {
	return threeOptPattern{swaps: [3][2]int{{i1, i2}}, count: 1}
}

func pat2(i1, i2, i3, i4 int) threeOptPattern {
	return threeOptPattern{swaps: [3][2]int{{i1, i2}, {i3, i4}}, count: 2}
}

func pat3(i1, i2, i3, i4, i5, i6 int) threeOptPattern {
	return threeOptPattern{swaps: [3][2]int{{i1, i2}, {i3, i4}, {i5, i6}}, count: 3}
}

// ThreeOpt runs the 3-opt local search improver directly against a
// [TwoLevelTour] (§4.I): for a don't-look-bit-selected vertex `a`, both
// tour edges at `a` are tried as the first removed edge; candidate
// second and third edges come from `a`'s and the candidate's neighbor
// lists; the seven classical 3-edge reconnections are scored and the
// best strictly-positive-gain one is applied. A generational bitset
// guards against an iteration reusing an already-selected endpoint.
//
// Grounded verbatim on the reconnection enumeration and gain formulas in
// the original's opt3 improver.
func ThreeOpt(dist oracle.Distance, tour *TwoLevelTour, neighbors *NeighborTable, opts ThreeOptOptions) int64 {
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

	var totalGain int64
	for !active.IsEmpty() {
		a0 := active.RandomSelect(rng)
		selected.ClearAll()

		bestGain := int64(0)
		var bestPat threeOptPattern
		found := false

		aNext := tour.Next(a0)
		aPrev := tour.Prev(a0)

		firstEdges := [2][2]int{{aPrev, a0}, {a0, aNext}}
		for _, ab := range firstEdges {
			a, b := ab[0], ab[1]
			selected.Set(a)
			selected.Set(b)

			// a-c branch: candidates drawn from neighbors[a], both
			// tour edges at each candidate tried as (c, d).
			for _, cCand := range neighbors.Neighbors(a) {
				cNext := tour.Next(cCand)
				cPrev := tour.Prev(cCand)
				cdPairs := [2][2]int{{cPrev, cCand}, {cCand, cNext}}
				for _, cd := range cdPairs {
					c, d := cd[0], cd[1]
					if selected.Test(c) || selected.Test(d) {
						continue
					}
					selected.Set(c)
					selected.Set(d)

					for _, eCand := range neighbors.Neighbors(c) {
						eNext := tour.Next(eCand)
						ePrev := tour.Prev(eCand)
						efPairs := [2][2]int{{ePrev, eCand}, {eCand, eNext}}
						for _, ef := range efPairs {
							e, f := ef[0], ef[1]
							if selected.Test(e) || selected.Test(f) {
								continue
							}
							selected.Set(e)
							selected.Set(f)

							ca, cb, cc, ccd, ce, cf := a, b, c, d, e, f
							if !tour.Between(c, a, e) {
								ca, cb, cc, ccd, ce, cf = a, b, e, f, c, d
							}

							// case 1: [(a,b),(c,d)] -> [(a,c),(b,d)]
							gain1 := dist.Dist(ca, cb) + dist.Dist(cc, ccd) - dist.Dist(ca, cc) - dist.Dist(cb, ccd)
							if gain1 > bestGain {
								bestGain = gain1
								bestPat = pat1(cb, cc)
								found = true
							}

							// case 2: [(c,d),(e,f)] -> [(c,e),(d,f)]
							gain2 := dist.Dist(cc, ccd) + dist.Dist(ce, cf) - dist.Dist(cc, ce) - dist.Dist(ccd, cf)
							if gain2 > bestGain {
								bestGain = gain2
								bestPat = pat1(ccd, ce)
								found = true
							}

							// case 4: [(a,b),(c,d),(e,f)] -> [(a,c),(b,e),(d,f)]
							gain4 := dist.Dist(ca, cb) + dist.Dist(cc, ccd) + dist.Dist(ce, cf) -
								dist.Dist(ca, cc) - dist.Dist(cb, ce) - dist.Dist(ccd, cf)
							if gain4 > bestGain {
								bestGain = gain4
								bestPat = pat2(cb, cc, ccd, ce)
								found = true
							}

							// case 6: [(a,b),(c,d),(e,f)] -> [(a,d),(e,c),(b,f)]
							gain6 := dist.Dist(ca, cb) + dist.Dist(cc, ccd) + dist.Dist(ce, cf) -
								dist.Dist(ca, ccd) - dist.Dist(ce, cc) - dist.Dist(cb, cf)
							if gain6 > bestGain {
								bestGain = gain6
								bestPat = pat2(cb, ce, ce, ccd)
								found = true
							}

							// case 7: [(a,b),(c,d),(e,f)] -> [(a,d),(e,b),(c,f)]
							gain7 := dist.Dist(ca, cb) + dist.Dist(cc, ccd) + dist.Dist(ce, cf) -
								dist.Dist(ca, ccd) - dist.Dist(ce, cb) - dist.Dist(cc, cf)
							if gain7 > bestGain {
								bestGain = gain7
								bestPat = pat3(cb, ce, ce, ccd, cc, cb)
								found = true
							}

							selected.Clear(e)
							selected.Clear(f)
						}
					}

					selected.Clear(c)
					selected.Clear(d)
				}
			}

			// a-e branch: candidates drawn from neighbors[a] directly
			// as (e, f), then neighbors[f] as (c, d).
			for _, eCand := range neighbors.Neighbors(a) {
				eNext := tour.Next(eCand)
				ePrev := tour.Prev(eCand)
				efPairs := [2][2]int{{ePrev, eCand}, {eCand, eNext}}
				for _, ef := range efPairs {
					e, f := ef[0], ef[1]
					if selected.Test(e) || selected.Test(f) {
						continue
					}
					selected.Set(e)
					selected.Set(f)

					for _, cCand := range neighbors.Neighbors(f) {
						cNext := tour.Next(cCand)
						cPrev := tour.Prev(cCand)
						cdPairs := [2][2]int{{cPrev, cCand}, {cCand, cNext}}
						for _, cd := range cdPairs {
							c, d := cd[0], cd[1]
							if selected.Test(c) || selected.Test(d) {
								continue
							}
							selected.Set(c)
							selected.Set(d)

							ca, cb, cc, ccd, ce, cf := a, b, c, d, e, f
							if !tour.Between(c, a, e) {
								ca, cb, cc, ccd, ce, cf = a, b, e, f, c, d
							}

							// case 3: [(a,b),(e,f)] -> [(a,e),(b,f)]
							gain3 := dist.Dist(ca, cb) + dist.Dist(ce, cf) - dist.Dist(ca, ce) - dist.Dist(cb, cf)
							if gain3 > bestGain {
								bestGain = gain3
								bestPat = pat1(cf, ca)
								found = true
							}

							// case 5: [(a,b),(c,d),(e,f)] -> [(a,e),(d,b),(c,f)]
							gain5 := dist.Dist(ca, cb) + dist.Dist(cc, ccd) + dist.Dist(ce, cf) -
								dist.Dist(ca, ce) - dist.Dist(ccd, cb) - dist.Dist(cc, cf)
							if gain5 > bestGain {
								bestGain = gain5
								bestPat = pat2(cb, ce, cc, cb)
								found = true
							}

							selected.Clear(c)
							selected.Clear(d)
						}
					}
					selected.Clear(e)
					selected.Clear(f)
				}
			}

			selected.Clear(a)
			selected.Clear(b)
		}

		if !found {
			active.Remove(a0)
			continue
		}

		for i := 0; i < bestPat.count; i++ {
			tour.Swap(bestPat.swaps[i][0], bestPat.swaps[i][1])
		}
		for i := 0; i < bestPat.count; i++ {
			active.Push(bestPat.swaps[i][0])
			active.Push(bestPat.swaps[i][1])
		}
		totalGain += bestGain
	}

	if opts.Debug {
		log.Printf("tsp: 3-opt finished, total gain %d", totalGain)
	}
	return totalGain
}
