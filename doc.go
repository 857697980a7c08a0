// Package tsplk is a Euclidean Traveling Salesman Problem solver aimed at
// large instances (tens to hundreds of thousands of cities).
//
// It chains three local-search improvers over a single tour representation:
//
//   - 2-opt and 3-opt (package tsp): best/first-improvement local search
//     over candidate neighbor lists with don't-look bits.
//   - Lin-Kernighan-style k-opt (package tsp): sequential edge exchange via
//     iterative deepening, a speculative swap log for cheap backtracking,
//     and a double-bridge-flavoured kick to escape local minima.
//
// The tour itself is held in a two-level tree (package tsp,
// TwoLevelTour), giving O(sqrt n) amortised segment reversal instead of the
// O(n) reversal an array-backed tour would need - the difference that makes
// the rest of the pipeline viable past a few thousand cities.
//
// Subpackages:
//
//	oracle/  - the distance-oracle abstraction and its Euclidean implementation
//	tsplib/  - TSPLIB instance file parsing
//	tsp/     - tours, the speculative swap log, neighbor table, improvers,
//	           divide-and-conquer refiner, objective evaluator, and driver
//	cmd/tsplk/ - the CLI entry point
//
//	go get github.com/arlenix/tsplk
package tsplk
