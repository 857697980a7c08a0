// Package oracle defines the distance-oracle abstraction consumed by every
// tour representation and improver in package tsp.
//
// What & Why:
//
//	A Distance reports the cost of traveling between two city identifiers
//	in [0, Dimension()). It is the sole contact point between "what a city
//	is" (coordinates, a precomputed matrix, a generated instance) and the
//	CORE solver, which only ever asks for dist(i, j). This mirrors the
//	teacher's matrix.Matrix abstraction in spirit (a pure, bounds-checked
//	accessor) but drops the O(n^2) dense backing store, which does not fit
//	in memory at the city counts this solver targets.
//
// Contracts:
//   - Dist must be a total, symmetric, non-negative function over
//     [0, Dimension())^2: Dist(i, i) == 0, Dist(i, j) == Dist(j, i).
//   - Implementations must be safe for concurrent read-only use: the
//     neighbor table is built with one goroutine per shard of rows, and
//     the divide-and-conquer refiner runs one LKH invocation per segment
//     concurrently, both assuming Dist never mutates shared state.
package oracle

import "errors"

// Sentinel errors for oracle construction and lookup.
var (
	// ErrOutOfRange indicates a city identifier outside [0, Dimension()),
	// or coordinate slices of different lengths at construction.
	ErrOutOfRange = errors.New("oracle: city id out of range")

	// ErrEmptyInstance indicates a zero-city instance was requested.
	ErrEmptyInstance = errors.New("oracle: instance has no cities")
)

// Distance is the abstract interface every tour/improver depends on.
//
// Complexity: Dist must run in O(1) (or O(1) amortised) - it sits in the
// hottest loop of every improver.
type Distance interface {
	// Dist returns the cost of traveling from city i to city j.
	Dist(i, j int) int64

	// Dimension returns the number of cities, n.
	Dimension() int

	// Name returns a stable identifier for the instance, used to derive
	// the neighbor-cache file name.
	Name() string
}
