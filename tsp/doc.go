// Package tsp implements the core of a symmetric Euclidean TSP local-search
// solver: tour representations supporting amortised O(√n) segment reversal,
// a speculative swap log for cheap exploration/rollback, a neighbor table,
// and three local-search improvers (2-opt, 3-opt, and a Lin-Kernighan-style
// k-opt engine with iterative deepening and a double-bridge-flavoured kick),
// plus a divide-and-conquer parallel refiner and a top-level driver that
// chains all of the above until stagnation.
//
// # Tour representations
//
// [Tour] is the common interface (Next, Prev, Between, Swap, Len).
// [IndexedTour] additionally exposes a dense position space (IndexOf,
// IDOf). [ArrayTour] is the O(n)-per-swap reference implementation,
// the only representation with a native [IndexedTour] position space, and
// what [LKH] explores via.
// [TwoLevelTour] partitions the cyclic permutation into ≈√n segments with
// a lazily-flipped reversed flag per segment, bringing Swap down to
// amortised O(√n) — the difference that makes the rest of the pipeline
// viable past a few thousand cities; [TwoOpt] and [ThreeOpt] mutate it
// directly. [SpeculativeLog] wraps an [IndexedTour] and records pending
// swaps without mutating the backing tour, so the LKH engine can explore
// deep candidate chains and roll them back in O(1).
//
// # Improvers
//
// [TwoOpt] and [ThreeOpt] mutate a [TwoLevelTour] directly, driven by a
// don't-look-bit [IntSet] and a candidate [NeighborTable]. [LKH] explores
// via an [ArrayTour] snapshot wrapped in a [SpeculativeLog] and commits
// the winning swap chain back to the real [ArrayTour]. [DivideAndConquer]
// partitions the tour into contiguous segments and refines each
// independently (in parallel) via the LKH core, using a distance wrapper
// that turns the segment into an open path; [RefineUntilStall] repeats it
// with a widening kick schedule. [Solve] chains all of the above.
//
// # Configuration
//
// Each improver takes an Options struct constructed via its DefaultXOptions
// function and checked by its unexported validate method, the same
// pattern used throughout this package for every concern: zero value is
// not meaningful on its own.
//
// # Errors
//
// Sentinel errors (types.go) cover user-facing failures: malformed input,
// unreadable cache, unsupported configuration. Internal invariant
// violations (broken tour, segment-capacity overflow, double-remove from
// an IntSet) panic directly — these indicate a programming
// bug, not a recoverable condition, matching the package's "panic on
// violation for programming errors" contract.
package tsp
