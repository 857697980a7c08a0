// Package tsplib parses the subset of the TSPLIB instance format this
// solver needs: a DIMENSION header and a NODE_COORD_SECTION of integer
// (y, x) coordinates. Parsing is deliberately tolerant (first key match per
// line, single-space-separated numbers) per spec.md §6 - TSPLIB parsing is
// an external collaborator to the CORE, specified only at the interface
// level.
package tsplib

import "errors"

// Sentinel errors, mirroring the teacher's tsp/types.go convention of one
// var block of errors.New sentinels per package, never fmt.Errorf where a
// sentinel suffices.
var (
	// ErrInputFormat indicates the file does not look like a TSPLIB
	// instance (missing DIMENSION, missing NODE_COORD_SECTION, or a
	// malformed coordinate line).
	ErrInputFormat = errors.New("tsplib: malformed input file")

	// ErrIO wraps the underlying filesystem failure (missing file,
	// permission denied, ...).
	ErrIO = errors.New("tsplib: io failure")
)

// Instance is the parsed result: a name, a dimension, and parallel y/x
// coordinate slices suitable for oracle.NewEuclidDistance.
type Instance struct {
	Name string
	N    int
	Ys   []int64
	Xs   []int64
}
