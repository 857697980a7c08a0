// Package tsp - validation utilities shared across the driver and the
// individual improvers' Options structs.
package tsp

import "github.com/arlenix/tsplk/oracle"

// validateDistance checks the one precondition every improver and the
// driver share: a non-nil oracle describing at least one city.
//
// Complexity: O(1).
func validateDistance(dist oracle.Distance) error {
	if dist == nil || dist.Dimension() < 1 {
		return ErrDimensionMismatch
	}
	return nil
}
