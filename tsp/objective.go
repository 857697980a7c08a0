package tsp

import "github.com/arlenix/tsplk/oracle"

// Evaluate sums the cost of every edge along one forward traversal of
// tour, closing the cycle back to the start (§3 "objective"). Grounded
// on the single-pass accumulation in the original evaluator.
//
// Complexity: O(n).
func Evaluate(dist oracle.Distance, tour Tour) int64 {
	n := tour.Len()
	if n == 0 {
		return 0
	}
	var total int64
	city := 0
	for i := 0; i < n; i++ {
		next := tour.Next(city)
		total += dist.Dist(city, next)
		city = next
	}
	return total
}

// ToSlice materializes tour as a forward-ordered slice of city IDs,
// starting at city 0. Useful for logging and for handing a finished tour
// to callers that want a plain []int rather than the Tour interface.
func ToSlice(tour Tour) []int {
	n := tour.Len()
	out := make([]int, n)
	city := 0
	for i := 0; i < n; i++ {
		out[i] = city
		city = tour.Next(city)
	}
	return out
}
