package tsp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arlenix/tsplk/oracle"
	"github.com/arlenix/tsplk/tsp"
)

func shortLKHOptions() tsp.LKHOptions {
	opts := tsp.DefaultLKHOptions()
	opts.TimeMS = 150
	opts.NeighborSize = 4
	return opts
}

func TestLKHUncrossesFourCitySquare(t *testing.T) {
	dist := crossingSquare(t)
	tour := tsp.NewArrayTour(4)
	neighbors := tsp.BuildNeighborTable(dist, 3)

	opts := shortLKHOptions()
	opts.NeighborSize = 3
	eval := tsp.LKH(dist, tour, neighbors, opts)

	require.Equal(t, int64(40), eval)
	require.Equal(t, int64(40), tsp.Evaluate(dist, tour))
}

func TestLKHNeverReturnsWorseThanStartingTour(t *testing.T) {
	ys := []int64{0, 3, 1, 9, 2, 7, 4, 8, 5, 6, 2, 9}
	xs := []int64{0, 4, 8, 1, 6, 3, 9, 2, 7, 5, 1, 8}
	dist, err := oracle.NewEuclidDistance("scatter12", ys, xs)
	require.NoError(t, err)

	tour := tsp.NewArrayTour(len(xs))
	before := tsp.Evaluate(dist, tour)

	neighbors := tsp.BuildNeighborTable(dist, 5)
	eval := tsp.LKH(dist, tour, neighbors, shortLKHOptions())

	require.LessOrEqual(t, eval, before)
	require.Equal(t, eval, tsp.Evaluate(dist, tour))
}

func TestLKHRespectsTimeBudget(t *testing.T) {
	ys := []int64{0, 3, 1, 9, 2, 7, 4, 8, 5, 6, 2, 9, 3, 7}
	xs := []int64{0, 4, 8, 1, 6, 3, 9, 2, 7, 5, 1, 8, 6, 2}
	dist, err := oracle.NewEuclidDistance("scatter14", ys, xs)
	require.NoError(t, err)

	tour := tsp.NewArrayTour(len(xs))
	neighbors := tsp.BuildNeighborTable(dist, 5)

	opts := shortLKHOptions()
	opts.TimeMS = 200

	start := time.Now()
	tsp.LKH(dist, tour, neighbors, opts)
	elapsed := time.Since(start)

	require.Less(t, elapsed, 2*time.Second)
}

func TestLKHLeavesAValidPermutation(t *testing.T) {
	ys := []int64{0, 3, 1, 9, 2, 7, 4, 8}
	xs := []int64{0, 4, 8, 1, 6, 3, 9, 2}
	dist, err := oracle.NewEuclidDistance("scatter8c", ys, xs)
	require.NoError(t, err)

	tour := tsp.NewArrayTour(len(xs))
	neighbors := tsp.BuildNeighborTable(dist, 4)
	tsp.LKH(dist, tour, neighbors, shortLKHOptions())

	seen := make([]bool, len(xs))
	id := 0
	for i := 0; i < len(xs); i++ {
		require.False(t, seen[id])
		seen[id] = true
		id = tour.Next(id)
	}
	require.Equal(t, 0, id)
}

func TestLKHOptionsValidationRejectsNonPositiveTimeBudget(t *testing.T) {
	opts := tsp.DefaultLKHOptions()
	opts.TimeMS = 0
	dist := crossingSquare(t)
	tour := tsp.NewArrayTour(4)
	neighbors := tsp.BuildNeighborTable(dist, 3)
	require.Panics(t, func() { tsp.LKH(dist, tour, neighbors, opts) })
}
