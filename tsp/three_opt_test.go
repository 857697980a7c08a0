package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arlenix/tsplk/oracle"
	"github.com/arlenix/tsplk/tsp"
)

func TestThreeOptUncrossesFourCitySquare(t *testing.T) {
	dist := crossingSquare(t)
	tour := tsp.NewTwoLevelTour(tsp.NewArrayTour(4))
	before := tsp.Evaluate(dist, tour)

	neighbors := tsp.BuildNeighborTable(dist, 3)
	gain := tsp.ThreeOpt(dist, tour, neighbors, tsp.DefaultThreeOptOptions())

	after := tsp.Evaluate(dist, tour)
	require.Equal(t, before-after, gain)
	require.Equal(t, int64(40), after)
}

func TestThreeOptNeverIncreasesObjective(t *testing.T) {
	ys := []int64{0, 3, 1, 9, 2, 7, 4, 8, 5, 6}
	xs := []int64{0, 4, 8, 1, 6, 3, 9, 2, 7, 5}
	dist, err := oracle.NewEuclidDistance("scatter10", ys, xs)
	require.NoError(t, err)

	tour := tsp.NewTwoLevelTour(tsp.NewArrayTour(len(xs)))
	before := tsp.Evaluate(dist, tour)

	neighbors := tsp.BuildNeighborTable(dist, 5)
	tsp.ThreeOpt(dist, tour, neighbors, tsp.DefaultThreeOptOptions())

	after := tsp.Evaluate(dist, tour)
	require.LessOrEqual(t, after, before)
}

func TestThreeOptLeavesAValidPermutation(t *testing.T) {
	ys := []int64{0, 3, 1, 9, 2, 7, 4, 8, 5, 6}
	xs := []int64{0, 4, 8, 1, 6, 3, 9, 2, 7, 5}
	dist, err := oracle.NewEuclidDistance("scatter10b", ys, xs)
	require.NoError(t, err)

	tour := tsp.NewTwoLevelTour(tsp.NewArrayTour(len(xs)))
	neighbors := tsp.BuildNeighborTable(dist, 5)
	tsp.ThreeOpt(dist, tour, neighbors, tsp.DefaultThreeOptOptions())

	seen := make([]bool, len(xs))
	id := 0
	for i := 0; i < len(xs); i++ {
		require.False(t, seen[id])
		seen[id] = true
		id = tour.Next(id)
	}
	require.Equal(t, 0, id)
}

func TestThreeOptAfterTwoOptFindsNoFurtherGainOnSquare(t *testing.T) {
	dist := crossingSquare(t)
	tour := tsp.NewTwoLevelTour(tsp.NewArrayTour(4))
	neighbors := tsp.BuildNeighborTable(dist, 3)

	tsp.TwoOpt(dist, tour, neighbors, tsp.DefaultTwoOptOptions())
	gain := tsp.ThreeOpt(dist, tour, neighbors, tsp.DefaultThreeOptOptions())
	require.Equal(t, int64(0), gain)
}
