package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arlenix/tsplk/oracle"
	"github.com/arlenix/tsplk/tsp"
)

func fastSolveOptions() tsp.Options {
	opts := tsp.DefaultOptions()
	opts.TwoOpt.NeighborSize = 4
	opts.ThreeOpt.NeighborSize = 4
	opts.LKH.NeighborSize = 4
	opts.LKH.TimeMS = 80
	opts.DivideConquer.NoSplit = 2
	opts.DivideConquer.TimeMS = 60
	opts.DivideConquer.NeighborSize = 4
	opts.DivideConquer.FailCountThreshold = 1
	opts.FinalLKH.NeighborSize = 4
	opts.FinalLKH.TimeMS = 80
	opts.StallRounds = 1
	return opts
}

func TestSolveUncrossesFourCitySquare(t *testing.T) {
	dist := crossingSquare(t)
	opts := fastSolveOptions()
	opts.DivideConquer.NoSplit = 1

	tour, eval := tsp.Solve(dist, opts)

	require.Equal(t, int64(40), eval)
	require.Len(t, tour, 4)
}

func TestSolveReturnsValidPermutation(t *testing.T) {
	ys := []int64{0, 3, 1, 9, 2, 7, 4, 8, 5, 6}
	xs := []int64{0, 4, 8, 1, 6, 3, 9, 2, 7, 5}
	dist, err := oracle.NewEuclidDistance("solve10", ys, xs)
	require.NoError(t, err)

	tour, eval := tsp.Solve(dist, fastSolveOptions())

	require.Len(t, tour, 10)
	require.Equal(t, 0, tour[0])
	seen := make([]bool, 10)
	for _, c := range tour {
		require.False(t, seen[c])
		seen[c] = true
	}
	require.Greater(t, eval, int64(0))
}

func TestSolveOptionsValidationRejectsZeroStallRounds(t *testing.T) {
	opts := fastSolveOptions()
	opts.StallRounds = 0
	dist := crossingSquare(t)
	require.Panics(t, func() { tsp.Solve(dist, opts) })
}
