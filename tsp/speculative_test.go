package tsp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpeculativeLogSingleSwapMatchesArrayTour(t *testing.T) {
	const n = 50
	backing := NewArrayTour(n)
	log := NewSpeculativeLog(backing)

	ref := NewArrayTour(n)
	ref.Swap(10, 30)
	log.Swap(10, 30)

	assertToursAgree(t, ref, log, n)
}

// Matches the original's speculative-log test pattern: apply a chain of
// swaps to the log only, check agreement against an array tour that has
// the same swaps applied for real, then Undo back to empty and check the
// log again agrees with the untouched backing tour.
func TestSpeculativeLogChainAgreesThenUndoesToBacking(t *testing.T) {
	const n = 60
	backing := NewArrayTour(n)
	log := NewSpeculativeLog(backing)

	ref := NewArrayTour(n)
	ops := [][2]int{{5, 40}, {12, 33}, {1, 58}}

	for _, op := range ops {
		ref.Swap(op[0], op[1])
		log.Swap(op[0], op[1])
		assertToursAgree(t, ref, log, n)
	}

	for range ops {
		log.Undo()
	}
	assertToursAgree(t, backing, log, n)
}

func TestSpeculativeLogUndoWithNoPendingSwapPanics(t *testing.T) {
	log := NewSpeculativeLog(NewArrayTour(5))
	require.Panics(t, func() { log.Undo() })
}

func TestSpeculativeLogRandomSequenceAgreesWithArray(t *testing.T) {
	const n = 80
	const iterations = 500

	rng := rand.New(rand.NewSource(7))
	backing := NewArrayTour(n)
	ref := NewArrayTour(n)
	log := NewSpeculativeLog(backing)

	for i := 0; i < iterations; i++ {
		from := rng.Intn(n)
		to := rng.Intn(n)
		ref.Swap(from, to)
		log.Swap(from, to)
		assertToursAgree(t, ref, log, n)
	}
}

func TestSpeculativeLogToSwapListPreservesInsertionOrder(t *testing.T) {
	log := NewSpeculativeLog(NewArrayTour(20))
	log.Swap(1, 5)
	log.Swap(8, 12)
	require.Equal(t, [][2]int{{1, 5}, {8, 12}}, log.ToSwapList())
}

func TestSpeculativeLogCopyFromSnapshotsIndependently(t *testing.T) {
	backing := NewArrayTour(30)
	src := NewSpeculativeLog(backing)
	src.Swap(2, 9)
	src.Swap(14, 20)

	dst := NewSpeculativeLog(backing)
	dst.CopyFrom(src)
	require.Equal(t, src.ToSwapList(), dst.ToSwapList())

	// Mutating src further must not affect dst's already-copied snapshot.
	src.Swap(3, 4)
	require.NotEqual(t, src.ToSwapList(), dst.ToSwapList())
	require.Len(t, dst.ToSwapList(), 2)
}
