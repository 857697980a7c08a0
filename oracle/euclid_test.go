package oracle_test

import (
	"testing"

	"github.com/arlenix/tsplk/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidDistance_Square(t *testing.T) {
	// Four cities on a 10-unit square: sides measure 10 and the diagonal
	// ceil(10·√2) = 15 (the square of scenario 4 in spec.md §8).
	ys := []int64{0, 0, 10, 10}
	xs := []int64{0, 10, 10, 0}

	d, err := oracle.NewEuclidDistance("square4", ys, xs)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Dimension())

	assert.Equal(t, int64(10), d.Dist(0, 1))
	assert.Equal(t, int64(10), d.Dist(1, 2))
	assert.Equal(t, int64(10), d.Dist(2, 3))
	assert.Equal(t, int64(10), d.Dist(3, 0))

	diag := d.Dist(0, 2)
	assert.Equal(t, int64(15), diag) // ceil(sqrt(200)) == 15
}

func TestEuclidDistance_Symmetric(t *testing.T) {
	ys := []int64{0, 3, 7}
	xs := []int64{0, 4, 1}
	d, err := oracle.NewEuclidDistance("tri", ys, xs)
	require.NoError(t, err)

	for i := 0; i < d.Dimension(); i++ {
		for j := 0; j < d.Dimension(); j++ {
			assert.Equal(t, d.Dist(i, j), d.Dist(j, i))
		}
		assert.Equal(t, int64(0), d.Dist(i, i))
	}
}

func TestEuclidDistance_RingEvaluator(t *testing.T) {
	// Cities on the integer ring (i, 0) for i in [0, n). Identity tour
	// length is exactly 2n-2 with unit spacing (scenario 5 in spec.md §8).
	const n = 10
	ys := make([]int64, n)
	xs := make([]int64, n)
	for i := 0; i < n; i++ {
		xs[i] = int64(i)
	}
	d, err := oracle.NewEuclidDistance("ring", ys, xs)
	require.NoError(t, err)

	var sum int64
	for i := 0; i < n-1; i++ {
		sum += d.Dist(i, i+1)
	}
	sum += d.Dist(n-1, 0)
	assert.Equal(t, int64(2*n-2), sum)
}

func TestNewEuclidDistance_MismatchedLengths(t *testing.T) {
	_, err := oracle.NewEuclidDistance("bad", []int64{0, 1}, []int64{0})
	assert.ErrorIs(t, err, oracle.ErrOutOfRange)
}

func TestNewEuclidDistance_Empty(t *testing.T) {
	_, err := oracle.NewEuclidDistance("empty", nil, nil)
	assert.ErrorIs(t, err, oracle.ErrEmptyInstance)
}
