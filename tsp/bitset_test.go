package tsp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitsetSetTestClear(t *testing.T) {
	b := NewBitset(5)
	require.Equal(t, 5, b.Len())
	for i := 0; i < 5; i++ {
		require.False(t, b.Test(i))
	}

	b.Set(2)
	require.True(t, b.Test(2))
	require.False(t, b.Test(3))

	b.Clear(2)
	require.False(t, b.Test(2))
}

func TestBitsetClearAllIsBulkAndO1(t *testing.T) {
	b := NewBitset(100)
	for i := 0; i < 100; i++ {
		b.Set(i)
	}
	b.ClearAll()
	for i := 0; i < 100; i++ {
		require.False(t, b.Test(i))
	}

	b.Set(7)
	require.True(t, b.Test(7))
	b.ClearAll()
	require.False(t, b.Test(7))
}

func TestBitsetClearThenSetAfterClearAll(t *testing.T) {
	b := NewBitset(3)
	b.Set(0)
	b.Clear(0)
	b.ClearAll()
	b.Set(0)
	require.True(t, b.Test(0))
}
