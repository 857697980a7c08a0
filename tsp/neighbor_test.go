package tsp_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arlenix/tsplk/oracle"
	"github.com/arlenix/tsplk/tsp"
)

// squareDistance is a 4-city square of side 10, matching the layout used
// by the original implementation's neighbor-table tests.
func squareDistance(t *testing.T) oracle.Distance {
	t.Helper()
	ys := []int64{0, 0, 10, 10}
	xs := []int64{0, 10, 10, 0}
	dist, err := oracle.NewEuclidDistance("square", ys, xs)
	require.NoError(t, err)
	return dist
}

// Concrete scenario 4 (spec.md §8): 4-city square of side 10: each city's
// nearest-2 list must be the two axis-adjacent cities.
func TestBuildNeighborTableSquareNearestTwo(t *testing.T) {
	dist := squareDistance(t)
	table := tsp.BuildNeighborTable(dist, 2)

	require.Equal(t, 4, table.Dimension())
	require.Equal(t, 2, table.K())

	expected := map[int][]int{
		0: {1, 3},
		1: {0, 2},
		2: {1, 3},
		3: {0, 2},
	}
	for city, want := range expected {
		got := table.Neighbors(city)
		require.Len(t, got, 2)
		require.ElementsMatch(t, want, got, "city %d", city)
	}
}

func TestBuildNeighborTableExcludesSelf(t *testing.T) {
	dist := squareDistance(t)
	table := tsp.BuildNeighborTable(dist, 3)
	for city := 0; city < 4; city++ {
		require.NotContains(t, table.Neighbors(city), city)
	}
}

// Neighbor cache round-trip (spec.md §8): write then read yields an
// identical table.
func TestNeighborCacheRoundTrip(t *testing.T) {
	dist := squareDistance(t)
	table := tsp.BuildNeighborTable(dist, 2)

	path := filepath.Join(t.TempDir(), "square.cache")
	require.NoError(t, tsp.SaveNeighborCache(table, path))

	loaded, err := tsp.LoadNeighborCache(path)
	require.NoError(t, err)
	require.Equal(t, table.Dimension(), loaded.Dimension())
	require.Equal(t, table.K(), loaded.K())
	for city := 0; city < table.Dimension(); city++ {
		require.Equal(t, table.Neighbors(city), loaded.Neighbors(city))
	}
}

func TestLoadNeighborCacheMissingFileErrors(t *testing.T) {
	_, err := tsp.LoadNeighborCache(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestLoadNeighborCacheMalformedHeaderErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cache")
	require.NoError(t, os.WriteFile(path, []byte("not-a-header\n"), 0o644))
	_, err := tsp.LoadNeighborCache(path)
	require.Error(t, err)
}

// LoadOrBuildNeighborTable degrades to a rebuild on a cache miss rather
// than failing the run (§7).
func TestLoadOrBuildNeighborTableDegradesOnMissingCache(t *testing.T) {
	dist := squareDistance(t)
	opts := tsp.DefaultCacheOptions()
	opts.UseNeighborCache = true
	opts.CacheFilepath = filepath.Join(t.TempDir(), "missing.cache")

	table := tsp.LoadOrBuildNeighborTable(dist, 2, opts)
	require.Equal(t, 4, table.Dimension())

	_, err := os.Stat(opts.CacheFilepath)
	require.NoError(t, err, "a fresh build with caching enabled should persist the cache")
}

func TestLoadOrBuildNeighborTableUsesExistingCache(t *testing.T) {
	dist := squareDistance(t)
	path := filepath.Join(t.TempDir(), "square.cache")

	built := tsp.BuildNeighborTable(dist, 2)
	require.NoError(t, tsp.SaveNeighborCache(built, path))

	opts := tsp.DefaultCacheOptions()
	opts.UseNeighborCache = true
	opts.CacheFilepath = path

	table := tsp.LoadOrBuildNeighborTable(dist, 2, opts)
	for city := 0; city < 4; city++ {
		require.Equal(t, built.Neighbors(city), table.Neighbors(city))
	}
}
