package tsp

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/arlenix/tsplk/oracle"
)

// NeighborTable holds, for each city, the k nearest other cities in
// ascending-distance order (§3/§4.D).
type NeighborTable struct {
	rows [][]int
	k    int
}

// BuildNeighborTable constructs a NeighborTable for dist with neighborSize
// neighbors per city. Rows are computed in parallel: each city
// independently sorts its distance list and takes the top-k, with no
// shared mutable state, matching the concurrency model in §5 (distance
// oracle is read-only and must be safe for concurrent Dist calls).
//
// Complexity: O(n² log n) time (dominated by the per-row sort), O(n·k)
// space, parallelised across runtime.NumCPU() row-shards.
func BuildNeighborTable(dist oracle.Distance, neighborSize int) *NeighborTable {
	n := dist.Dimension()
	rows := make([][]int, n)

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				rows[i] = nearestRow(dist, i, n, neighborSize)
			}
		}(lo, hi)
	}
	wg.Wait()

	return &NeighborTable{rows: rows, k: neighborSize}
}

// nearestRow computes the neighborSize nearest cities to i, ascending by
// distance, excluding i itself.
func nearestRow(dist oracle.Distance, i, n, neighborSize int) []int {
	type candidate struct {
		d   int64
		idx int
	}
	cands := make([]candidate, 0, n-1)
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		cands = append(cands, candidate{d: dist.Dist(i, j), idx: j})
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].d != cands[b].d {
			return cands[a].d < cands[b].d
		}
		return cands[a].idx < cands[b].idx
	})
	k := neighborSize
	if k > len(cands) {
		k = len(cands)
	}
	row := make([]int, k)
	for idx := 0; idx < k; idx++ {
		row[idx] = cands[idx].idx
	}
	return row
}

// Neighbors returns the neighbor list of city id, ascending by distance.
// The returned slice must not be mutated by the caller.
func (t *NeighborTable) Neighbors(id int) []int {
	return t.rows[id]
}

// Dimension returns n.
func (t *NeighborTable) Dimension() int {
	return len(t.rows)
}

// K returns the configured neighbor-list size (the actual per-row length
// may be smaller for tiny instances).
func (t *NeighborTable) K() int {
	return t.k
}

// SaveNeighborCache writes t to path in the §6 text format: a header line
// "n k", followed by n lines of k space-separated city IDs.
//
// Per §7, a write failure is a degraded condition, not fatal: callers
// should log a warning and continue rather than abort the run.
func SaveNeighborCache(t *NeighborTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "%d %d\n", len(t.rows), t.k); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	for _, row := range t.rows {
		parts := make([]string, len(row))
		for i, v := range row {
			parts[i] = strconv.Itoa(v)
		}
		if _, err := w.WriteString(strings.Join(parts, " ") + "\n"); err != nil {
			return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
		}
	}
	return w.Flush()
}

// LoadNeighborCache reads a NeighborTable previously written by
// SaveNeighborCache.
func LoadNeighborCache(path string) (*NeighborTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 4*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: empty cache file", ErrCacheUnavailable)
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, fmt.Errorf("%w: malformed header", ErrCacheUnavailable)
	}
	n, err1 := strconv.Atoi(header[0])
	k, err2 := strconv.Atoi(header[1])
	if err1 != nil || err2 != nil || n < 0 || k < 0 {
		return nil, fmt.Errorf("%w: malformed header", ErrCacheUnavailable)
	}

	rows := make([][]int, n)
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: truncated cache file", ErrCacheUnavailable)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != k {
			return nil, fmt.Errorf("%w: row length mismatch", ErrCacheUnavailable)
		}
		row := make([]int, k)
		for j, tok := range fields {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: non-integer neighbor id", ErrCacheUnavailable)
			}
			row[j] = v
		}
		rows[i] = row
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	return &NeighborTable{rows: rows, k: k}, nil
}

// LoadOrBuildNeighborTable loads the cache at opts.CacheFilepath if
// opts.UseNeighborCache is set and the file is readable; otherwise it
// builds a fresh table and, if caching is enabled, saves it. Cache
// problems (missing or corrupt file, unwritable path) degrade to a
// rebuild with a stderr warning rather than aborting the run (§7).
func LoadOrBuildNeighborTable(dist oracle.Distance, neighborSize int, opts CacheOptions) *NeighborTable {
	if opts.UseNeighborCache {
		if table, err := LoadNeighborCache(opts.CacheFilepath); err == nil {
			if opts.Debug {
				log.Printf("tsp: loaded neighbor cache %s", opts.CacheFilepath)
			}
			return table
		} else {
			log.Printf("tsp: neighbor cache miss (%v), rebuilding", err)
		}
	}

	table := BuildNeighborTable(dist, neighborSize)

	if opts.UseNeighborCache {
		if err := SaveNeighborCache(table, opts.CacheFilepath); err != nil {
			log.Printf("tsp: warning: failed to write neighbor cache: %v", err)
		}
	}
	return table
}
