package tsp

// swapOp records one pending speculative swap, in both city space (for
// eventual commit to the backing tour) and position space (for folding
// queries).
type swapOp struct {
	fromID, toID       int
	fromIndex, toIndex int
}

// SpeculativeLog wraps an [IndexedTour] and records pending swaps without
// mutating it. Queries (Next/Prev/Between) recompute on the fly by
// folding the pending swaps over position space; Undo pops the most
// recent one in O(1); ToSwapList returns the recorded city-space pairs in
// insertion order, ready to commit to the backing tour (§4.G).
//
// Rationale: the LKH inner search evaluates deep chains of candidate
// reversals and must roll them back cheaply without touching the
// (expensive, O(range)-per-swap) real tour. Recording operations instead of
// mutated state gives O(depth) per query and O(1) undo.
type SpeculativeLog struct {
	backing IndexedTour
	ops     []swapOp
}

// NewSpeculativeLog wraps backing with an empty pending-swap log.
func NewSpeculativeLog(backing IndexedTour) *SpeculativeLog {
	return &SpeculativeLog{backing: backing}
}

// Len returns n.
func (l *SpeculativeLog) Len() int {
	return l.backing.Len()
}

// CopyFrom replaces l's pending ops with a copy of src's ops. Both logs
// must wrap the same backing tour. Used by the LKH inner search to
// snapshot the best-found flip chain found so far during iterative
// deepening, without aliasing src's backing slice.
func (l *SpeculativeLog) CopyFrom(src *SpeculativeLog) {
	l.ops = append(l.ops[:0], src.ops...)
}

// Undo discards the most recently recorded swap.
//
// Panics if no swap is pending — callers are expected to only Undo after
// a matching Swap, per the LKH inner search's push/recurse/pop discipline.
func (l *SpeculativeLog) Undo() {
	if len(l.ops) == 0 {
		panic("tsp: SpeculativeLog.Undo with no pending swap")
	}
	l.ops = l.ops[:len(l.ops)-1]
}

// Swap records a pending reversal of the arc from `from` to `to`
// (inclusive), without touching the backing tour.
func (l *SpeculativeLog) Swap(from, to int) {
	fromIdx := l.IndexOf(from)
	toIdx := l.IndexOf(to)
	l.ops = append(l.ops, swapOp{fromID: from, toID: to, fromIndex: fromIdx, toIndex: toIdx})
}

// reflect applies one recorded op's position transform: if pos lies on
// the cyclic range [f, t], it maps to the mirrored position t+f-pos
// (wrapping through backing.Len()); otherwise pos is unchanged.
func (l *SpeculativeLog) reflect(pos, f, t int) int {
	if !inCyclicRange(pos, f, t) {
		return pos
	}
	if f <= t {
		return t + f - pos
	}
	n := l.backing.Len()
	return ((f+n+t-pos)%n + n) % n
}

func inCyclicRange(pos, f, t int) bool {
	if f <= t {
		return f <= pos && pos <= t
	}
	return f <= pos || pos <= t
}

// IndexOf folds every recorded op, in insertion order, over the backing
// tour's position of id.
//
// Complexity: O(backing.IndexOf) + O(depth), where depth is the number of
// pending swaps. Since the LKH inner search bounds depth by max_depth
// (≤6 by default), this is effectively constant (§9).
func (l *SpeculativeLog) IndexOf(id int) int {
	idx := l.backing.IndexOf(id)
	for _, op := range l.ops {
		idx = l.reflect(idx, op.fromIndex, op.toIndex)
	}
	return idx
}

// IDOf inverts IndexOf by folding the recorded ops in reverse order.
//
// Complexity: O(depth) + O(backing.IDOf).
func (l *SpeculativeLog) IDOf(idx int) int {
	for i := len(l.ops) - 1; i >= 0; i-- {
		op := l.ops[i]
		idx = l.reflect(idx, op.fromIndex, op.toIndex)
	}
	return l.backing.IDOf(idx)
}

// Next returns the city following id under the pending swaps.
func (l *SpeculativeLog) Next(id int) int {
	idx := l.IndexOf(id)
	n := l.Len()
	if idx == n-1 {
		return l.IDOf(0)
	}
	return l.IDOf(idx + 1)
}

// Prev returns the city preceding id under the pending swaps.
func (l *SpeculativeLog) Prev(id int) int {
	idx := l.IndexOf(id)
	if idx == 0 {
		return l.IDOf(l.Len() - 1)
	}
	return l.IDOf(idx - 1)
}

// Between reports whether id lies on the forward arc from `from` to `to`
// under the pending swaps.
func (l *SpeculativeLog) Between(id, from, to int) bool {
	return inCyclicRange(l.IndexOf(id), l.IndexOf(from), l.IndexOf(to))
}

// ToSwapList returns the recorded city-space (from, to) pairs in
// insertion order. Committing them, in order, to the backing tour
// reproduces the same net effect as the speculative log.
func (l *SpeculativeLog) ToSwapList() [][2]int {
	out := make([][2]int, len(l.ops))
	for i, op := range l.ops {
		out[i] = [2]int{op.fromID, op.toID}
	}
	return out
}
