package tsp

// Tour is a cyclic permutation of [0, n) supporting the operations every
// improver is written against. Both [ArrayTour] and [TwoLevelTour]
// implement it, as does [SpeculativeLog] wrapping an [IndexedTour] — improvers
// are polymorphic over this interface (§9 "polymorphic tour types").
//
// Invariants common to every implementation: every identifier in [0, n)
// appears exactly once; Next(Prev(x)) == x == Prev(Next(x)) for all x;
// walking Next n times from any start returns to that start.
type Tour interface {
	// Next returns the city following id along the current orientation.
	Next(id int) int

	// Prev returns the city preceding id along the current orientation.
	Prev(id int) int

	// Between reports whether traversing forward from `from` to `to`
	// visits id, inclusive of both endpoints. Between(id, from, from) is
	// true only when id == from.
	Between(id, from, to int) bool

	// Swap reverses the forward arc from `from` to `to`, inclusive.
	// Swap(x, x) is a no-op.
	Swap(from, to int)

	// Len returns n.
	Len() int
}

// IndexedTour is a Tour that additionally exposes a dense position space:
// IndexOf/IDOf are mutual inverses over [0, n). [SpeculativeLog] requires
// this of its backing tour so it can fold pending swaps as pure position
// arithmetic (§4.G) without mutating the backing representation.
//
// [ArrayTour] maintains this position space natively in O(1).
// [TwoLevelTour] deliberately does not: avoiding a dense per-city position
// array under swap is the entire point of the two-level tree, so the LKH
// engine explores via an ArrayTour snapshot instead (see [LKH]).
type IndexedTour interface {
	Tour

	// IndexOf returns the current position of city id.
	IndexOf(id int) int

	// IDOf returns the city currently at position idx.
	IDOf(idx int) int
}

// ArrayTour is the baseline tour representation: two parallel slices,
// content[i] = city at position i, indexOf[c] = position of city c. Swap
// walks inward from both ends, reversing the physical sub-sequence.
//
// Reference model: O(range) per Swap, used by tests as ground truth for
// [TwoLevelTour] and [SpeculativeLog].
type ArrayTour struct {
	content []int
	indexOf []int
}

// NewArrayTour builds the identity tour 0, 1, ..., n-1 over [0, n).
func NewArrayTour(n int) *ArrayTour {
	content := make([]int, n)
	indexOf := make([]int, n)
	for i := 0; i < n; i++ {
		content[i] = i
		indexOf[i] = i
	}
	return &ArrayTour{content: content, indexOf: indexOf}
}

// NewArrayTourFromTour builds an ArrayTour with the same cyclic order as
// src, starting the walk at city 0.
//
// Complexity: O(n).
func NewArrayTourFromTour(src Tour) *ArrayTour {
	n := src.Len()
	content := make([]int, n)
	indexOf := make([]int, n)
	id := 0
	for i := 0; i < n; i++ {
		content[i] = id
		indexOf[id] = i
		id = src.Next(id)
	}
	return &ArrayTour{content: content, indexOf: indexOf}
}

// Len returns n.
func (t *ArrayTour) Len() int {
	return len(t.content)
}

// Prev returns the city preceding id.
//
// Complexity: O(1).
func (t *ArrayTour) Prev(id int) int {
	idx := t.indexOf[id]
	if idx == 0 {
		return t.content[len(t.content)-1]
	}
	return t.content[idx-1]
}

// Next returns the city following id.
//
// Complexity: O(1).
func (t *ArrayTour) Next(id int) int {
	idx := t.indexOf[id]
	if idx == len(t.content)-1 {
		return t.content[0]
	}
	return t.content[idx+1]
}

// Between reports whether id lies on the forward arc from `from` to `to`.
//
// Complexity: O(1).
func (t *ArrayTour) Between(id, from, to int) bool {
	idIdx := t.indexOf[id]
	fromIdx := t.indexOf[from]
	toIdx := t.indexOf[to]
	if fromIdx <= toIdx {
		return fromIdx <= idIdx && idIdx <= toIdx
	}
	return idIdx <= toIdx || fromIdx <= idIdx
}

// Swap reverses the forward arc from `from` to `to`, inclusive.
//
// Complexity: O(range) where range is the arc length.
func (t *ArrayTour) Swap(from, to int) {
	n := len(t.content)
	fromIdx := t.indexOf[from]
	toIdx := t.indexOf[to]

	var rangeSize int
	if fromIdx <= toIdx {
		rangeSize = toIdx - fromIdx
	} else {
		rangeSize = toIdx + n - fromIdx
	}

	for i := 0; i < (rangeSize+1)/2; i++ {
		fromCity := t.content[fromIdx]
		toCity := t.content[toIdx]
		t.indexOf[fromCity], t.indexOf[toCity] = t.indexOf[toCity], t.indexOf[fromCity]
		t.content[fromIdx], t.content[toIdx] = t.content[toIdx], t.content[fromIdx]
		if fromIdx == n-1 {
			fromIdx = 0
		} else {
			fromIdx++
		}
		if toIdx == 0 {
			toIdx = n - 1
		} else {
			toIdx--
		}
	}
}

// CopyFrom overwrites t's contents with src's, in place. t and src must
// have the same length. Used to snapshot/restore the global-best tour
// across LKH's outer-loop kicks without reallocating.
func (t *ArrayTour) CopyFrom(src *ArrayTour) {
	copy(t.content, src.content)
	copy(t.indexOf, src.indexOf)
}

// IndexOf returns the current position of city id.
//
// Complexity: O(1).
func (t *ArrayTour) IndexOf(id int) int {
	return t.indexOf[id]
}

// IDOf returns the city at position idx.
//
// Complexity: O(1).
func (t *ArrayTour) IDOf(idx int) int {
	return t.content[idx]
}
