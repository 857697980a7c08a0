package tsp

import "math"

// twoLevelCity locates a city within the two-level structure: which
// segment holds it, and at which physical offset inside that segment's
// buffer.
type twoLevelCity struct {
	segmentID int
	innerID   int
}

// TwoLevelTour partitions a cyclic permutation into segments of target
// size ≈√n, each with a lazily-flipped reversed flag, giving amortised
// O(√n) Swap instead of ArrayTour's O(n) (§3/§4.F). This is the
// representation 2-opt and 3-opt mutate directly; LKH explores via an
// [ArrayTour] snapshot wrapped in a [SpeculativeLog], and [Solve] rebuilds
// a fresh TwoLevelTour from that snapshot's result.
type TwoLevelTour struct {
	buffer      []*segment
	cityLoc     []twoLevelCity
	segmentList *segmentIDList

	targetSegSize int // ≈√n, used as the merge threshold
}

// NewTwoLevelTour builds a TwoLevelTour with the same cyclic order as
// src, starting the walk at city 0.
//
// Complexity: O(n).
func NewTwoLevelTour(src Tour) *TwoLevelTour {
	n := src.Len()
	cityLoc := make([]twoLevelCity, n)

	segSize := int(math.Ceil(math.Sqrt(float64(n))))
	if segSize < 1 {
		segSize = 1
	}
	segCapacity := segSize * 2
	if segCapacity < 2 {
		segCapacity = 2
	}
	// Per-segment buffer capacity: a multiple of the target size, giving
	// headroom for merges to temporarily grow a segment beyond the
	// target before the next split rebalances it. The original
	// implementation uses a similarly generous fixed constant (1000 for
	// instances with sqrt(n) around 300).
	bufCapacity := segSize*4 + 4

	segmentList := newSegmentIDList(segCapacity)
	buffer := make([]*segment, segCapacity)
	for i := range buffer {
		buffer[i] = newSegment(bufCapacity)
	}

	node := 0
	for iter := 0; iter < segSize; iter++ {
		segmentID := segmentList.acquireFreeSegmentID()
		size := n*(iter+1)/segSize - n*iter/segSize
		for inner := 0; inner < size; inner++ {
			buffer[segmentID].push(node)
			cityLoc[node] = twoLevelCity{segmentID: segmentID, innerID: inner}
			node = src.Next(node)
		}
		segmentList.push(segmentID)
	}

	return &TwoLevelTour{
		buffer:        buffer,
		cityLoc:       cityLoc,
		segmentList:   segmentList,
		targetSegSize: segSize,
	}
}

// Len returns n.
func (t *TwoLevelTour) Len() int {
	return len(t.cityLoc)
}

// cmp orders two cities by their logical (segment-list position, inner
// index) pair. The inner index of a city in a reversed segment is counted
// from the buffer's back, so the order matches the order Next walks in
// (§4.F caveat).
func (t *TwoLevelTour) cmp(id1, id2 int) int {
	loc1 := t.cityLoc[id1]
	loc2 := t.cityLoc[id2]
	pos1 := t.segmentList.segmentPosition(loc1.segmentID)
	pos2 := t.segmentList.segmentPosition(loc2.segmentID)
	if pos1 != pos2 {
		if pos1 < pos2 {
			return -1
		}
		return 1
	}
	inner1, inner2 := loc1.innerID, loc2.innerID
	if seg := t.buffer[loc1.segmentID]; seg.reversed {
		inner1 = seg.length() - 1 - inner1
	}
	if seg := t.buffer[loc2.segmentID]; seg.reversed {
		inner2 = seg.length() - 1 - inner2
	}
	if inner1 != inner2 {
		if inner1 < inner2 {
			return -1
		}
		return 1
	}
	return 0
}

// Prev returns the city preceding id.
func (t *TwoLevelTour) Prev(id int) int {
	loc := t.cityLoc[id]
	seg := t.buffer[loc.segmentID]
	if seg.reversed {
		if loc.innerID == seg.length()-1 {
			return t.buffer[t.segmentList.prev(loc.segmentID)].back()
		}
		return seg.at(loc.innerID + 1)
	}
	if loc.innerID == 0 {
		return t.buffer[t.segmentList.prev(loc.segmentID)].back()
	}
	return seg.at(loc.innerID - 1)
}

// Next returns the city following id.
func (t *TwoLevelTour) Next(id int) int {
	loc := t.cityLoc[id]
	seg := t.buffer[loc.segmentID]
	if seg.reversed {
		if loc.innerID == 0 {
			return t.buffer[t.segmentList.next(loc.segmentID)].front()
		}
		return seg.at(loc.innerID - 1)
	}
	if loc.innerID == seg.length()-1 {
		return t.buffer[t.segmentList.next(loc.segmentID)].front()
	}
	return seg.at(loc.innerID + 1)
}

// Between reports whether id lies on the forward arc from `from` to `to`.
func (t *TwoLevelTour) Between(id, from, to int) bool {
	switch c := t.cmp(from, to); {
	case c < 0:
		return t.cmp(from, id) <= 0 && t.cmp(id, to) <= 0
	case c == 0:
		return id == from
	default:
		return t.cmp(from, id) <= 0 || t.cmp(id, to) <= 0
	}
}

// split divides the segment containing id into two: the physical front
// portion (up to but excluding id) stays in the original segment, and the
// physical back portion (from id onward) moves to a freshly-acquired
// segment. Returns the (front, back) segment IDs in logical order,
// accounting for the reversed flag (§4.F).
func (t *TwoLevelTour) split(id int) (int, int) {
	loc := t.cityLoc[id]
	segmentID := loc.segmentID
	newSegmentID := t.segmentList.acquireFreeSegmentID()

	frontSize := loc.innerID
	allSize := t.buffer[segmentID].length()
	backSize := allSize - frontSize

	t.buffer[newSegmentID].reversed = t.buffer[segmentID].reversed
	for idx := frontSize; idx < allSize; idx++ {
		city := t.buffer[segmentID].at(idx)
		t.buffer[newSegmentID].setAt(idx-frontSize, city)
		t.cityLoc[city] = twoLevelCity{segmentID: newSegmentID, innerID: idx - frontSize}
	}
	t.buffer[segmentID].used = frontSize
	t.buffer[newSegmentID].used = backSize

	if t.buffer[segmentID].reversed {
		// The buffer's physical back half is the sequence's logical
		// front half, so the new segment comes first.
		t.segmentList.insertPrev(newSegmentID, segmentID)
		return newSegmentID, segmentID
	}
	t.segmentList.insertNext(newSegmentID, segmentID)
	return segmentID, newSegmentID
}

// dissolveReverse physically reverses a reversed segment's buffer so its
// reversed flag can be cleared while preserving logical order.
func (t *TwoLevelTour) dissolveReverse(segmentID int) {
	seg := t.buffer[segmentID]
	if !seg.reversed {
		panic("tsp: dissolveReverse on non-reversed segment")
	}
	seg.reversed = false

	length := seg.length()
	for i := 0; i < length/2; i++ {
		seg.swapAt(i, length-1-i)
		id1 := seg.at(i)
		id2 := seg.at(length - 1 - i)
		t.cityLoc[id1] = twoLevelCity{segmentID: segmentID, innerID: i}
		t.cityLoc[id2] = twoLevelCity{segmentID: segmentID, innerID: length - 1 - i}
	}
}

// mergeRight merges segmentID with its successor in the active order,
// reconciling their reversed flags first if they differ, and returns the
// surviving segment ID.
func (t *TwoLevelTour) mergeRight(segmentID int) int {
	nextSegmentID := t.segmentList.next(segmentID)

	if t.buffer[segmentID].reversed != t.buffer[nextSegmentID].reversed {
		if t.buffer[segmentID].reversed {
			t.dissolveReverse(segmentID)
		} else {
			t.dissolveReverse(nextSegmentID)
		}
	}

	if t.buffer[segmentID].reversed {
		// Both reversed: pack the current segment's cities onto the
		// front of the next segment's buffer.
		offset := t.buffer[nextSegmentID].length()
		for i := 0; i < t.buffer[segmentID].length(); i++ {
			city := t.buffer[segmentID].at(i)
			t.buffer[nextSegmentID].setAt(i+offset, city)
			t.cityLoc[city] = twoLevelCity{segmentID: nextSegmentID, innerID: i + offset}
		}
		t.buffer[nextSegmentID].used = offset + t.buffer[segmentID].length()
		t.segmentList.remove(segmentID)
		return nextSegmentID
	}

	offset := t.buffer[segmentID].length()
	for i := 0; i < t.buffer[nextSegmentID].length(); i++ {
		city := t.buffer[nextSegmentID].at(i)
		t.buffer[segmentID].setAt(i+offset, city)
		t.cityLoc[city] = twoLevelCity{segmentID: segmentID, innerID: i + offset}
	}
	t.buffer[segmentID].used = offset + t.buffer[nextSegmentID].length()
	t.segmentList.remove(nextSegmentID)
	return segmentID
}

// swapInSegment reverses the arc from `from` to `to` when both cities
// share a single segment.
func (t *TwoLevelTour) swapInSegment(from, to int) {
	fromLoc := t.cityLoc[from]
	toLoc := t.cityLoc[to]
	if fromLoc.segmentID != toLoc.segmentID {
		panic("tsp: swapInSegment across segments")
	}
	segmentID := fromLoc.segmentID
	seg := t.buffer[segmentID]

	var fromIdx, toIdx int
	if seg.reversed {
		fromIdx, toIdx = toLoc.innerID, fromLoc.innerID
	} else {
		fromIdx, toIdx = fromLoc.innerID, toLoc.innerID
	}
	if fromIdx > toIdx {
		panic("tsp: swapInSegment non-contiguous range")
	}

	length := toIdx + 1 - fromIdx
	for i := 0; i < length/2; i++ {
		seg.swapAt(fromIdx, toIdx)
		id1 := seg.at(fromIdx)
		id2 := seg.at(toIdx)
		t.cityLoc[id1] = twoLevelCity{segmentID: segmentID, innerID: fromIdx}
		t.cityLoc[id2] = twoLevelCity{segmentID: segmentID, innerID: toIdx}
		fromIdx++
		toIdx--
	}
}

// swapAligned reverses a whole-segment range: every segment from
// fromSegmentID to toSegmentID (inclusive, in active order) has its
// reversed flag flipped, and the active order over that range is
// reversed.
func (t *TwoLevelTour) swapAligned(fromSegmentID, toSegmentID int) {
	segmentID := fromSegmentID
	for segmentID != toSegmentID {
		t.buffer[segmentID].reversed = !t.buffer[segmentID].reversed
		segmentID = t.segmentList.next(segmentID)
	}
	t.buffer[toSegmentID].reversed = !t.buffer[toSegmentID].reversed

	t.segmentList.swap(fromSegmentID, toSegmentID)
}

// Swap reverses the forward arc from `from` to `to`, inclusive (§4.F).
//
// Complexity: amortised O(√n).
func (t *TwoLevelTour) Swap(from, to int) {
	if from == to {
		return
	}
	fromSegment := t.cityLoc[from].segmentID
	toSegment := t.cityLoc[to].segmentID

	if fromSegment == toSegment && t.cmp(from, to) < 0 {
		t.swapInSegment(from, to)
		return
	}

	if from != t.buffer[fromSegment].front() {
		splitAt := from
		if t.buffer[fromSegment].reversed {
			splitAt = t.Prev(from)
		}
		_, fromSegment = t.split(splitAt)
	}
	toSegment = t.cityLoc[to].segmentID
	if to != t.buffer[toSegment].back() {
		splitAt := t.Next(to)
		if t.buffer[toSegment].reversed {
			splitAt = to
		}
		toSegment, _ = t.split(splitAt)
	}

	t.swapAligned(fromSegment, toSegment)

	mergeThreshold := t.targetSegSize / 2
	for _, segmentID := range [2]int{fromSegment, toSegment} {
		if t.buffer[segmentID].length() >= mergeThreshold {
			continue
		}
		prev := t.segmentList.prev(segmentID)
		prevLen := t.buffer[prev].length()
		next := t.segmentList.next(segmentID)
		nextLen := t.buffer[next].length()
		if prevLen < nextLen {
			if prevLen < mergeThreshold {
				t.mergeRight(prev)
			}
		} else if nextLen < mergeThreshold {
			t.mergeRight(segmentID)
		}
	}
}
