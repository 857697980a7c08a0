package tsp

// segmentIDNone marks the absence of a segment-list position in
// segmentIDList's inverse index.
const segmentIDNone = -1

// segmentIDList stores the sequence of active segment IDs in tour order,
// supporting Next/Prev/Swap/InsertPrev/InsertNext/Remove/IndexOf/Contains,
// with free-list allocation of IDs.
//
// Grounded on the two-level tree's segment order list (§3/§4.F): segment
// IDs are a small, fixed-capacity namespace (capacity is a multiple of the
// target segment count), acquired from a free list and released back to
// it on Remove.
type segmentIDList struct {
	content  []int // active segment IDs, in tour order
	indexOf  []int // indexOf[id] = position in content, or segmentIDNone
	freeList []int // stack of currently-unused segment IDs
}

// newSegmentIDList allocates a segmentIDList with capacity slots, all
// initially free.
func newSegmentIDList(capacity int) *segmentIDList {
	indexOf := make([]int, capacity)
	for i := range indexOf {
		indexOf[i] = segmentIDNone
	}
	freeList := make([]int, capacity)
	for i := 0; i < capacity; i++ {
		// Pop-from-end acquires low IDs first, which keeps debug output
		// and test fixtures readable.
		freeList[i] = capacity - 1 - i
	}
	return &segmentIDList{
		content:  make([]int, 0, capacity),
		indexOf:  indexOf,
		freeList: freeList,
	}
}

// acquireFreeSegmentID pops and returns an unused segment ID.
//
// Panics if the capacity bound is exhausted — the specification treats
// this as a hard invariant violation (§5 "capacity bound ... is a hard
// invariant; exceeding it is a fatal assertion failure").
func (l *segmentIDList) acquireFreeSegmentID() int {
	if len(l.freeList) == 0 {
		panic("tsp: segment ID capacity exceeded")
	}
	last := len(l.freeList) - 1
	id := l.freeList[last]
	l.freeList = l.freeList[:last]
	return id
}

// contains reports whether segmentID is currently active.
func (l *segmentIDList) contains(segmentID int) bool {
	return l.indexOf[segmentID] != segmentIDNone
}

// len returns the number of active segments.
func (l *segmentIDList) len() int {
	return len(l.content)
}

// push appends segmentID to the end of the active order.
func (l *segmentIDList) push(segmentID int) {
	if l.contains(segmentID) {
		panic("tsp: segmentIDList.push of already-active segment")
	}
	l.indexOf[segmentID] = len(l.content)
	l.content = append(l.content, segmentID)
}

// remove deletes segmentID from the active order and returns it to the
// free list.
//
// Complexity: O(capacity) worst case (shifts the inverse index for every
// segment after the removed one); segment counts are O(√n), so this is
// cheap relative to a Swap's O(√n) cost.
func (l *segmentIDList) remove(segmentID int) {
	if !l.contains(segmentID) {
		panic("tsp: segmentIDList.remove of inactive segment")
	}
	pos := l.indexOf[segmentID]
	l.content = append(l.content[:pos], l.content[pos+1:]...)
	l.indexOf[segmentID] = segmentIDNone
	for i := pos; i < len(l.content); i++ {
		l.indexOf[l.content[i]] = i
	}
	l.freeList = append(l.freeList, segmentID)
}

// insertPrev inserts segmentID immediately before targetSegmentID in the
// active order.
func (l *segmentIDList) insertPrev(segmentID, targetSegmentID int) {
	if !l.contains(targetSegmentID) || l.contains(segmentID) {
		panic("tsp: segmentIDList.insertPrev precondition violated")
	}
	pos := l.indexOf[targetSegmentID]
	l.content = append(l.content, 0)
	copy(l.content[pos+1:], l.content[pos:len(l.content)-1])
	l.content[pos] = segmentID
	for i := pos; i < len(l.content); i++ {
		l.indexOf[l.content[i]] = i
	}
}

// insertNext inserts segmentID immediately after targetSegmentID in the
// active order.
func (l *segmentIDList) insertNext(segmentID, targetSegmentID int) {
	if !l.contains(targetSegmentID) || l.contains(segmentID) {
		panic("tsp: segmentIDList.insertNext precondition violated")
	}
	if l.indexOf[targetSegmentID] == len(l.content)-1 {
		l.push(segmentID)
		return
	}
	nextOfTarget := l.content[l.indexOf[targetSegmentID]+1]
	l.insertPrev(segmentID, nextOfTarget)
}

// next returns the segment ID following id in the active order.
func (l *segmentIDList) next(id int) int {
	if !l.contains(id) {
		panic("tsp: segmentIDList.next of inactive segment")
	}
	idx := l.indexOf[id]
	if idx == len(l.content)-1 {
		return l.content[0]
	}
	return l.content[idx+1]
}

// prev returns the segment ID preceding id in the active order.
func (l *segmentIDList) prev(id int) int {
	if !l.contains(id) {
		panic("tsp: segmentIDList.prev of inactive segment")
	}
	idx := l.indexOf[id]
	if idx == 0 {
		return l.content[len(l.content)-1]
	}
	return l.content[idx-1]
}

// swap reverses the active-order arc from the segment `from` to the
// segment `to`, inclusive.
func (l *segmentIDList) swap(from, to int) {
	n := len(l.content)
	fromIdx := l.indexOf[from]
	toIdx := l.indexOf[to]

	var rangeSize int
	if fromIdx <= toIdx {
		rangeSize = toIdx + 1 - fromIdx
	} else {
		rangeSize = toIdx + 1 + n - fromIdx
	}

	for i := 0; i < rangeSize/2; i++ {
		fromID := l.content[fromIdx]
		toID := l.content[toIdx]
		l.indexOf[fromID], l.indexOf[toID] = l.indexOf[toID], l.indexOf[fromID]
		l.content[fromIdx], l.content[toIdx] = l.content[toIdx], l.content[fromIdx]
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

// segmentPosition returns the position of segmentID in the active order.
func (l *segmentIDList) segmentPosition(segmentID int) int {
	return l.indexOf[segmentID]
}
