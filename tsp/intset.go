package tsp

import "math/rand"

// intSetNone is the sentinel marking "absent" in IntSet's inverse index.
const intSetNone = -1

// IntSet is a dense membership subset of [0, n) supporting O(1) Push,
// Remove, Contains, and RandomSelect. Used as the don't-look-bit set:
// cities still worth examining are members; a city is removed once a
// search around it fails to find an improving move.
//
// Representation: a dense array of current members plus an inverse index
// mapping city -> position in that array, so Remove can swap the removed
// city with the last member and truncate in O(1) instead of shifting.
type IntSet struct {
	members []int // dense list of current members
	indexOf []int // indexOf[c] = position of c in members, or intSetNone
}

// NewIntSet allocates an IntSet over [0, n), initially empty.
func NewIntSet(n int) *IntSet {
	indexOf := make([]int, n)
	for i := range indexOf {
		indexOf[i] = intSetNone
	}
	return &IntSet{members: make([]int, 0, n), indexOf: indexOf}
}

// Len returns the number of members currently in the set.
func (s *IntSet) Len() int {
	return len(s.members)
}

// IsEmpty reports whether the set has no members.
func (s *IntSet) IsEmpty() bool {
	return len(s.members) == 0
}

// Contains reports whether id is currently a member.
func (s *IntSet) Contains(id int) bool {
	return s.indexOf[id] != intSetNone
}

// Push inserts id. A no-op if id is already a member.
func (s *IntSet) Push(id int) {
	if s.Contains(id) {
		return
	}
	s.indexOf[id] = len(s.members)
	s.members = append(s.members, id)
}

// Remove deletes id from the set.
//
// Panics if id is not a member — removing an absent city indicates a
// programming error in the caller (don't-look-bit bookkeeping is
// expected to only ever remove cities it just examined).
func (s *IntSet) Remove(id int) {
	idx := s.indexOf[id]
	if idx == intSetNone {
		panic("tsp: IntSet.Remove of absent member")
	}
	last := len(s.members) - 1
	lastID := s.members[last]
	s.members[idx] = lastID
	s.indexOf[lastID] = idx
	s.members = s.members[:last]
	s.indexOf[id] = intSetNone
}

// SetAll inserts every id in [0, n) into the set.
func (s *IntSet) SetAll() {
	for i := 0; i < len(s.indexOf); i++ {
		s.Push(i)
	}
}

// RandomSelect returns a uniformly random current member without removing
// it. Panics if the set is empty.
func (s *IntSet) RandomSelect(rng *rand.Rand) int {
	if s.IsEmpty() {
		panic("tsp: IntSet.RandomSelect of empty set")
	}
	return s.members[rng.Intn(len(s.members))]
}
