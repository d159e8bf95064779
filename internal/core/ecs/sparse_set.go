package ecs

import "fmt"

// PageSize is the number of sparse slots per page.
const PageSize = 32

const nullIndex = ^uint32(0)

type page [PageSize]uint32

// SparseSet maps the sparse entity domain onto a densely packed slice.
// Pages are allocated lazily up to the highest entity ever added.
//
// Iteration order follows the dense slice and is NOT stable: Remove moves the
// last member into the vacated slot, so two live entities can swap positions.
type SparseSet struct {
	dense  []Entity
	sparse []*page
}

func NewSparseSet() *SparseSet {
	return &SparseSet{
		dense:  make([]Entity, 0, 64),
		sparse: make([]*page, 0, 4),
	}
}

func pageOf(e Entity) int   { return int(uint32(e) / PageSize) }
func offsetOf(e Entity) int { return int(uint32(e) % PageSize) }

// Add inserts e. Adding a member that is already present is a no-op.
func (s *SparseSet) Add(e Entity) {
	if e == Null {
		panic("ecs: cannot add null entity to sparse set")
	}
	if s.Contains(e) {
		return
	}
	s.assure(e)
	s.dense = append(s.dense, e)
	s.sparse[pageOf(e)][offsetOf(e)] = uint32(len(s.dense) - 1)
}

// Remove deletes e in O(1) by swapping it with the last dense entry.
func (s *SparseSet) Remove(e Entity) {
	if !s.Contains(e) {
		return
	}
	slot := &s.sparse[pageOf(e)][offsetOf(e)]
	idx := *slot
	last := uint32(len(s.dense) - 1)
	if idx != last {
		moved := s.dense[last]
		s.dense[idx] = moved
		s.sparse[pageOf(moved)][offsetOf(moved)] = idx
	}
	*slot = nullIndex
	s.dense = s.dense[:last]
}

func (s *SparseSet) Contains(e Entity) bool {
	if e == Null {
		return false
	}
	p := pageOf(e)
	return p < len(s.sparse) && s.sparse[p][offsetOf(e)] != nullIndex
}

// Index returns the dense position of e.
func (s *SparseSet) Index(e Entity) (int, bool) {
	if !s.Contains(e) {
		return 0, false
	}
	return int(s.sparse[pageOf(e)][offsetOf(e)]), true
}

func (s *SparseSet) Len() int { return len(s.dense) }

// Pages reports how many sparse pages are allocated.
func (s *SparseSet) Pages() int { return len(s.sparse) }

// Entities returns the dense member slice. Callers must not modify it and must
// not hold it across a Remove.
func (s *SparseSet) Entities() []Entity { return s.dense }

func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
	s.sparse = s.sparse[:0]
}

func (s *SparseSet) assure(e Entity) {
	p := pageOf(e)
	for len(s.sparse) <= p {
		pg := new(page)
		for i := range pg {
			pg[i] = nullIndex
		}
		s.sparse = append(s.sparse, pg)
	}
}

func (s *SparseSet) String() string {
	return fmt.Sprintf("SparseSet(len=%d, pages=%d)", len(s.dense), len(s.sparse))
}
