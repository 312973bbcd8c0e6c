package language

import (
	"slices"

	"github.com/roach88/facore/internal/automaton"
)

// frontier is a sparse set of states: O(1) insert, membership and clear, and
// iteration in insertion order over the dense slice.
//
// Capacity is the automaton's state count; only valid states are inserted.
type frontier struct {
	sparse []uint32
	dense  []automaton.StateID
}

func newFrontier(capacity int) *frontier {
	return &frontier{
		sparse: make([]uint32, capacity),
		dense:  make([]automaton.StateID, 0, capacity),
	}
}

func (f *frontier) contains(s automaton.StateID) bool {
	if uint64(s) >= uint64(len(f.sparse)) {
		return false
	}
	i := f.sparse[s]
	return int(i) < len(f.dense) && f.dense[i] == s
}

// insert adds s and reports whether it was new. States beyond the capacity
// are ignored.
func (f *frontier) insert(s automaton.StateID) bool {
	if uint64(s) >= uint64(len(f.sparse)) || f.contains(s) {
		return false
	}
	f.sparse[s] = uint32(len(f.dense))
	f.dense = append(f.dense, s)
	return true
}

func (f *frontier) clear() {
	f.dense = f.dense[:0]
}

func (f *frontier) len() int {
	return len(f.dense)
}

// sorted returns a copy of the members in ascending order.
func (f *frontier) sorted() []automaton.StateID {
	out := slices.Clone(f.dense)
	slices.Sort(out)
	if out == nil {
		out = []automaton.StateID{}
	}
	return out
}
