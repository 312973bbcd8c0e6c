package automaton

import (
	"iter"
	"slices"
	"sort"

	"github.com/roach88/facore/internal/symbol"
)

// Arc is one entry of a transition relation.
type Arc struct {
	Source StateID
	Label  symbol.Symbol
	Dest   StateID
}

// key orders arcs by (source, label).
func (a Arc) key() uint64 {
	return arcKey(a.Source, a.Label)
}

func arcKey(src StateID, label symbol.Symbol) uint64 {
	return uint64(src)<<32 | uint64(label)
}

// NonDeterministic is an automaton whose transition relation may hold zero,
// one or many destinations per (state, label) pair.
//
// The relation is a multiset: adding the same arc twice stores it twice.
// Arcs are kept sorted by (source, label), in insertion order within a pair,
// so GetNext is a binary-searched range of one slice.
type NonDeterministic struct {
	states
	arcs []Arc
}

// NewNonDeterministic creates an empty non-deterministic automaton over an
// alphabet of alphabetSize symbols.
func NewNonDeterministic(alphabetSize uint32, opts ...Option) *NonDeterministic {
	return &NonDeterministic{states: newStates(alphabetSize, opts)}
}

// AddState appends a state with no outgoing arcs.
func (n *NonDeterministic) AddState(final bool) (StateID, error) {
	return n.addState(final)
}

// AddArc adds dest to the destinations of (src, label). Earlier arcs for the
// pair are kept, including identical ones.
//
// An arc whose (src, label) is not below the last one added is appended in
// O(1); any other arc is inserted in place, shifting the arcs after it. Adding
// arcs grouped by source and label therefore builds the relation in linear
// time, while an arbitrary order costs O(k²) for k arcs.
func (n *NonDeterministic) AddArc(src StateID, label symbol.Symbol, dest StateID) error {
	if err := n.checkArc(src, label, dest); err != nil {
		return err
	}
	arc := Arc{Source: src, Label: label, Dest: dest}
	k := arc.key()
	if last := len(n.arcs) - 1; last < 0 || n.arcs[last].key() <= k {
		n.arcs = append(n.arcs, arc)
		return nil
	}
	i := sort.Search(len(n.arcs), func(i int) bool { return n.arcs[i].key() > k })
	n.arcs = slices.Insert(n.arcs, i, arc)
	return nil
}

// GetNext returns the arcs leaving src on label. The range is empty when src
// is not a state or label is outside the alphabet.
func (n *NonDeterministic) GetNext(src StateID, label symbol.Symbol) ArcRange {
	if !n.IsValid(src) || uint32(label) >= n.alphabet {
		return ArcRange{}
	}
	k := arcKey(src, label)
	lo := sort.Search(len(n.arcs), func(i int) bool { return n.arcs[i].key() >= k })
	hi := lo + sort.Search(len(n.arcs)-lo, func(i int) bool { return n.arcs[lo+i].key() > k })
	return ArcRange{arcs: n.arcs[lo:hi:hi]}
}

// NumArcs returns the size of the relation, duplicates included.
func (n *NonDeterministic) NumArcs() int {
	return len(n.arcs)
}

// Arcs iterates the whole relation ordered by (source, label).
func (n *NonDeterministic) Arcs() iter.Seq[Arc] {
	return slices.Values(n.arcs)
}

// ArcRange is a read-only view of the arcs for one (source, label) pair.
// A later AddArc on the automaton invalidates it.
type ArcRange struct {
	arcs []Arc
}

// Len returns the number of arcs, duplicates included.
func (r ArcRange) Len() int {
	return len(r.arcs)
}

// Empty reports whether the pair has no arcs.
func (r ArcRange) Empty() bool {
	return len(r.arcs) == 0
}

// At returns the i-th arc. Panics if i is out of range.
func (r ArcRange) At(i int) Arc {
	return r.arcs[i]
}

// Arcs iterates the arcs in insertion order.
func (r ArcRange) Arcs() iter.Seq[Arc] {
	return slices.Values(r.arcs)
}

// Destinations iterates the destination of every arc in the range.
func (r ArcRange) Destinations() iter.Seq[StateID] {
	return func(yield func(StateID) bool) {
		for _, a := range r.arcs {
			if !yield(a.Dest) {
				return
			}
		}
	}
}
