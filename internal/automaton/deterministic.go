package automaton

import "github.com/roach88/facore/internal/symbol"

// Deterministic is a deterministic automaton with a dense transition table.
//
// Each state owns exactly AlphabetSize slots holding either a destination or
// NoState. Slots live in one row-major slice indexed by state*A + label.
type Deterministic struct {
	states
	table []StateID
}

// NewDeterministic creates an empty deterministic automaton over an alphabet
// of alphabetSize symbols. An automaton with no states accepts nothing.
func NewDeterministic(alphabetSize uint32, opts ...Option) *Deterministic {
	return &Deterministic{states: newStates(alphabetSize, opts)}
}

// AddState appends a state whose slots all point to NoState.
func (d *Deterministic) AddState(final bool) (StateID, error) {
	id, err := d.addState(final)
	if err != nil {
		return NoState, err
	}
	for range d.alphabet {
		d.table = append(d.table, NoState)
	}
	return id, nil
}

// SetArc sets the destination of (src, label). Setting the same pair twice
// replaces the earlier destination.
func (d *Deterministic) SetArc(src StateID, label symbol.Symbol, dest StateID) error {
	if err := d.checkArc(src, label, dest); err != nil {
		return err
	}
	d.table[d.slot(src, label)] = dest
	return nil
}

// GetNext returns the destination of (src, label), or NoState when src is not
// a state, label is outside the alphabet, or no arc was set.
func (d *Deterministic) GetNext(src StateID, label symbol.Symbol) StateID {
	if !d.IsValid(src) || uint32(label) >= d.alphabet {
		return NoState
	}
	return d.table[d.slot(src, label)]
}

// Next is GetNext with an explicit presence flag instead of the sentinel.
func (d *Deterministic) Next(src StateID, label symbol.Symbol) (StateID, bool) {
	next := d.GetNext(src, label)
	return next, next != NoState
}

func (d *Deterministic) slot(src StateID, label symbol.Symbol) int {
	return int(src)*int(d.alphabet) + int(label)
}
