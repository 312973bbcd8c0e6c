package ir

// Automaton kinds.
const (
	KindDeterministic    = "deterministic"
	KindNonDeterministic = "nondeterministic"
)

// ValidKinds lists the accepted values of AutomatonDef.Kind.
var ValidKinds = map[string]bool{
	KindDeterministic:    true,
	KindNonDeterministic: true,
}

// AutomatonDef is a compiled, not yet built, automaton definition.
type AutomatonDef struct {
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	Alphabet uint32     `json:"alphabet"`
	States   []StateDef `json:"states"`
	Arcs     []ArcDef   `json:"arcs"`
	Start    []string   `json:"start"` // empty means the empty language
}

// StateDef declares one state.
type StateDef struct {
	Name  string `json:"name"`
	Final bool   `json:"final"`
}

// ArcDef declares one transition between named states.
type ArcDef struct {
	From  string `json:"from"`
	Label uint32 `json:"label"`
	To    string `json:"to"`
}

// StateIndex maps state names to their ids (declaration order).
func (d *AutomatonDef) StateIndex() map[string]int {
	index := make(map[string]int, len(d.States))
	for i, s := range d.States {
		index[s.Name] = i
	}
	return index
}

// IsDeterministic reports whether the definition builds a deterministic
// automaton.
func (d *AutomatonDef) IsDeterministic() bool {
	return d.Kind == KindDeterministic
}

// CanonicalMap returns the definition as plain values for MarshalCanonical.
func (d *AutomatonDef) CanonicalMap() map[string]any {
	states := make([]any, len(d.States))
	for i, s := range d.States {
		states[i] = map[string]any{"name": s.Name, "final": s.Final}
	}
	arcs := make([]any, len(d.Arcs))
	for i, a := range d.Arcs {
		arcs[i] = map[string]any{"from": a.From, "label": a.Label, "to": a.To}
	}
	start := make([]any, len(d.Start))
	for i, s := range d.Start {
		start[i] = s
	}
	return map[string]any{
		"name":     d.Name,
		"kind":     d.Kind,
		"alphabet": d.Alphabet,
		"states":   states,
		"arcs":     arcs,
		"start":    start,
	}
}
