// Package ir holds the definition form of automata and the canonical
// encoding used to identify definitions and golden traces.
//
// A definition (AutomatonDef) is what the compiler extracts from a CUE file
// before any automaton is built: named states, arcs between names, and the
// start states. ir imports nothing internal; the compiler turns definitions
// into automata.
//
// Key constraints:
//   - State ids are assigned in declaration order: the i-th StateDef is
//     automaton.StateID(i).
//   - No floats and no nulls in canonical JSON.
//   - All JSON tags use snake_case.
package ir
