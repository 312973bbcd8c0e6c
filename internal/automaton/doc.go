// Package automaton stores finite automata over a bounded alphabet and answers
// transition and finality queries.
//
// Two representations are provided:
//
//   - Deterministic: a dense transition table with exactly one slot per
//     (state, symbol) pair, stored row-major in a single slice.
//   - NonDeterministic: a transition relation allowing any number of
//     destinations per (state, symbol) pair, stored as a sorted arc slice.
//
// # Validation
//
// Mutation is strict: SetArc and AddArc reject a label outside the alphabet
// and any source or destination that is not an existing state. Queries are
// permissive: GetNext and IsFinal never fail, they degrade to "no transition"
// and "not final". Membership walks rely on this to treat falling off the
// automaton uniformly.
//
// # Lifetime
//
// Automata grow monotonically: states and arcs are only ever added. The
// intended usage is build-then-freeze. Once an automaton is shared with
// language views it must not be mutated; concurrent read-only queries are
// then safe without locking. Nothing here enforces the freeze.
package automaton
