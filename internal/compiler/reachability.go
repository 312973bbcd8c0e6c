package compiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/facore/internal/ir"
)

// Warning levels.
const (
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// ReachabilityWarning reports states that cannot take part in an accepted
// word. These are warnings, not errors: trap states are a normal way to
// complete a deterministic table, and unreachable states are harmless.
type ReachabilityWarning struct {
	States  []string `json:"states"`
	Message string   `json:"message"`
	Level   string   `json:"level"` // "warning" or "info"
}

// AnalyzeReachability performs static analysis on a valid definition.
//
// The algorithm:
//  1. Build the state graph from the arcs (labels ignored)
//  2. Walk forward from the start states; unvisited states are unreachable
//  3. Use Tarjan's algorithm to find strongly connected components
//  4. Report each reachable component with no final state and no arc leaving
//     it as a trap
//
// Definitions that fail Validate must not be analyzed.
func AnalyzeReachability(def *ir.AutomatonDef) []ReachabilityWarning {
	warnings := []ReachabilityWarning{}
	if len(def.States) == 0 {
		return warnings
	}

	graph := buildStateGraph(def)
	index := def.StateIndex()

	if len(def.Start) == 0 {
		return append(warnings, ReachabilityWarning{
			Message: "no start state: the language is empty",
			Level:   LevelWarning,
		})
	}

	starts := make([]int, len(def.Start))
	for i, name := range def.Start {
		starts[i] = index[name]
	}
	reached := reachableFrom(graph, starts)

	var unreachable []string
	for i, s := range def.States {
		if !reached[i] {
			unreachable = append(unreachable, s.Name)
		}
	}
	if len(unreachable) > 0 {
		warnings = append(warnings, ReachabilityWarning{
			States:  unreachable,
			Message: fmt.Sprintf("unreachable from start: %s", strings.Join(unreachable, ", ")),
			Level:   LevelWarning,
		})
	}

	var traps [][]int
	for _, scc := range tarjanSCC(graph) {
		if reached[scc[0]] && isTrap(scc, graph, def) {
			slices.Sort(scc)
			traps = append(traps, scc)
		}
	}
	// Tarjan emits components in reverse topological order
	slices.SortFunc(traps, func(a, b []int) int { return a[0] - b[0] })

	for _, scc := range traps {
		names := make([]string, len(scc))
		for i, s := range scc {
			names[i] = def.States[s].Name
		}
		warnings = append(warnings, ReachabilityWarning{
			States:  names,
			Message: fmt.Sprintf("trap (no final state reachable): %s", strings.Join(names, ", ")),
			Level:   LevelInfo,
		})
	}

	return warnings
}

// stateGraph maps state id -> successor ids (deduplicated, sorted).
type stateGraph [][]int

func buildStateGraph(def *ir.AutomatonDef) stateGraph {
	index := def.StateIndex()
	graph := make(stateGraph, len(def.States))
	for _, arc := range def.Arcs {
		from, to := index[arc.From], index[arc.To]
		graph[from] = append(graph[from], to)
	}
	for i := range graph {
		slices.Sort(graph[i])
		graph[i] = slices.Compact(graph[i])
	}
	return graph
}

func reachableFrom(graph stateGraph, starts []int) []bool {
	reached := make([]bool, len(graph))
	queue := slices.Clone(starts)
	for _, s := range starts {
		reached[s] = true
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range graph[v] {
			if !reached[w] {
				reached[w] = true
				queue = append(queue, w)
			}
		}
	}
	return reached
}

// isTrap reports whether no state of scc is final and no arc leaves it.
func isTrap(scc []int, graph stateGraph, def *ir.AutomatonDef) bool {
	members := make(map[int]bool, len(scc))
	for _, s := range scc {
		members[s] = true
	}
	for _, s := range scc {
		if def.States[s].Final {
			return false
		}
		for _, w := range graph[s] {
			if !members[w] {
				return false
			}
		}
	}
	return true
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
//
// Returns a list of SCCs, where each SCC is a list of state ids. Every state
// belongs to exactly one SCC.
func tarjanSCC(graph stateGraph) [][]int {
	var (
		index   = 0
		stack   []int
		indices = make([]int, len(graph))
		lowlink = make([]int, len(graph))
		onStack = make([]bool, len(graph))
		sccs    [][]int
	)
	for i := range indices {
		indices[i] = -1
	}

	var strongConnect func(int)
	strongConnect = func(v int) {
		// Set the depth index for v
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		// Consider successors of v
		for _, w := range graph[v] {
			if indices[w] < 0 {
				// Successor w has not yet been visited; recurse on it
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				// Successor w is on stack and hence in the current SCC
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// If v is a root node, pop the stack and create an SCC
		if lowlink[v] == indices[v] {
			var scc []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for node := range graph {
		if indices[node] < 0 {
			strongConnect(node)
		}
	}

	return sccs
}
