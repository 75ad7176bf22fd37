// Package dag provides dependency graph construction and cycle detection
// for workflow stage graphs.
package dag

import "fmt"

// Node is one stage in the dependency graph. Edges run from the dependent
// node to each entry in DependsOn.
type Node struct {
	ID        string
	DependsOn []string
}

// UnknownRef records a dependency edge pointing at a stage id that does not
// exist in the graph.
type UnknownRef struct {
	From string // stage declaring the dependency
	To   string // missing stage id
}

// Graph is a directed dependency graph over stage ids. Construction
// preserves declaration order so traversal results are deterministic.
type Graph struct {
	order []string
	nodes map[string]Node
}

// New builds a graph from the given nodes. Returns an error on duplicate
// stage ids; dangling references are tolerated here and reported by
// UnknownRefs so the caller can surface all of them at once.
func New(nodes []Node) (*Graph, error) {
	g := &Graph{
		order: make([]string, 0, len(nodes)),
		nodes: make(map[string]Node, len(nodes)),
	}
	for _, n := range nodes {
		if _, exists := g.nodes[n.ID]; exists {
			return nil, fmt.Errorf("building graph: duplicate stage id %s", n.ID)
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}
	return g, nil
}

// Size returns the number of stages in the graph.
func (g *Graph) Size() int {
	return len(g.order)
}

// Order returns stage ids in declaration order.
func (g *Graph) Order() []string {
	return g.order
}

// Contains reports whether the graph has a stage with the given id.
func (g *Graph) Contains(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// UnknownRefs returns every dependency edge whose target does not exist,
// in declaration order.
func (g *Graph) UnknownRefs() []UnknownRef {
	var refs []UnknownRef
	for _, id := range g.order {
		for _, dep := range g.nodes[id].DependsOn {
			if !g.Contains(dep) {
				refs = append(refs, UnknownRef{From: id, To: dep})
			}
		}
	}
	return refs
}

// Traversal colors for cycle detection.
const (
	white = iota // unvisited
	gray         // in progress on the current DFS path
	black        // fully explored
)

// Cycles runs a depth-first traversal with three-color marking over the
// full declared graph and returns each detected cycle as the stage ids on
// it, in traversal order. A stage depending on itself is a 1-cycle. Edges
// to unknown ids are skipped; UnknownRefs reports those separately.
// Runs in O(stages + edges).
func (g *Graph) Cycles() [][]string {
	color := make(map[string]int, len(g.order))
	path := make([]string, 0, len(g.order))
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		path = append(path, id)

		for _, dep := range g.nodes[id].DependsOn {
			if !g.Contains(dep) {
				continue
			}
			switch color[dep] {
			case white:
				visit(dep)
			case gray:
				cycles = append(cycles, extractCycle(path, dep))
			}
		}

		path = path[:len(path)-1]
		color[id] = black
	}

	for _, id := range g.order {
		if color[id] == white {
			visit(id)
		}
	}
	return cycles
}

// Acyclic reports whether the graph contains no cycles.
func (g *Graph) Acyclic() bool {
	return len(g.Cycles()) == 0
}

// extractCycle copies the portion of the DFS path from the revisited stage
// onward, which is exactly the membership of the detected cycle.
func extractCycle(path []string, start string) []string {
	for i, id := range path {
		if id == start {
			cycle := make([]string, len(path)-i)
			copy(cycle, path[i:])
			return cycle
		}
	}
	cycle := make([]string, len(path))
	copy(cycle, path)
	return cycle
}
