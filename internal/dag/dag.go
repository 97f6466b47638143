package dag

import (
	"fmt"

	"github.com/vk/botplan/internal/planerr"
)

// Graph is a directed acyclic dependency graph over resource IDs. Nodes
// remember their insertion order, which doubles as the declaration order
// used to break ties during sorting.
type Graph struct {
	order []string
	nodes map[string]*node
}

// node is a single vertex. Un-exported so callers interact through string
// IDs, never by poking edge maps directly.
type node struct {
	id         string
	deps       map[string]*node
	dependents map[string]*node
}

// New creates an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode adds a node with the given ID. Adding an existing ID is a no-op
// so callers can blindly register every declaration.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.order = append(g.order, id)
	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// AddEdge records that toID depends on fromID. An error is returned if
// either node is missing or the edge would be a self-reference.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return &planerr.CyclicDependencyError{Cycle: []string{fromID, toID}}
	}

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode
	return nil
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependencies returns the IDs the given node depends on, in declaration
// order.
func (g *Graph) Dependencies(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	var deps []string
	for _, candidate := range g.order {
		if _, ok := n.deps[candidate]; ok {
			deps = append(deps, candidate)
		}
	}
	return deps, nil
}

// TopoSort produces the apply order: every node appears after all nodes
// it depends on. Among nodes whose dependencies are already placed, the
// earliest-declared one is placed first. If no valid order exists the
// result is a *planerr.CyclicDependencyError carrying the cycle path.
func (g *Graph) TopoSort() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		indegree[id] = len(n.deps)
	}

	placed := make(map[string]bool, len(g.nodes))
	result := make([]string, 0, len(g.nodes))

	for len(result) < len(g.nodes) {
		// Scan declaration order for the first ready node. Quadratic in
		// node count, which is fine at document scale, and it is what
		// makes the tie-break stable.
		picked := ""
		for _, id := range g.order {
			if !placed[id] && indegree[id] == 0 {
				picked = id
				break
			}
		}
		if picked == "" {
			return nil, &planerr.CyclicDependencyError{Cycle: g.findCycle(placed)}
		}

		placed[picked] = true
		result = append(result, picked)
		for depID := range g.nodes[picked].dependents {
			indegree[depID]--
		}
	}

	return result, nil
}

// findCycle walks dependency edges among the unplaced nodes until it
// revisits one, then returns that closed walk, e.g. [a, b, a]. Called only
// when TopoSort has proven a cycle exists among them.
func (g *Graph) findCycle(placed map[string]bool) []string {
	start := ""
	for _, id := range g.order {
		if !placed[id] {
			start = id
			break
		}
	}
	if start == "" {
		return nil
	}

	visitedAt := map[string]int{}
	var path []string
	current := start
	for {
		if at, seen := visitedAt[current]; seen {
			return append(path[at:], current)
		}
		visitedAt[current] = len(path)
		path = append(path, current)

		// Follow the earliest-declared unplaced dependency. Every unplaced
		// node has at least one, or TopoSort would have picked it.
		next := ""
		for _, candidate := range g.order {
			if placed[candidate] {
				continue
			}
			if _, ok := g.nodes[current].deps[candidate]; ok {
				next = candidate
				break
			}
		}
		if next == "" {
			return path
		}
		current = next
	}
}
