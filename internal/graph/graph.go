package graph

import (
	"github.com/specialistvlad/forge/internal/model"
)

// Graph is the immutable dependency graph of one invocation.
type Graph struct {
	name      string
	path      string
	workspace *model.Workspace

	projects     map[string]*model.Project
	projectOrder []string

	// nodes and order hold every node, in insertion order.
	nodes map[ID]*Node
	order []ID
	// edges holds outgoing edges in declaration order, duplicates collapsed.
	edges map[ID][]ID
	// dependents counts incoming edges from targets.
	dependents map[ID]int

	entries []*Node
}

// Name returns the workspace name, or the root project name.
func (g *Graph) Name() string { return g.name }

// Path returns the directory the graph was loaded from.
func (g *Graph) Path() string { return g.path }

// Workspace returns the workspace the graph was loaded from, if any.
func (g *Graph) Workspace() (*model.Workspace, bool) {
	return g.workspace, g.workspace != nil
}

// Projects returns every loaded project in load order.
func (g *Graph) Projects() []*model.Project {
	out := make([]*model.Project, 0, len(g.projectOrder))
	for _, path := range g.projectOrder {
		out = append(out, g.projects[path])
	}
	return out
}

// Project returns the project declared at path.
func (g *Graph) Project(path string) (*model.Project, bool) {
	p, ok := g.projects[path]
	return p, ok
}

// Node returns the node with the given identity.
func (g *Graph) Node(id ID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Target looks a target up by its composite identity. A missing target is
// not an error here: callers decide whether absence is fatal.
func (g *Graph) Target(path, name string) (*TargetNode, bool) {
	n, ok := g.nodes[TargetID(path, name)]
	if !ok {
		return nil, false
	}
	return n.Target, true
}

// Targets returns every target node in insertion order.
func (g *Graph) Targets() []*TargetNode {
	var out []*TargetNode
	for _, id := range g.order {
		if id.Kind == NodeTarget {
			out = append(out, g.nodes[id].Target)
		}
	}
	return out
}

// Dependencies returns the direct dependencies of a node in declaration order.
func (g *Graph) Dependencies(id ID) []*Node {
	edges := g.edges[id]
	out := make([]*Node, 0, len(edges))
	for _, to := range edges {
		out = append(out, g.nodes[to])
	}
	return out
}

// EntryNodes returns the roots of the current build scope: explicit workspace
// members first, then the targets of the entry projects that no other target
// depends on.
func (g *Graph) EntryNodes() []*Node {
	out := make([]*Node, len(g.entries))
	copy(out, g.entries)
	return out
}
