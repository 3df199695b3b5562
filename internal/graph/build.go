package graph

import (
	"path/filepath"
	"reflect"

	"github.com/specialistvlad/forge/internal/model"
)

// Input is everything New needs to build a graph.
type Input struct {
	// Path is the directory the invocation was started from.
	Path string
	// Workspace is optional. When set its projects are the entry projects,
	// otherwise the project at Path is.
	Workspace *model.Workspace
	// Projects holds every loaded project, root first.
	Projects []*model.Project
}

// New builds and validates a graph. It fails with a *ConstructionError when
// two nodes claim the same identity with different definitions, when a
// dependency cannot be resolved, or when the dependencies form a cycle.
func New(in Input) (*Graph, error) {
	g := &Graph{
		path:       filepath.Clean(in.Path),
		workspace:  in.Workspace,
		projects:   make(map[string]*model.Project),
		nodes:      make(map[ID]*Node),
		edges:      make(map[ID][]ID),
		dependents: make(map[ID]int),
	}

	if err := g.addProjects(in.Projects); err != nil {
		return nil, err
	}
	if err := g.linkDependencies(); err != nil {
		return nil, err
	}
	if err := g.detectCycles(); err != nil {
		return nil, err
	}

	g.name = g.resolveName()
	g.entries = g.computeEntries()
	return g, nil
}

func (g *Graph) addNode(n *Node) {
	id := n.ID()
	g.nodes[id] = n
	g.order = append(g.order, id)
}

func (g *Graph) addProjects(projects []*model.Project) error {
	for _, p := range projects {
		if existing, ok := g.projects[p.Path]; ok {
			if existing == p || reflect.DeepEqual(existing, p) {
				continue
			}
			return collision("projects %q and %q are both declared at %s", existing.Name, p.Name, p.Path)
		}
		g.projects[p.Path] = p
		g.projectOrder = append(g.projectOrder, p.Path)
		g.addNode(newProjectNode(p))

		for _, t := range p.Targets {
			id := TargetID(p.Path, t.Name)
			if existing, ok := g.nodes[id]; ok {
				if reflect.DeepEqual(existing.Target.Target, t) {
					continue
				}
				return collision("target %s is declared twice with different definitions", id)
			}
			g.addNode(newTargetNode(p, t))
		}
	}
	return nil
}

func (g *Graph) linkDependencies() error {
	for _, tn := range g.Targets() {
		from := TargetID(tn.Project.Path, tn.Target.Name)
		seen := make(map[ID]struct{})

		for _, dep := range tn.Target.Dependencies {
			to, err := g.resolve(tn.Project, dep)
			if err != nil {
				return err
			}
			if to == from {
				return cycleError([]ID{from, from})
			}
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			g.edges[from] = append(g.edges[from], to)
			if to.Kind == NodeTarget {
				g.dependents[to]++
			}
		}
	}
	return nil
}

// resolve maps a declared dependency onto a node identity, creating external
// nodes on first use.
func (g *Graph) resolve(p *model.Project, dep model.Dependency) (ID, error) {
	switch dep.Kind {
	case model.DependencyTarget:
		id := TargetID(p.Path, dep.Name)
		if _, ok := g.nodes[id]; !ok {
			return ID{}, unresolved("%s depends on target %q which %s does not declare", p.Name, dep.Name, p.Path)
		}
		return id, nil

	case model.DependencyProject:
		path := dep.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.Path, path)
		}
		id := TargetID(filepath.Clean(path), dep.Name)
		if _, ok := g.nodes[id]; !ok {
			return ID{}, unresolved("%s depends on %s which is not loaded", p.Name, id)
		}
		return id, nil

	case model.DependencyFramework, model.DependencyLibrary:
		path := dep.Name
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.Path, path)
		}
		ext := &ExternalNode{
			Kind:    dep.Kind,
			Path:    filepath.Clean(path),
			Name:    filepath.Base(path),
			Linking: dep.ResolvedLinking(),
		}
		return g.external(ext)

	case model.DependencySDK:
		status := dep.Status
		if status == "" {
			status = model.SDKRequired
		}
		return g.external(&ExternalNode{Kind: dep.Kind, Name: dep.Name, Status: status, Linking: model.LinkingDynamic})

	default:
		return ID{}, unresolved("%s declares a dependency of unknown kind %q", p.Name, dep.Kind)
	}
}

func (g *Graph) external(e *ExternalNode) (ID, error) {
	n := newExternalNode(e)
	id := n.ID()
	if existing, ok := g.nodes[id]; ok {
		if existing.External.Kind != e.Kind || existing.External.Linking != e.Linking {
			return ID{}, collision("%s is declared both as %s (%s) and %s (%s)",
				id, existing.External.Kind, existing.External.Linking, e.Kind, e.Linking)
		}
		return id, nil
	}
	g.addNode(n)
	return id, nil
}

func (g *Graph) resolveName() string {
	if g.workspace != nil {
		return g.workspace.Name
	}
	if p, ok := g.projects[g.path]; ok {
		return p.Name
	}
	if len(g.projectOrder) > 0 {
		return g.projects[g.projectOrder[0]].Name
	}
	return filepath.Base(g.path)
}

func (g *Graph) computeEntries() []*Node {
	scope := make(map[string]struct{})
	var entries []*Node

	if g.workspace != nil {
		for _, path := range g.workspace.Projects {
			p, ok := g.projects[path]
			if !ok {
				continue
			}
			scope[path] = struct{}{}
			entries = append(entries, g.nodes[ID{Kind: NodeProject, Path: path, Name: p.Name}])
		}
	} else if len(g.projectOrder) > 0 {
		root := g.path
		if _, ok := g.projects[root]; !ok {
			root = g.projectOrder[0]
		}
		scope[root] = struct{}{}
	}

	for _, id := range g.order {
		if id.Kind != NodeTarget {
			continue
		}
		if _, ok := scope[id.Path]; !ok {
			continue
		}
		if g.dependents[id] == 0 {
			entries = append(entries, g.nodes[id])
		}
	}
	return entries
}
