package graph

import (
	"fmt"

	"github.com/specialistvlad/forge/internal/model"
	"github.com/specialistvlad/forge/internal/targetref"
)

// NodeKind discriminates the variants of a Node.
type NodeKind int

const (
	NodeTarget NodeKind = iota + 1
	NodeProject
	NodeExternal
)

func (k NodeKind) String() string {
	switch k {
	case NodeTarget:
		return "target"
	case NodeProject:
		return "project"
	case NodeExternal:
		return "external"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// ID is the composite identity of a node. Targets use their project path and
// name, projects their path, precompiled binaries their absolute path and
// SDKs their name.
type ID struct {
	Kind NodeKind
	Path string
	Name string
}

func (id ID) String() string {
	switch id.Kind {
	case NodeTarget:
		return id.Path + ":" + id.Name
	case NodeProject:
		return id.Path
	case NodeExternal:
		if id.Path != "" {
			return id.Path
		}
		return id.Name
	default:
		return fmt.Sprintf("%s:%s", id.Path, id.Name)
	}
}

// TargetID returns the ID of the target name in the project at path.
func TargetID(path, name string) ID {
	return ID{Kind: NodeTarget, Path: path, Name: name}
}

// TargetNode is a target together with the project that declares it.
type TargetNode struct {
	Project *model.Project
	Target  *model.Target
}

// Reference returns the composite identity of the target.
func (t *TargetNode) Reference() targetref.Reference {
	return targetref.New(t.Project.Path, t.Target.Name)
}

// ProjectNode is a project-level aggregate, used for explicit workspace members.
type ProjectNode struct {
	Project *model.Project
}

// ExternalNode is an artifact that is not built from a manifest.
type ExternalNode struct {
	// Kind is DependencyFramework, DependencyLibrary or DependencySDK.
	Kind model.DependencyKind
	// Path is the absolute path of a precompiled binary. Empty for SDKs.
	Path string
	// Name is the file name of the binary or SDK.
	Name    string
	Linking model.Linking
	Status  model.SDKStatus
}

// Node is one vertex of the graph.
type Node struct {
	Kind     NodeKind
	Target   *TargetNode
	Project  *ProjectNode
	External *ExternalNode
}

// ID returns the composite identity of the node.
func (n *Node) ID() ID {
	switch n.Kind {
	case NodeTarget:
		return TargetID(n.Target.Project.Path, n.Target.Target.Name)
	case NodeProject:
		return ID{Kind: NodeProject, Path: n.Project.Project.Path, Name: n.Project.Project.Name}
	case NodeExternal:
		return ID{Kind: NodeExternal, Path: n.External.Path, Name: n.External.Name}
	default:
		panic(fmt.Sprintf("graph: node with invalid kind %d", int(n.Kind)))
	}
}

// IsStaticallyLinked reports whether consumers flatten this node into their
// own product, which is what lets a traversal continue past it.
func (n *Node) IsStaticallyLinked() bool {
	switch n.Kind {
	case NodeTarget:
		return n.Target.Target.Product.IsStatic()
	case NodeExternal:
		return n.External.Kind != model.DependencySDK && n.External.Linking == model.LinkingStatic
	case NodeProject:
		return false
	default:
		return false
	}
}

func (n *Node) String() string {
	return n.Kind.String() + " " + n.ID().String()
}

func newTargetNode(p *model.Project, t *model.Target) *Node {
	return &Node{Kind: NodeTarget, Target: &TargetNode{Project: p, Target: t}}
}

func newProjectNode(p *model.Project) *Node {
	return &Node{Kind: NodeProject, Project: &ProjectNode{Project: p}}
}

func newExternalNode(e *ExternalNode) *Node {
	return &Node{Kind: NodeExternal, External: e}
}
