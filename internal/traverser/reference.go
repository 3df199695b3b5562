package traverser

import (
	"fmt"

	"github.com/specialistvlad/forge/internal/graph"
	"github.com/specialistvlad/forge/internal/model"
	"github.com/specialistvlad/forge/internal/targetref"
)

// ReferenceKind discriminates a DependencyReference.
type ReferenceKind int

const (
	// ReferenceProduct is the product of a target in the graph.
	ReferenceProduct ReferenceKind = iota + 1
	// ReferenceFramework is a precompiled framework.
	ReferenceFramework
	// ReferenceLibrary is a precompiled library.
	ReferenceLibrary
	// ReferenceSDK is a system framework or library.
	ReferenceSDK
)

// DependencyReference is one resolved artifact a target depends on.
type DependencyReference struct {
	Kind ReferenceKind
	// Target and Product are set for ReferenceProduct.
	Target  targetref.Reference
	Product model.Product
	// Path is set for precompiled binaries.
	Path string
	// Name is the product, binary or SDK name.
	Name    string
	Linking model.Linking
	Status  model.SDKStatus
}

// IsStatic reports whether the referenced artifact is linked statically.
func (r DependencyReference) IsStatic() bool {
	switch r.Kind {
	case ReferenceProduct:
		return r.Product.IsStatic()
	case ReferenceFramework, ReferenceLibrary:
		return r.Linking == model.LinkingStatic
	case ReferenceSDK:
		return false
	default:
		return false
	}
}

func (r DependencyReference) String() string {
	switch r.Kind {
	case ReferenceProduct:
		return fmt.Sprintf("product %s (%s)", r.Target, r.Product.Caption())
	case ReferenceFramework:
		return fmt.Sprintf("framework %s (%s)", r.Path, r.Linking)
	case ReferenceLibrary:
		return fmt.Sprintf("library %s (%s)", r.Path, r.Linking)
	case ReferenceSDK:
		return fmt.Sprintf("sdk %s (%s)", r.Name, r.Status)
	default:
		return fmt.Sprintf("ReferenceKind(%d)", int(r.Kind))
	}
}

// referenceTo converts a graph node into the artifact it stands for. Project
// nodes are never dependencies and yield false.
func referenceTo(n *graph.Node) (DependencyReference, bool) {
	switch n.Kind {
	case graph.NodeTarget:
		t := n.Target.Target
		name := t.ProductName
		if name == "" {
			name = t.Name
		}
		return DependencyReference{
			Kind:    ReferenceProduct,
			Target:  n.Target.Reference(),
			Product: t.Product,
			Name:    name,
		}, true
	case graph.NodeExternal:
		e := n.External
		ref := DependencyReference{Path: e.Path, Name: e.Name, Linking: e.Linking, Status: e.Status}
		switch e.Kind {
		case model.DependencyFramework:
			ref.Kind = ReferenceFramework
		case model.DependencyLibrary:
			ref.Kind = ReferenceLibrary
		default:
			ref.Kind = ReferenceSDK
		}
		return ref, true
	case graph.NodeProject:
		return DependencyReference{}, false
	default:
		return DependencyReference{}, false
	}
}
