package traverser

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/specialistvlad/forge/internal/graph"
	"github.com/specialistvlad/forge/internal/model"
)

// DefaultCacheSize bounds the number of memoized query results.
const DefaultCacheSize = 1024

type query int

const (
	queryStatic query = iota
	queryLinkable
	queryEmbeddable
)

type cacheKey struct {
	query query
	id    graph.ID
}

// Traverser runs linkage queries against one graph.
type Traverser struct {
	graph *graph.Graph
	cache *lru.Cache[cacheKey, []DependencyReference]
}

// Option configures a Traverser.
type Option func(*options)

type options struct {
	cacheSize int
}

// WithCacheSize overrides DefaultCacheSize. Sizes below one disable memoization.
func WithCacheSize(size int) Option {
	return func(o *options) { o.cacheSize = size }
}

// New creates a Traverser over g.
func New(g *graph.Graph, opts ...Option) *Traverser {
	o := options{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Traverser{graph: g}
	if o.cacheSize > 0 {
		// lru.New only fails for non-positive sizes.
		t.cache, _ = lru.New[cacheKey, []DependencyReference](o.cacheSize)
	}
	return t
}

// StaticDependencies returns the transitive dependencies of a target that
// are reachable without crossing a dynamically linked boundary. A dynamic
// product is part of the result but its own dependencies are not: they stay
// behind the boundary. Declaration order is preserved and every artifact
// appears once, at its first occurrence.
func (t *Traverser) StaticDependencies(path, name string) ([]DependencyReference, error) {
	root, ok := t.graph.Target(path, name)
	if !ok {
		return nil, notFound(path, name)
	}
	return t.memoize(queryStatic, graph.TargetID(path, name), func() ([]DependencyReference, error) {
		return t.staticDependencies(root)
	})
}

func (t *Traverser) staticDependencies(root *graph.TargetNode) ([]DependencyReference, error) {
	rootID := graph.TargetID(root.Project.Path, root.Target.Name)

	visited := make(map[graph.ID]struct{})
	onStack := make(map[graph.ID]bool)
	var stack []graph.ID
	var out []DependencyReference

	var walk func(id graph.ID) error
	walk = func(id graph.ID) error {
		onStack[id] = true
		stack = append(stack, id)

		for _, dep := range t.graph.Dependencies(id) {
			did := dep.ID()
			if onStack[did] {
				start := 0
				for i, s := range stack {
					if s == did {
						start = i
						break
					}
				}
				return cycle(append(append([]graph.ID{}, stack[start:]...), did))
			}
			if _, seen := visited[did]; seen {
				continue
			}
			visited[did] = struct{}{}

			if ref, ok := referenceTo(dep); ok {
				out = append(out, ref)
			}
			if dep.Kind == graph.NodeTarget && dep.IsStaticallyLinked() {
				if err := walk(did); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		onStack[id] = false
		return nil
	}

	if err := walk(rootID); err != nil {
		return nil, err
	}
	return out, nil
}

// DirectTargetDependencies returns the targets the named target depends on
// directly, in declaration order.
func (t *Traverser) DirectTargetDependencies(path, name string) ([]*graph.TargetNode, error) {
	if _, ok := t.graph.Target(path, name); !ok {
		return nil, notFound(path, name)
	}

	var out []*graph.TargetNode
	for _, dep := range t.graph.Dependencies(graph.TargetID(path, name)) {
		switch dep.Kind {
		case graph.NodeTarget:
			out = append(out, dep.Target)
		case graph.NodeProject, graph.NodeExternal:
		}
	}
	return out, nil
}

// LinkableDependencies returns what the linker needs for the named target:
// its direct dynamic products and precompiled binaries, its SDKs and, when
// the product can host them, the static products (and the binaries and SDKs
// they bring along) flattened from its static dependency closure.
func (t *Traverser) LinkableDependencies(path, name string) ([]DependencyReference, error) {
	root, ok := t.graph.Target(path, name)
	if !ok {
		return nil, notFound(path, name)
	}
	return t.memoize(queryLinkable, graph.TargetID(path, name), func() ([]DependencyReference, error) {
		var set referenceSet

		for _, dep := range t.graph.Dependencies(graph.TargetID(path, name)) {
			switch dep.Kind {
			case graph.NodeTarget:
				if dep.Target.Target.Product.IsLinkable() && !dep.Target.Target.Product.IsStatic() {
					ref, _ := referenceTo(dep)
					set.add(ref)
				}
			case graph.NodeExternal:
				ref, _ := referenceTo(dep)
				set.add(ref)
			case graph.NodeProject:
			}
		}

		if !root.Target.Product.CanHostStaticProducts() {
			return set.list(), nil
		}

		static, err := t.staticDependencies(root)
		if err != nil {
			return nil, err
		}
		for _, ref := range static {
			switch ref.Kind {
			case ReferenceProduct:
				if ref.Product.IsStatic() {
					set.add(ref)
				}
			case ReferenceFramework, ReferenceLibrary, ReferenceSDK:
				set.add(ref)
			}
		}
		return set.list(), nil
	})
}

// EmbeddableFrameworks returns the dynamic frameworks that must be copied
// into the bundle of the named target. Only products that ship a bundle
// (apps, extensions and test bundles) embed frameworks. The walk goes through
// frameworks and static products but never into another app or extension.
func (t *Traverser) EmbeddableFrameworks(path, name string) ([]DependencyReference, error) {
	root, ok := t.graph.Target(path, name)
	if !ok {
		return nil, notFound(path, name)
	}
	switch root.Target.Product {
	case model.ProductApp, model.ProductAppExtension, model.ProductWatch2Extension,
		model.ProductUnitTests, model.ProductUITests:
	default:
		return nil, nil
	}

	return t.memoize(queryEmbeddable, graph.TargetID(path, name), func() ([]DependencyReference, error) {
		var set referenceSet
		visited := map[graph.ID]struct{}{graph.TargetID(path, name): {}}

		var walk func(id graph.ID)
		walk = func(id graph.ID) {
			for _, dep := range t.graph.Dependencies(id) {
				did := dep.ID()
				if _, seen := visited[did]; seen {
					continue
				}
				visited[did] = struct{}{}

				switch dep.Kind {
				case graph.NodeTarget:
					product := dep.Target.Target.Product
					if product == model.ProductFramework {
						ref, _ := referenceTo(dep)
						set.add(ref)
					}
					if product.IsLinkable() {
						walk(did)
					}
				case graph.NodeExternal:
					if dep.External.Kind == model.DependencyFramework && dep.External.Linking == model.LinkingDynamic {
						ref, _ := referenceTo(dep)
						set.add(ref)
					}
				case graph.NodeProject:
				}
			}
		}
		walk(graph.TargetID(path, name))
		return set.list(), nil
	})
}

// memoize returns a private copy of the cached result for key, computing it
// on a miss. Errors are never cached.
func (t *Traverser) memoize(q query, id graph.ID, compute func() ([]DependencyReference, error)) ([]DependencyReference, error) {
	key := cacheKey{query: q, id: id}
	if t.cache != nil {
		if refs, ok := t.cache.Get(key); ok {
			return clone(refs), nil
		}
	}

	refs, err := compute()
	if err != nil {
		return nil, err
	}
	if t.cache != nil {
		t.cache.Add(key, refs)
	}
	return clone(refs), nil
}

func clone(refs []DependencyReference) []DependencyReference {
	if refs == nil {
		return nil
	}
	out := make([]DependencyReference, len(refs))
	copy(out, refs)
	return out
}

// referenceSet keeps the first occurrence of every artifact.
type referenceSet struct {
	seen map[string]struct{}
	refs []DependencyReference
}

func (s *referenceSet) add(ref DependencyReference) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	key := ref.String()
	if ref.Kind == ReferenceSDK {
		key = "sdk " + ref.Name
	}
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.refs = append(s.refs, ref)
}

func (s *referenceSet) list() []DependencyReference {
	return s.refs
}
