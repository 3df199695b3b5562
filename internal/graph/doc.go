// Package graph holds the project dependency graph: every target, project and
// external artifact of one invocation, and the edges between them.
//
// # Lifecycle
//
//  1. Created once with New from the loaded projects (and workspace, if any).
//  2. Validated during New: identity collisions, unresolved dependencies and
//     dependency cycles are reported as a *ConstructionError.
//  3. Queried read-only by the traverser and the inspector.
//  4. Discarded when the process exits.
//
// Because the graph is never mutated after New returns, every query is safe
// for concurrent use without locking.
//
// # Nodes
//
// A Node is a tagged union over NodeTarget, NodeProject and NodeExternal.
// Exactly one of the variant pointers is set, matching Kind. Callers switch on
// Kind instead of inspecting dynamic types.
package graph
