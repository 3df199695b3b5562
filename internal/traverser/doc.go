// Package traverser answers linkage questions over an already-built graph:
// which products a target flattens statically, which binaries it links and
// which frameworks must be copied into its bundle.
//
// Every query is pure. Because the graph is immutable, results are memoized
// in a bounded LRU cache keyed by the query and the target identity.
package traverser
