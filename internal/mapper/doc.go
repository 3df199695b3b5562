// Package mapper transforms loaded projects before they enter the graph.
// A mapper never mutates its input: it returns a new project plus the side
// effects that generation must apply to disk. Loading alone discards the
// side effects.
package mapper
