// Package inspector answers the questions orchestration asks of a graph:
// where the workspace descriptor is, which schemes can be built or tested,
// which target a scheme stands for and how the toolchain must be invoked for
// it.
package inspector
