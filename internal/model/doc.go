// Package model holds the format-agnostic description of projects, targets,
// schemes and workspaces that the manifest loader produces and the graph
// consumes. Values are built once per invocation and never mutated after the
// graph is constructed.
package model
