// Package generator turns manifests on disk into a validated graph.
//
// GraphLoader reads the workspace or project at a path and follows project
// dependencies until every referenced project is loaded. Generator adds
// linting on top and, when generating, applies mapper side effects and
// writes the workspace descriptor the toolchain opens.
package generator
