// Package service implements the build and test commands: obtain a graph
// (generating the workspace when needed), select schemes, then drive the
// toolchain once per scheme.
//
// A run is a session that moves through the phases
//
//	NotStarted -> Generating|Loading -> SchemeSelection -> Invoking -> Done
//
// or ends in Failed. Every graph-level check, including target and argument
// resolution for all selected schemes, happens before the first toolchain
// process starts. Invocations are sequential and the first failure aborts
// the rest. Only the first invocation of a session cleans.
package service
