// Package testutil holds helpers shared by forge's tests: a thread-safe log
// buffer, manifest fixtures written to a temporary directory and a toolchain
// controller that records invocations instead of running a process.
package testutil
