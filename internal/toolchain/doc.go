// Package toolchain drives the external compiler toolchain. The Controller
// interface is what orchestration depends on; XcodeBuild is the process-backed
// implementation.
package toolchain
