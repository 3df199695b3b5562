// Package app contains the core application logic. It wires forge's
// components for one invocation (logger, manifest loader, generator,
// inspector, toolchain and services) and exposes the commands, decoupled
// from any specific entrypoint like a CLI.
package app
