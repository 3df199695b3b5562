//go:build !unix

package toolchain

import "os/exec"

// killProcessGroup keeps the default cancellation, which kills the direct child only.
func killProcessGroup(*exec.Cmd) {}
