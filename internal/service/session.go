package service

import (
	"fmt"
)

// Phase is the stage a session is in.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseGenerating
	PhaseLoading
	PhaseSchemeSelection
	PhaseInvoking
	PhaseDone
	PhaseFailed
)

var phaseNames = map[Phase]string{
	PhaseNotStarted:      "not_started",
	PhaseGenerating:      "generating",
	PhaseLoading:         "loading",
	PhaseSchemeSelection: "scheme_selection",
	PhaseInvoking:        "invoking",
	PhaseDone:            "done",
	PhaseFailed:          "failed",
}

func (p Phase) String() string {
	if n, ok := phaseNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// session is the state of one build or test run.
type session struct {
	phase     Phase
	cleaned   bool
	completed []string
}

// clean reports whether the next invocation must clean. Only the first
// call of a session returns true.
func (s *session) clean() bool {
	if s.cleaned {
		return false
	}
	s.cleaned = true
	return true
}

// Report summarizes a finished session.
type Report struct {
	Phase Phase
	// Workspace is the descriptor the toolchain was invoked with.
	Workspace string
	// Selected lists the schemes chosen for the run, in order.
	Selected []string
	// Completed lists the schemes whose invocation succeeded, in order.
	Completed []string
	// Failed is the scheme whose invocation failed, if any.
	Failed string
}
