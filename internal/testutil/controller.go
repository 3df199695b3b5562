package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/specialistvlad/forge/internal/toolchain"
)

// Call is one invocation seen by a RecordingController.
type Call struct {
	Action     toolchain.Action
	Invocation toolchain.Invocation
}

// RecordingController is a toolchain.Controller that records every call and
// returns the error registered for the scheme, if any.
type RecordingController struct {
	mu       sync.Mutex
	calls    []Call
	failures map[string]error
}

var _ toolchain.Controller = (*RecordingController)(nil)

// NewRecordingController creates an empty RecordingController.
func NewRecordingController() *RecordingController {
	return &RecordingController{failures: make(map[string]error)}
}

// FailScheme makes every invocation of scheme return err.
func (c *RecordingController) FailScheme(scheme string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[scheme] = err
}

// Calls returns a copy of the recorded calls, in order.
func (c *RecordingController) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Schemes returns the scheme of every recorded call, in order.
func (c *RecordingController) Schemes() []string {
	var out []string
	for _, call := range c.Calls() {
		out = append(out, call.Invocation.Scheme)
	}
	return out
}

// Build implements toolchain.Controller.
func (c *RecordingController) Build(ctx context.Context, inv toolchain.Invocation, out io.Writer) error {
	return c.record(ctx, toolchain.ActionBuild, inv, out)
}

// Test implements toolchain.Controller.
func (c *RecordingController) Test(ctx context.Context, inv toolchain.Invocation, out io.Writer) error {
	return c.record(ctx, toolchain.ActionTest, inv, out)
}

func (c *RecordingController) record(ctx context.Context, action toolchain.Action, inv toolchain.Invocation, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.calls = append(c.calls, Call{Action: action, Invocation: inv})
	err := c.failures[inv.Scheme]
	c.mu.Unlock()

	fmt.Fprintf(out, "%s %s\n", action, inv.Scheme)
	return err
}
