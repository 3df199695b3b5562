package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/specialistvlad/forge/internal/ctxlog"
)

// DefaultBinary is the toolchain executable used when none is configured.
const DefaultBinary = "xcodebuild"

// DefaultTailLines is how many stderr lines an InvocationError carries.
const DefaultTailLines = 20

// DefaultWaitDelay bounds how long output is still read once the toolchain
// has exited or been cancelled.
const DefaultWaitDelay = 5 * time.Second

// XcodeBuild is the Controller that runs the toolchain as a child process.
type XcodeBuild struct {
	binary    string
	tailLines int
	waitDelay time.Duration
}

var _ Controller = (*XcodeBuild)(nil)

// NewXcodeBuild creates a controller running binary. An empty binary means DefaultBinary.
func NewXcodeBuild(binary string) *XcodeBuild {
	if binary == "" {
		binary = DefaultBinary
	}
	return &XcodeBuild{binary: binary, tailLines: DefaultTailLines, waitDelay: DefaultWaitDelay}
}

// Build runs the build action.
func (x *XcodeBuild) Build(ctx context.Context, inv Invocation, out io.Writer) error {
	return x.run(ctx, ActionBuild, inv, out)
}

// Test runs the test action.
func (x *XcodeBuild) Test(ctx context.Context, inv Invocation, out io.Writer) error {
	return x.run(ctx, ActionTest, inv, out)
}

func (x *XcodeBuild) run(ctx context.Context, action Action, inv Invocation, out io.Writer) error {
	logger := ctxlog.FromContext(ctx)
	args := inv.Args(action)
	logger.Debug("Running toolchain.", "binary", x.binary, "args", args)

	// Both streams go to the same writer, one whole line at a time.
	var writeMu sync.Mutex
	tail := newTail(x.tailLines)
	stdout := &lineWriter{mu: &writeMu, out: out}
	stderr := &lineWriter{mu: &writeMu, out: out, tail: tail}

	cmd := exec.CommandContext(ctx, x.binary, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// Cancellation kills the whole process group. Subprocesses that leave it
	// while holding the output open are cut off after the wait delay.
	killProcessGroup(cmd)
	cmd.WaitDelay = x.waitDelay

	if err := cmd.Start(); err != nil {
		return &InvocationError{Action: action, Scheme: inv.Scheme, ExitCode: -1, Err: err}
	}
	err := cmd.Wait()
	stdout.flush()
	stderr.flush()

	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrWaitDelay) && ctx.Err() == nil {
		logger.Warn("Toolchain exited but its output stayed open; remaining output was dropped.", "scheme", inv.Scheme)
		return nil
	}
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	return &InvocationError{Action: action, Scheme: inv.Scheme, ExitCode: code, Output: tail.lines(), Err: err}
}

// lineWriter splits what the toolchain writes into lines of any length and
// forwards them to out under mu. Each lineWriter is fed by one goroutine.
type lineWriter struct {
	mu   *sync.Mutex
	out  io.Writer
	tail *tail
	buf  []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	rest := w.buf
	for {
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			break
		}
		w.emit(string(rest[:i]))
		rest = rest[i+1:]
	}
	w.buf = append(w.buf[:0], rest...)
	return len(p), nil
}

// flush emits a trailing line that had no newline.
func (w *lineWriter) flush() {
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

func (w *lineWriter) emit(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, line)
	if w.tail != nil {
		w.tail.add(line)
	}
}

// tail keeps the last n lines written to it.
type tail struct {
	n   int
	buf []string
}

func newTail(n int) *tail {
	return &tail{n: n}
}

func (t *tail) add(line string) {
	if t.n <= 0 {
		return
	}
	if len(t.buf) == t.n {
		t.buf = t.buf[1:]
	}
	t.buf = append(t.buf, line)
}

func (t *tail) lines() []string {
	return append([]string(nil), t.buf...)
}
