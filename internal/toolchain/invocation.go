package toolchain

import (
	"context"
	"io"
	"strings"
)

// Action is the toolchain action to run.
type Action string

const (
	ActionBuild Action = "build"
	ActionTest  Action = "test"
)

// Argument is one flag/value pair passed to the toolchain.
type Argument struct {
	Flag  string
	Value string
}

// SDK selects the SDK to build against.
func SDK(name string) Argument { return Argument{Flag: "-sdk", Value: name} }

// Configuration selects the build configuration.
func Configuration(name string) Argument { return Argument{Flag: "-configuration", Value: name} }

// Destination selects the run destination.
func Destination(specifier string) Argument {
	return Argument{Flag: "-destination", Value: specifier}
}

// DerivedDataPath overrides where intermediate products are written.
func DerivedDataPath(path string) Argument { return Argument{Flag: "-derivedDataPath", Value: path} }

// Args renders the argument as command-line words.
func (a Argument) Args() []string {
	return []string{a.Flag, a.Value}
}

func (a Argument) String() string {
	return a.Flag + " " + a.Value
}

// Invocation describes one toolchain run for a scheme.
type Invocation struct {
	Workspace string
	Scheme    string
	// Clean runs the clean action before the requested one.
	Clean     bool
	Arguments []Argument
}

// Args renders the full argument list for action.
func (i Invocation) Args(action Action) []string {
	args := []string{"-workspace", i.Workspace, "-scheme", i.Scheme}
	if i.Clean {
		args = append(args, "clean")
	}
	args = append(args, string(action))
	for _, a := range i.Arguments {
		args = append(args, a.Args()...)
	}
	return args
}

func (i Invocation) String() string {
	return strings.Join(i.Args(ActionBuild), " ")
}

// Controller runs toolchain actions. Both methods block until the process
// exits and its output has been written to out.
type Controller interface {
	Build(ctx context.Context, inv Invocation, out io.Writer) error
	Test(ctx context.Context, inv Invocation, out io.Writer) error
}
