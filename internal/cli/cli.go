package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/forge/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// globals are the flags shared by every command.
type globals struct {
	path            string
	logLevel        string
	logFormat       string
	healthcheckPort int
	xcodebuild      string
}

// Execute runs the command line args against a new App writing to out. The
// returned error, if any, is always an *ExitError.
func Execute(ctx context.Context, out io.Writer, args []string, opts ...app.Option) error {
	root := NewRootCommand(out, opts...)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return usageError(err)
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

// NewRootCommand builds the forge command tree. Flag defaults come from the
// environment (see app.Defaults); flags override them.
func NewRootCommand(out io.Writer, opts ...app.Option) *cobra.Command {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	defaults := app.Defaults(cwd)
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "forge",
		Short: "Generate native projects from HCL manifests and drive their builds",
		Long: `forge reads Project.hcl and Workspace.hcl manifests, builds the dependency
graph of their targets, generates the workspace and drives the toolchain to
build and test its schemes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVarP(&g.path, "path", "p", defaults.Path, "Directory holding the workspace or project manifest.")
	flags.StringVar(&g.logLevel, "log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&g.logFormat, "log-format", defaults.LogFormat, "Log output format. Options: 'text', 'logfmt' or 'json'.")
	flags.IntVar(&g.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	flags.StringVar(&g.xcodebuild, "xcodebuild", defaults.XcodeBuild, "Toolchain executable.")

	cmd.AddCommand(
		newBuildCommand(g, out, opts),
		newTestCommand(g, out, opts),
		newDepsCommand(g, out, opts),
		newLintCommand(g, out, opts),
	)
	return cmd
}

// maxArgs is cobra.MaximumNArgs reporting a usage error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// withApp validates the global flags, starts an App, runs fn and closes the App.
func withApp(ctx context.Context, g *globals, out io.Writer, opts []app.Option, fn func(*app.App) error) error {
	cfg, err := app.NewConfig(app.Config{
		Path:            g.path,
		LogLevel:        g.logLevel,
		LogFormat:       g.logFormat,
		HealthcheckPort: g.healthcheckPort,
		XcodeBuild:      g.xcodebuild,
	})
	if err != nil {
		return usageError(err)
	}

	a := app.NewApp(out, cfg, opts...)
	if err := a.Start(); err != nil {
		return err
	}
	defer func() {
		_ = a.Close(ctx)
	}()

	return fn(a)
}
