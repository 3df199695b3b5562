package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/forge/internal/app"
)

func newBuildCommand(g *globals, out io.Writer, opts []app.Option) *cobra.Command {
	var req app.BuildRequest

	cmd := &cobra.Command{
		Use:   "build [scheme]",
		Short: "Build every buildable scheme, or only the named one",
		Long: `Build generates the workspace when none exists (or when --generate is
passed), then builds the selected schemes in name order. The first build
cleans; a failing scheme aborts the remaining ones.`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Scheme = args[0]
			}
			return withApp(cmd.Context(), g, out, opts, func(a *app.App) error {
				_, err := a.Build(cmd.Context(), req)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&req.Generate, "generate", false, "Regenerate the workspace even when it exists.")
	cmd.Flags().BoolVar(&req.Device, "device", false, "Build for physical devices instead of the simulator.")
	cmd.Flags().StringVar(&req.Configuration, "configuration", "", "Build configuration, e.g. Debug or Release.")
	cmd.Flags().StringVar(&req.Destination, "destination", "", "Toolchain destination specifier, e.g. 'platform=iOS Simulator,name=iPhone 15'.")
	cmd.Flags().StringVar(&req.DerivedDataPath, "derived-data-path", "", "Directory for intermediate build products.")
	return cmd
}

func newTestCommand(g *globals, out io.Writer, opts []app.Option) *cobra.Command {
	var req app.TestRequest

	cmd := &cobra.Command{
		Use:   "test [scheme]",
		Short: "Test every testable scheme, or only the named one",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Scheme = args[0]
			}
			return withApp(cmd.Context(), g, out, opts, func(a *app.App) error {
				_, err := a.Test(cmd.Context(), req)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&req.Configuration, "configuration", "", "Build configuration, e.g. Debug or Release.")
	cmd.Flags().StringVar(&req.Destination, "destination", "", "Toolchain destination specifier.")
	cmd.Flags().StringVar(&req.DerivedDataPath, "derived-data-path", "", "Directory for intermediate build products.")
	return cmd
}

func newDepsCommand(g *globals, out io.Writer, opts []app.Option) *cobra.Command {
	return &cobra.Command{
		Use:   "deps <[project-path:]target>",
		Short: "Print the static, linkable and embeddable dependencies of a target",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), g, out, opts, func(a *app.App) error {
				deps, err := a.Dependencies(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				deps.Print(cmd.OutOrStdout(), a.Path())
				return nil
			})
		},
	}
}

func newLintCommand(g *globals, out io.Writer, opts []app.Option) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Lint the manifests",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), g, out, opts, func(a *app.App) error {
				_, err := a.Lint(cmd.Context())
				return err
			})
		},
	}
}
