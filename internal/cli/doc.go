// Package cli maps the forge command line onto the App. It owns the cobra
// command tree, turns flags into an app.Config and reports failures as
// ExitError values carrying the process exit code.
package cli
