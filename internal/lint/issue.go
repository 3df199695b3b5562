package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/forge/internal/ctxlog"
)

// Severity tells whether an Issue blocks the command.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is a single linter finding.
type Issue struct {
	Reason   string
	Severity Severity
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Severity, i.Reason)
}

func warning(format string, args ...any) Issue {
	return Issue{Reason: fmt.Sprintf(format, args...), Severity: SeverityWarning}
}

func failure(format string, args ...any) Issue {
	return Issue{Reason: fmt.Sprintf(format, args...), Severity: SeverityError}
}

// Issues is an ordered list of findings.
type Issues []Issue

// Errors returns the issues with error severity.
func (is Issues) Errors() Issues {
	var out Issues
	for _, i := range is {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// Err returns an *Error when any issue has error severity.
func (is Issues) Err() error {
	errs := is.Errors()
	if len(errs) == 0 {
		return nil
	}
	return &Error{Issues: errs}
}

// Report logs every issue, warnings first, and returns Err.
func (is Issues) Report(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	for _, i := range is {
		if i.Severity == SeverityWarning {
			logger.Warn(i.Reason)
		}
	}
	for _, i := range is {
		if i.Severity == SeverityError {
			logger.Error(i.Reason)
		}
	}
	return is.Err()
}

// Error is returned when linting found blocking issues.
type Error struct {
	Issues Issues
}

func (e *Error) Error() string {
	reasons := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		reasons[i] = issue.Reason
	}
	return fmt.Sprintf("linting failed with %d error(s):\n%s", len(e.Issues), strings.Join(reasons, "\n"))
}
