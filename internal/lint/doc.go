// Package lint validates loaded projects before a graph is handed to
// generation or orchestration. Findings are Issues with a severity: warnings
// are logged, errors abort the command once every issue has been reported.
package lint
