// internal/builder/editmarks.go
package builder

import (
	"fmt"

	"github.com/verkaro/editml-go"
)

// cleanEditMarks resolves EditML review markup in an article body to its clean
// view: additions kept, deletions dropped, highlights and comments stripped.
func cleanEditMarks(body []byte) ([]byte, error) {
	nodes, parseIssues := editml.Parse(string(body))
	if len(parseIssues) > 0 && parseIssues[0].Severity == editml.SeverityError {
		return nil, fmt.Errorf("editml parsing error: %s", parseIssues[0].Message)
	}
	clean, transformIssues := editml.TransformCleanView(nodes)
	if len(transformIssues) > 0 && transformIssues[0].Severity == editml.SeverityError {
		return nil, fmt.Errorf("editml transformation error: %s", transformIssues[0].Message)
	}
	return []byte(clean), nil
}
