// Package deps reports the availability of external tools the editor
// relies on.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency saveforge relies on.
type Requirement struct {
	Name        string
	Path        string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Check evaluates the provided requirements and reports availability. A
// requirement path containing a separator is checked on disk; a bare name
// is resolved through PATH.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		path := strings.TrimSpace(req.Path)
		status := Status{
			Name:        req.Name,
			Path:        path,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if path == "" {
			status.Detail = "path not configured"
			results = append(results, status)
			continue
		}
		if !strings.ContainsRune(path, os.PathSeparator) {
			if _, err := exec.LookPath(path); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found in PATH", path)
				results = append(results, status)
				continue
			}
			status.Available = true
			results = append(results, status)
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			status.Detail = fmt.Sprintf("%q not found", path)
			results = append(results, status)
			continue
		}
		if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
			status.Detail = fmt.Sprintf("%q is not executable", path)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
