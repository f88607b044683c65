package resolve

import (
	"os"
	"path/filepath"
)

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// canonicalize resolves symlinks so two paths that canonicalize equal are
// treated as the same node. If resolution fails (e.g. a race with file
// deletion), the original path is returned unchanged.
func canonicalize(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
