// Package discover finds the set of TSX/TS files to analyze within a
// project, given include/exclude glob sets merged from defaults, config
// file, and CLI flags.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/spinnegraph/spinne/pkg/types"
)

// DefaultInclude is the include glob set applied when a project declares
// none of its own. Plain .ts files are included alongside .tsx so that
// barrels and re-export-only modules (import/index.ts, lib/src/index.ts)
// are discovered and indexed even though they hold no JSX themselves; the
// resolver routinely resolves import specifiers onto exactly these files.
var DefaultInclude = []string{"**/*.tsx", "**/*.ts"}

// DefaultExclude is the exclude glob set applied regardless of project or
// CLI configuration; it is unioned with anything the project supplies.
var DefaultExclude = []string{
	"**/node_modules/**",
	"**/dist/**",
	"**/build/**",
	"**/*.d.ts",
	"**/*.stories.tsx",
	"**/*.test.tsx",
	"**/*.test.ts",
	"**/*.spec.tsx",
	"**/*.spec.ts",
}

// skipDirs are never descended into while walking for candidate files.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
}

// Discoverer walks a project root and yields the deduplicated,
// lexicographically sorted list of absolute file paths to analyze.
type Discoverer struct{}

// NewDiscoverer creates a Discoverer.
func NewDiscoverer() *Discoverer {
	return &Discoverer{}
}

// Discover returns the sorted, deduplicated list of absolute file paths
// matching project's merged include/exclude glob sets.
func (disc *Discoverer) Discover(project *types.Project) ([]string, error) {
	includes := DefaultInclude
	if len(project.IncludeGlobs) > 0 {
		includes = unionGlobs(nil, project.IncludeGlobs)
	}
	excludes := unionGlobs(DefaultExclude, project.ExcludeGlobs)

	var gitIgnore *ignore.GitIgnore
	gitignorePath := filepath.Join(project.RootPath, ".gitignore")
	if fileExists(gitignorePath) {
		if gi, err := ignore.CompileIgnoreFile(gitignorePath); err == nil {
			gitIgnore = gi
		}
	}

	seen := make(map[string]bool)
	var files []string

	walkErr := filepath.WalkDir(project.RootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if path != project.RootPath && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		relPath, relErr := filepath.Rel(project.RootPath, path)
		if relErr != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if !matchesAny(includes, relPath) {
			return nil
		}
		if matchesAny(excludes, relPath) {
			return nil
		}
		if gitIgnore != nil && gitIgnore.MatchesPath(relPath) {
			return nil
		}

		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			return nil
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(files)
	return files, nil
}

// unionGlobs merges two glob sets, deduplicating while preserving defaults
// first, then the caller-supplied set.
func unionGlobs(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, g := range base {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	for _, g := range extra {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

func matchesAny(globs []string, relPath string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, relPath); ok {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
