// Package workspace classifies a root path into one or more projects: a
// project is a directory containing a package manifest and, in workspace
// mode, a version-control marker. Nested projects are flattened, outermost
// wins.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/spinnegraph/spinne/pkg/types"
)

// manifestName is the package manifest file that marks a project root.
const manifestName = "package.json"

// vcsMarker is the version-control marker required alongside the manifest
// for workspace-mode project detection.
const vcsMarker = ".git"

// skipDirs lists directory names that are never descended into, regardless
// of exclude globs.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// Resolver walks a directory tree and classifies it into projects.
type Resolver struct{}

// NewResolver creates a Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve walks rootPath and returns the ordered list of projects found.
// excludeGlobs are matched against paths relative to rootPath (POSIX
// separators) and prune the walk, mirroring the File Discoverer's exclude
// semantics at the directory level. If no project is found anywhere in the
// tree, rootPath itself becomes a single anonymous project. Entries the walk
// cannot read are skipped with a warning printed directly to os.Stderr, not
// through a spinnelog.Logger.
func (r *Resolver) Resolve(rootPath string, excludeGlobs []string) ([]*types.Project, error) {
	info, err := os.Stat(rootPath)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidRoot, rootPath)
	}

	canonicalRoot, err := filepath.EvalSymlinks(rootPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidRoot, rootPath, err)
	}

	var projects []*types.Project

	err = filepath.WalkDir(canonicalRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		relPath, relErr := filepath.Rel(canonicalRoot, path)
		if relErr != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if relPath != "." {
			name := d.Name()
			if strings.HasPrefix(name, ".") && name != "." {
				return fs.SkipDir
			}
			if skipDirs[name] {
				return fs.SkipDir
			}
			if matchesAny(excludeGlobs, relPath) {
				return fs.SkipDir
			}
		}

		if isProjectDir(path) {
			projects = append(projects, newProject(path))
			return fs.SkipDir // outermost wins: don't rescan the subtree
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk error: %w", err)
	}

	if len(projects) == 0 {
		projects = append(projects, anonymousProject(canonicalRoot))
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].RootPath < projects[j].RootPath
	})

	return projects, nil
}

// isProjectDir reports whether dir contains both a package manifest and a
// version-control marker.
func isProjectDir(dir string) bool {
	if !fileExists(filepath.Join(dir, manifestName)) {
		return false
	}
	return dirExists(filepath.Join(dir, vcsMarker))
}

func newProject(root string) *types.Project {
	name, manifestPath := readManifestName(root)
	return &types.Project{
		Name:            name,
		RootPath:        root,
		PackageManifest: manifestPath,
		TSConfigPath:    tsconfigPath(root),
	}
}

func anonymousProject(root string) *types.Project {
	return &types.Project{
		Name:         filepath.Base(root),
		RootPath:     root,
		TSConfigPath: tsconfigPath(root),
	}
}

// tsconfigPath returns the absolute path to root's tsconfig.json, or "" if
// the project has none.
func tsconfigPath(root string) string {
	path := filepath.Join(root, "tsconfig.json")
	if fileExists(path) {
		return path
	}
	return ""
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

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
