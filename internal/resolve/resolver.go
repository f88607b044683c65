// Package resolve implements module specifier resolution: relative imports,
// tsconfig.json path-mapping, and the bare/unresolved fallback, trying
// candidate extensions and index files in turn.
package resolve

import (
	"path/filepath"
	"strings"
	"sync"
)

// candidateSuffixes are tried, in order, against a resolved relative base
// path. The first candidate that exists on disk wins.
var candidateSuffixes = []string{
	"",
	".tsx",
	".ts",
	".jsx",
	".js",
	"/index.tsx",
	"/index.ts",
	"/index.jsx",
	"/index.js",
}

// FileExister abstracts filesystem existence checks so tests can run
// against an in-memory fixture instead of the real filesystem.
type FileExister interface {
	FileExists(path string) bool
}

// osFileExister checks the real filesystem.
type osFileExister struct{}

func (osFileExister) FileExists(path string) bool {
	return fileExists(path)
}

// Resolver resolves module specifiers to absolute filesystem paths.
type Resolver struct {
	exister FileExister

	mu        sync.Mutex
	tsconfigs map[string]*TSConfig // tsconfig path -> parsed config, memoized
}

// NewResolver creates a Resolver backed by the real filesystem.
func NewResolver() *Resolver {
	return &Resolver{exister: osFileExister{}, tsconfigs: make(map[string]*TSConfig)}
}

// NewResolverWithExister creates a Resolver backed by a custom FileExister,
// for testing against an in-memory fixture.
func NewResolverWithExister(exister FileExister) *Resolver {
	return &Resolver{exister: exister, tsconfigs: make(map[string]*TSConfig)}
}

// Resolve resolves specifier as imported from importingFile. tsconfigPath,
// if non-empty, is the absolute path to the enclosing project's
// tsconfig.json and is consulted for compilerOptions.paths when specifier
// is neither relative nor already resolved. Symbolic links are resolved to
// their canonical form so that two paths that canonicalize equal are
// treated as the same node.
func (r *Resolver) Resolve(importingFile, specifier, tsconfigPath string) (string, bool) {
	if isRelative(specifier) {
		base := filepath.Join(filepath.Dir(importingFile), specifier)
		return r.tryCandidates(base)
	}

	if tsconfigPath != "" {
		cfg := r.loadTSConfig(tsconfigPath)
		if cfg != nil {
			if abs, ok := r.resolvePathMapped(cfg, specifier); ok {
				return abs, true
			}
		}
	}

	return "", false
}

// resolvePathMapped tries each compilerOptions.paths pattern in declaration
// order, binding the `*` wildcard greedily, and resolves the substituted
// target relative to baseUrl using the same candidate-suffix rules as a
// relative import.
func (r *Resolver) resolvePathMapped(cfg *TSConfig, specifier string) (string, bool) {
	for _, mapping := range cfg.Paths {
		substituted, ok := matchPattern(mapping.Pattern, specifier)
		if !ok {
			continue
		}
		for _, target := range mapping.Targets {
			targetPath := substituteWildcard(target, substituted)
			base := filepath.Join(cfg.BaseURL, targetPath)
			if abs, found := r.tryCandidates(base); found {
				return abs, true
			}
		}
	}
	return "", false
}

// matchPattern checks whether specifier matches a paths pattern (which may
// contain one `*` wildcard), returning the text the wildcard captured.
// Patterns without a wildcard must match specifier exactly.
func matchPattern(pattern, specifier string) (string, bool) {
	idx := strings.IndexByte(pattern, '*')
	if idx < 0 {
		if pattern == specifier {
			return "", true
		}
		return "", false
	}

	prefix, suffix := pattern[:idx], pattern[idx+1:]
	if !strings.HasPrefix(specifier, prefix) || !strings.HasSuffix(specifier, suffix) {
		return "", false
	}
	if len(specifier) < len(prefix)+len(suffix) {
		return "", false
	}
	return specifier[len(prefix) : len(specifier)-len(suffix)], true
}

// substituteWildcard replaces the `*` in target with captured, or returns
// target unchanged if it has no wildcard.
func substituteWildcard(target, captured string) string {
	if idx := strings.IndexByte(target, '*'); idx >= 0 {
		return target[:idx] + captured + target[idx+1:]
	}
	return target
}

// tryCandidates tries each candidate suffix against base, in order,
// returning the canonical absolute path of the first one that exists.
func (r *Resolver) tryCandidates(base string) (string, bool) {
	for _, suffix := range candidateSuffixes {
		candidate := base + suffix
		if r.exister.FileExists(candidate) {
			return canonicalize(candidate), true
		}
	}
	return "", false
}

// loadTSConfig loads and memoizes a tsconfig.json by absolute path.
func (r *Resolver) loadTSConfig(path string) *TSConfig {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.tsconfigs[path]; ok {
		return cfg
	}
	cfg, _ := LoadTSConfig(path)
	r.tsconfigs[path] = cfg
	return cfg
}

func isRelative(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}
