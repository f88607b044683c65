// Package registry assigns every discovered component a stable identity
// keyed by (canonical project root, canonical file path, exported name) and
// deduplicates across files. It also follows re-export chains so that a
// binding imported through a barrel file resolves to the id of its
// original definition site.
package registry

import (
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/spinnegraph/spinne/internal/extract"
	"github.com/spinnegraph/spinne/internal/resolve"
	"github.com/spinnegraph/spinne/pkg/types"
)

// MaxReexportDepth bounds re-export chain following. Exceeding it is
// reported as a ReexportCycleRecord and the binding resolves to Unresolved.
const MaxReexportDepth = 16

// FileIndex gives the Registry access to every file's extraction and
// project context across the whole workspace, so re-export chains can be
// followed even when they cross project boundaries.
type FileIndex interface {
	// Extraction returns the JSX Extractor output for absPath, if it was
	// parsed during this run.
	Extraction(absPath string) (*extract.Extraction, bool)
	// ProjectRoot returns the canonical root of the project that owns
	// absPath, or "" if absPath is outside every known project.
	ProjectRoot(absPath string) string
	// TSConfigPath returns the tsconfig.json path governing absPath's
	// project, or "" if it has none.
	TSConfigPath(absPath string) string
	// ProjectName returns the display name of the project that owns
	// absPath, or "" if absPath is outside every known project.
	ProjectName(absPath string) string
}

// canonicalKey is the registry's dedup key.
type canonicalKey struct {
	projectRoot  string
	filePath     string
	exportedName string
}

// Registry assigns and memoizes ComponentDefinition identities.
type Registry struct {
	resolver *resolve.Resolver

	mu     sync.Mutex
	byKey  map[canonicalKey]*types.ComponentDefinition
	byID   map[string]*types.ComponentDefinition
	cycles []types.ReexportCycleRecord
}

// New creates an empty Registry.
func New(resolver *resolve.Resolver) *Registry {
	return &Registry{
		resolver: resolver,
		byKey:    make(map[canonicalKey]*types.ComponentDefinition),
		byID:     make(map[string]*types.ComponentDefinition),
	}
}

// ComponentID computes the stable 64-bit FNV-1a hash, serialized as a
// decimal string, for the canonical (project root, file path, exported
// name) triple. Deterministic across runs.
func ComponentID(projectRoot, filePath, exportedName string) string {
	h := fnv.New64a()
	h.Write([]byte(projectRoot))
	h.Write([]byte{0})
	h.Write([]byte(filePath))
	h.Write([]byte{0})
	h.Write([]byte(exportedName))
	return strconv.FormatUint(h.Sum64(), 10)
}

// Define registers a component at its original definition site and returns
// its ComponentDefinition. Calling Define again for the same canonical key
// merges declaredProps into the existing definition (union across a
// component's defining occurrences) rather than creating a duplicate node.
func (r *Registry) Define(projectRoot, filePath, exportedName string, declaredProps map[string]struct{}) *types.ComponentDefinition {
	key := canonicalKey{projectRoot, filePath, exportedName}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byKey[key]; ok {
		for p := range declaredProps {
			existing.DeclaredProps[p] = struct{}{}
		}
		return existing
	}

	def := &types.ComponentDefinition{
		ID:            ComponentID(projectRoot, filePath, exportedName),
		ProjectRoot:   projectRoot,
		FilePath:      filePath,
		ExportedName:  exportedName,
		DeclaredProps: cloneSet(declaredProps),
	}
	r.byKey[key] = def
	r.byID[def.ID] = def
	return def
}

// Lookup returns a previously Defined component by id.
func (r *Registry) Lookup(id string) (*types.ComponentDefinition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.byID[id]
	return def, ok
}

// Cycles returns every ReexportCycleRecord observed so far.
func (r *Registry) Cycles() []types.ReexportCycleRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.ReexportCycleRecord(nil), r.cycles...)
}

func (r *Registry) recordCycle(file, specifier string, depth int) {
	r.mu.Lock()
	r.cycles = append(r.cycles, types.ReexportCycleRecord{File: file, ModuleSpecifier: specifier, Depth: depth})
	r.mu.Unlock()
}

func cloneSet(s map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}
