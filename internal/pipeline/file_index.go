package pipeline

import (
	"github.com/spinnegraph/spinne/internal/extract"
	"github.com/spinnegraph/spinne/internal/resolve"
)

// fileIndex is the whole-workspace view of every parsed file, implementing
// registry.FileIndex so re-export chains and import resolution can cross
// project boundaries. Built once per Run after every project has finished
// parsing, so cross-project edges are resolved during aggregation rather
// than while any individual project is still being extracted.
type fileIndex struct {
	resolver *resolve.Resolver

	extractions map[string]*extract.Extraction
	roots       map[string]string
	tsconfigs   map[string]string
	names       map[string]string
}

func newFileIndex(entries []parsedEntry) *fileIndex {
	idx := &fileIndex{
		resolver:    resolve.NewResolver(),
		extractions: make(map[string]*extract.Extraction, len(entries)),
		roots:       make(map[string]string, len(entries)),
		tsconfigs:   make(map[string]string, len(entries)),
		names:       make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		idx.extractions[e.absPath] = e.ex
		idx.roots[e.absPath] = e.project.RootPath
		idx.tsconfigs[e.absPath] = e.project.TSConfigPath
		idx.names[e.absPath] = e.project.Name
	}
	return idx
}

func (idx *fileIndex) Extraction(absPath string) (*extract.Extraction, bool) {
	ex, ok := idx.extractions[absPath]
	return ex, ok
}

func (idx *fileIndex) ProjectRoot(absPath string) string {
	return idx.roots[absPath]
}

func (idx *fileIndex) TSConfigPath(absPath string) string {
	return idx.tsconfigs[absPath]
}

func (idx *fileIndex) ProjectName(absPath string) string {
	return idx.names[absPath]
}
