// Package graph resolves JSX usage sites into directed component-to-component
// edges and upserts them into per-project graphs, following the tie-break
// and cross-project attribution rules of the JSX Extractor and Component
// Registry.
package graph

import (
	"sync"

	"github.com/spinnegraph/spinne/internal/extract"
	"github.com/spinnegraph/spinne/internal/registry"
	"github.com/spinnegraph/spinne/internal/resolve"
	"github.com/spinnegraph/spinne/internal/spinnelog"
	"github.com/spinnegraph/spinne/internal/tscommon"
	"github.com/spinnegraph/spinne/pkg/types"
)

// Builder accumulates one Graph per project as files are added to it.
type Builder struct {
	registry *registry.Registry
	resolver *resolve.Resolver
	logger   *spinnelog.Logger

	mu     sync.Mutex
	graphs map[string]*types.Graph // keyed by project name
}

// NewBuilder creates an empty Builder backed by reg and res.
func NewBuilder(reg *registry.Registry, res *resolve.Resolver) *Builder {
	return &Builder{
		registry: reg,
		resolver: res,
		logger:   spinnelog.Discard(),
		graphs:   make(map[string]*types.Graph),
	}
}

// SetLogger routes resolution-failure diagnostics (a usage site dropped,
// logged at debug level) to l instead of discarding them.
func (b *Builder) SetLogger(l *spinnelog.Logger) {
	b.logger = l
}

// Graph returns the graph for the named project, creating an empty one if
// the project has produced no edges yet (e.g. a project with files but no
// JSX usages).
func (b *Builder) Graph(projectName string) *types.Graph {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.graphOrCreate(projectName)
}

func (b *Builder) graphOrCreate(projectName string) *types.Graph {
	g, ok := b.graphs[projectName]
	if !ok {
		g = types.NewGraph(projectName)
		b.graphs[projectName] = g
	}
	return g
}

// Graphs returns every project graph built so far, keyed by project name.
func (b *Builder) Graphs() map[string]*types.Graph {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]*types.Graph, len(b.graphs))
	for k, v := range b.graphs {
		out[k] = v
	}
	return out
}

// AddFile resolves every usage site in ex against project's imports and
// local declarations, upserting nodes and edges into project's graph. relPath
// is absPath expressed relative to project.RootPath, with POSIX separators.
func (b *Builder) AddFile(project *types.Project, absPath, relPath string, ex *extract.Extraction, idx registry.FileIndex) {
	for _, u := range ex.Usages {
		b.addUsage(project, absPath, relPath, ex, u, idx)
	}
}

func (b *Builder) addUsage(project *types.Project, absPath, relPath string, ex *extract.Extraction, u extract.UsageSite, idx registry.FileIndex) {
	calleeID, calleeProjectRoot, calleeProjectName, ok := b.resolveCallee(project, absPath, relPath, ex, u, idx)
	if !ok {
		return
	}

	callerDef := b.registry.Define(project.RootPath, relPath, u.ContainingDefName, nil)
	calleeDef, ok := b.registry.Lookup(calleeID)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	g := b.graphOrCreate(project.Name)
	g.Nodes[callerDef.ID] = callerDef
	g.Nodes[calleeDef.ID] = calleeDef

	projectContext := project.Name
	if calleeProjectRoot != project.RootPath {
		projectContext = calleeProjectName
	}

	key := types.EdgeKey{From: callerDef.ID, To: calleeDef.ID}
	edge, ok := g.Edges[key]
	if !ok {
		edge = &types.Edge{
			From:           callerDef.ID,
			To:             calleeDef.ID,
			ProjectContext: projectContext,
			PropUsage:      make(map[string]int),
		}
		g.Edges[key] = edge
	}
	for name, count := range u.Props {
		edge.PropUsage[name] += count
	}
	if u.HasSpread {
		edge.HasSpreadAny = true
	}
}

// resolveCallee resolves a JSX tag's callee: an import binding always wins
// over a same-named local declaration. Returns
// ok=false for host elements, unresolved bare-module imports, and tags that
// match neither an import nor a local declaration.
func (b *Builder) resolveCallee(project *types.Project, absPath, relPath string, ex *extract.Extraction, u extract.UsageSite, idx registry.FileIndex) (id, projectRoot, projectName string, ok bool) {
	if rec, imported := ex.Imports[u.FirstSegment]; imported {
		return b.resolveImportedCallee(project, absPath, rec, u, idx)
	}

	if !tscommon.IsCapitalized(u.FirstSegment) {
		return "", "", "", false // host DOM element, excluded from the graph
	}

	for _, def := range ex.LocalDefinitions {
		if def.Name == u.FirstSegment {
			local := b.registry.Define(project.RootPath, relPath, def.Name, nil)
			return local.ID, project.RootPath, project.Name, true
		}
	}

	return "", "", "", false
}

func (b *Builder) resolveImportedCallee(project *types.Project, absPath string, rec types.ImportRecord, u extract.UsageSite, idx registry.FileIndex) (id, projectRoot, projectName string, ok bool) {
	target, resolved := b.resolver.Resolve(absPath, rec.ModuleSpecifier, project.TSConfigPath)
	if !resolved {
		b.logger.Debug("unresolved import, no graph node", "file", absPath, "specifier", rec.ModuleSpecifier)
		return "", "", "", false // bare/third-party import: acknowledged, never a node
	}

	targetProjectRoot := idx.ProjectRoot(target)
	if targetProjectRoot == "" {
		targetProjectRoot = project.RootPath
	}
	targetTSConfig := idx.TSConfigPath(target)
	targetProjectName := idx.ProjectName(target)
	if targetProjectName == "" {
		targetProjectName = project.Name
	}

	exportedName := exportedNameFor(rec, u)
	if exportedName == "" {
		return "", "", "", false // namespace import used bare, no member access
	}

	resolvedID, found := b.registry.FollowExport(targetProjectRoot, targetTSConfig, target, exportedName, idx)
	if !found {
		b.logger.Debug("export not found following re-export chain", "file", target, "name", exportedName)
		return "", "", "", false
	}
	return resolvedID, targetProjectRoot, targetProjectName, true
}

// exportedNameFor determines which exported name a usage site's tag resolves
// to, given the ImportRecord bound to its first tag segment.
func exportedNameFor(rec types.ImportRecord, u extract.UsageSite) string {
	switch rec.Kind {
	case types.Default:
		return "default"
	case types.Namespace:
		return u.MemberName // "" when the namespace import itself is tagged with no member
	default: // types.Named
		if rec.ImportedName != "" {
			return rec.ImportedName
		}
		return rec.LocalName
	}
}
