// Package pipeline orchestrates the Workspace Aggregator: it runs the
// Workspace Resolver, File Discoverer, Parser, JSX Extractor, Component
// Registry and Graph Builder across every project found under an entry
// path, and emits one graph per project.
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/spinnegraph/spinne/internal/discover"
	"github.com/spinnegraph/spinne/internal/extract"
	"github.com/spinnegraph/spinne/internal/graph"
	"github.com/spinnegraph/spinne/internal/registry"
	"github.com/spinnegraph/spinne/internal/resolve"
	"github.com/spinnegraph/spinne/internal/spinnelog"
	"github.com/spinnegraph/spinne/internal/tsxparse"
	"github.com/spinnegraph/spinne/internal/workspace"
	"github.com/spinnegraph/spinne/pkg/types"
)

// Options configures a pipeline Run.
type Options struct {
	IncludeGlobs []string
	ExcludeGlobs []string
	Logger       *spinnelog.Logger
	// Parallel enables file-level concurrency within each project; projects
	// themselves are still processed one after another. Sequential execution
	// (the default) is easier to reason about and produces an identical
	// logical graph.
	Parallel bool
}

// Summary accumulates the non-fatal diagnostics recovered during a run:
// parse errors and re-export cycles are file-local, logged, and do not
// abort the pipeline.
type Summary struct {
	ParseErrors    []types.ParseErrorRecord
	ReexportCycles []types.ReexportCycleRecord
}

// Pipeline runs the full C1-C7 chain over a workspace and produces one
// Graph per project.
type Pipeline struct {
	opts Options
	log  *spinnelog.Logger
}

// New creates a Pipeline. A nil Logger discards all output.
func New(opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = spinnelog.Discard()
	}
	return &Pipeline{opts: opts, log: opts.Logger}
}

// parsedEntry is one successfully parsed, extracted file together with its
// owning project, kept only until Run's graph-building stage consumes it.
type parsedEntry struct {
	project *types.Project
	absPath string
	relPath string
	ex      *extract.Extraction
}

// Run resolves entryPath into its constituent projects and builds each
// project's component graph. The returned Graphs are ordered by project
// name.
func (p *Pipeline) Run(ctx context.Context, entryPath string) ([]*types.Graph, *Summary, error) {
	projects, err := workspace.NewResolver().Resolve(entryPath, p.opts.ExcludeGlobs)
	if err != nil {
		return nil, nil, err
	}
	p.log.Info("workspace resolved", "projects", len(projects))

	for _, proj := range projects {
		proj.IncludeGlobs = p.opts.IncludeGlobs
		proj.ExcludeGlobs = p.opts.ExcludeGlobs
	}

	disc := discover.NewDiscoverer()
	filesByProject := make(map[*types.Project][]string, len(projects))
	totalFiles := 0
	for _, proj := range projects {
		files, err := disc.Discover(proj)
		if err != nil {
			return nil, nil, fmt.Errorf("discover %s: %w", proj.RootPath, err)
		}
		filesByProject[proj] = files
		totalFiles += len(files)
	}
	if totalFiles == 0 {
		return nil, nil, types.ErrNoFiles
	}

	parser, err := tsxparse.NewParser()
	if err != nil {
		return nil, nil, fmt.Errorf("create parser: %w", err)
	}
	defer parser.Close()

	summary := &Summary{}
	var entries []parsedEntry

	for _, proj := range projects {
		if err := ctx.Err(); err != nil {
			return nil, summary, err
		}
		projEntries, parseErrs := p.parseAndExtractProject(ctx, proj, filesByProject[proj], parser)
		entries = append(entries, projEntries...)
		summary.ParseErrors = append(summary.ParseErrors, parseErrs...)
	}

	idx := newFileIndex(entries)

	reg := registry.New(resolve.NewResolver())
	builder := graph.NewBuilder(reg, idx.resolver)
	builder.SetLogger(p.log)

	for _, e := range entries {
		builder.AddFile(e.project, e.absPath, e.relPath, e.ex, idx)
	}
	summary.ReexportCycles = reg.Cycles()

	graphs := make([]*types.Graph, 0, len(projects))
	for _, proj := range projects {
		graphs = append(graphs, builder.Graph(proj.Name))
	}
	sort.Slice(graphs, func(i, j int) bool { return graphs[i].ProjectName < graphs[j].ProjectName })

	return graphs, summary, nil
}

// parseAndExtractProject parses and extracts one project's files, optionally
// in parallel (bounded by p.opts.Parallel), returning successfully extracted
// entries and any recovered parse errors.
func (p *Pipeline) parseAndExtractProject(ctx context.Context, proj *types.Project, files []string, parser *tsxparse.Parser) ([]parsedEntry, []types.ParseErrorRecord) {
	if !p.opts.Parallel {
		var entries []parsedEntry
		var parseErrs []types.ParseErrorRecord
		for _, f := range files {
			if ctx.Err() != nil {
				break
			}
			entry, parseErr, ok := p.parseAndExtractFile(proj, f, parser)
			if !ok {
				parseErrs = append(parseErrs, *parseErr)
				continue
			}
			entries = append(entries, entry)
		}
		return entries, parseErrs
	}

	entriesCh := make(chan parsedEntry, len(files))
	errsCh := make(chan types.ParseErrorRecord, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range files {
		f := f
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			entry, parseErr, ok := p.parseAndExtractFile(proj, f, parser)
			if !ok {
				errsCh <- *parseErr
				return nil
			}
			entriesCh <- entry
			return nil
		})
	}
	_ = g.Wait()
	close(entriesCh)
	close(errsCh)

	var entries []parsedEntry
	for e := range entriesCh {
		entries = append(entries, e)
	}
	var parseErrs []types.ParseErrorRecord
	for e := range errsCh {
		parseErrs = append(parseErrs, e)
	}
	return entries, parseErrs
}

func (p *Pipeline) parseAndExtractFile(proj *types.Project, absPath string, parser *tsxparse.Parser) (parsedEntry, *types.ParseErrorRecord, bool) {
	pf, perr := parser.ParseFile(proj.RootPath, absPath)
	if perr != nil {
		p.log.Warn("parse error, skipping file", "file", perr.File, "message", perr.Message)
		return parsedEntry{}, perr, false
	}
	defer pf.Close()

	ex := extract.Extract(pf)
	return parsedEntry{project: proj, absPath: absPath, relPath: pf.RelativePath, ex: ex}, nil, true
}
