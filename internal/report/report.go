// Package report converts built component graphs into the canonical report
// schema and serializes it to JSON, console, and HTML formats.
package report

import (
	"sort"

	"github.com/spinnegraph/spinne/pkg/types"
)

// Build converts graphs, already sorted by project name, into the canonical
// Report. Component and edge ordering within each graph is made
// deterministic (components by id, edges by from/to/project_context) since
// map iteration order in types.Graph is not.
func Build(graphs []*types.Graph) types.Report {
	out := make(types.Report, 0, len(graphs))
	for _, g := range graphs {
		out = append(out, types.ProjectReport{
			Name:  g.ProjectName,
			Graph: buildGraphReport(g),
		})
	}
	return out
}

func buildGraphReport(g *types.Graph) types.GraphReport {
	propUsage := make(map[string]map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		counts, ok := propUsage[e.To]
		if !ok {
			counts = make(map[string]int)
			propUsage[e.To] = counts
		}
		for name, n := range e.PropUsage {
			counts[name] += n
		}
	}

	components := make([]types.ComponentReport, 0, len(g.Nodes))
	for _, def := range g.Nodes {
		components = append(components, types.ComponentReport{
			ID:    def.ID,
			Name:  def.ExportedName,
			Path:  def.FilePath,
			Props: orEmpty(propUsage[def.ID]),
		})
	}
	sort.Slice(components, func(i, j int) bool { return components[i].ID < components[j].ID })

	edges := make([]types.EdgeReport, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, types.EdgeReport{
			From:           e.From,
			To:             e.To,
			ProjectContext: e.ProjectContext,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].ProjectContext < edges[j].ProjectContext
	})

	return types.GraphReport{Components: components, Edges: edges}
}

func orEmpty(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
