package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/spinnegraph/spinne/pkg/types"
)

// RenderConsole prints a hierarchical summary of report to w: one section
// per project, bold project headers, edges indented beneath their
// source component. Color is automatically disabled when w is not a TTY or
// NO_COLOR is set, so piped output never carries ANSI escapes.
func RenderConsole(w io.Writer, rep types.Report) {
	noColor := os.Getenv("NO_COLOR") != ""
	if f, ok := w.(*os.File); ok {
		noColor = noColor || !isatty.IsTerminal(f.Fd())
	} else {
		noColor = true
	}

	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)
	bold.DisableColor()
	dim.DisableColor()
	if !noColor {
		bold.EnableColor()
		dim.EnableColor()
	}

	for i, proj := range rep {
		if i > 0 {
			fmt.Fprintln(w)
		}
		bold.Fprintf(w, "%s\n", proj.Name)
		fmt.Fprintln(w, "────────────────────────────────────────")
		fmt.Fprintf(w, "  components: %d   edges: %d\n", len(proj.Graph.Components), len(proj.Graph.Edges))

		names := componentNames(proj.Graph.Components)
		edgesByFrom := make(map[string][]types.EdgeReport, len(proj.Graph.Edges))
		for _, e := range proj.Graph.Edges {
			edgesByFrom[e.From] = append(edgesByFrom[e.From], e)
		}

		for _, comp := range proj.Graph.Components {
			outgoing := edgesByFrom[comp.ID]
			if len(outgoing) == 0 {
				continue
			}
			fmt.Fprintf(w, "  %s\n", comp.Name)
			for _, e := range outgoing {
				calleeName := names[e.To]
				if calleeName == "" {
					calleeName = e.To
				}
				crossProject := ""
				if e.ProjectContext != proj.Name {
					crossProject = fmt.Sprintf(" [%s]", e.ProjectContext)
				}
				dim.Fprintf(w, "    -> %s%s\n", calleeName, crossProject)
			}
		}
	}
}

func componentNames(components []types.ComponentReport) map[string]string {
	names := make(map[string]string, len(components))
	for _, c := range components {
		names[c.ID] = c.Name
	}
	return names
}
