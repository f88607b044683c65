package report

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"

	"github.com/spinnegraph/spinne/pkg/types"
	"github.com/spinnegraph/spinne/pkg/version"
)

//go:embed templates/report.html
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html"))

// htmlProject and htmlComponent are the flattened, template-friendly views
// of a ProjectReport: callers are resolved by name (rather than left as
// opaque ids) so the static page needs no client-side lookup.
type htmlProject struct {
	Name       string
	Components []htmlComponent
}

type htmlComponent struct {
	Name    string
	Path    string
	Callers []string
}

type htmlData struct {
	Title    string
	Projects []htmlProject
	JSON     template.JS
	Version  string
}

// RenderHTML writes a self-contained HTML report embedding both a readable
// component table and the raw report JSON for a client-side viewer.
func RenderHTML(w io.Writer, rep types.Report, title string) error {
	raw, err := json.Marshal(rep)
	if err != nil {
		return err
	}

	data := htmlData{Title: title, JSON: template.JS(raw), Version: version.Version}
	for _, proj := range rep {
		names := componentNames(proj.Graph.Components)
		callersByCallee := make(map[string][]string, len(proj.Graph.Edges))
		for _, e := range proj.Graph.Edges {
			caller := names[e.From]
			if caller == "" {
				caller = e.From
			}
			callersByCallee[e.To] = append(callersByCallee[e.To], caller)
		}

		hp := htmlProject{Name: proj.Name}
		for _, c := range proj.Graph.Components {
			hp.Components = append(hp.Components, htmlComponent{
				Name:    c.Name,
				Path:    c.Path,
				Callers: callersByCallee[c.ID],
			})
		}
		data.Projects = append(data.Projects, hp)
	}

	return reportTemplate.Execute(w, data)
}
