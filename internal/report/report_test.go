package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spinnegraph/spinne/pkg/types"
)

func sampleGraph() *types.Graph {
	g := types.NewGraph("app")
	app := &types.ComponentDefinition{ID: "1", ExportedName: "App", FilePath: "App.tsx"}
	card := &types.ComponentDefinition{ID: "2", ExportedName: "Card", FilePath: "Card.tsx"}
	g.Nodes[app.ID] = app
	g.Nodes[card.ID] = card
	g.Edges[types.EdgeKey{From: "1", To: "2"}] = &types.Edge{
		From:           "1",
		To:             "2",
		ProjectContext: "app",
		PropUsage:      map[string]int{"title": 2},
	}
	return g
}

func TestBuildSortsComponentsAndEdges(t *testing.T) {
	rep := Build([]*types.Graph{sampleGraph()})
	if len(rep) != 1 {
		t.Fatalf("expected 1 project, got %d", len(rep))
	}
	g := rep[0].Graph
	if len(g.Components) != 2 || g.Components[0].ID != "1" || g.Components[1].ID != "2" {
		t.Errorf("components not sorted by id: %+v", g.Components)
	}
	if g.Components[1].Props["title"] != 2 {
		t.Errorf("Card props[title] = %d, want 2 (accumulated from edge)", g.Components[1].Props["title"])
	}
	if len(g.Edges) != 1 || g.Edges[0].From != "1" || g.Edges[0].To != "2" {
		t.Errorf("unexpected edges: %+v", g.Edges)
	}
}

func TestRenderJSONProducesCanonicalSchema(t *testing.T) {
	rep := Build([]*types.Graph{sampleGraph()})

	var buf bytes.Buffer
	if err := RenderJSON(&buf, rep); err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["name"] != "app" {
		t.Errorf("unexpected top-level shape: %+v", decoded)
	}
}

func TestRenderConsoleShowsEdgesIndentedUnderCaller(t *testing.T) {
	rep := Build([]*types.Graph{sampleGraph()})

	var buf bytes.Buffer
	RenderConsole(&buf, rep)

	out := buf.String()
	if !strings.Contains(out, "App") || !strings.Contains(out, "Card") {
		t.Errorf("expected both component names in output, got: %s", out)
	}
	if !strings.Contains(out, "-> Card") {
		t.Errorf("expected an edge arrow to Card, got: %s", out)
	}
}

func TestRenderHTMLEmbedsJSONAndComponentNames(t *testing.T) {
	rep := Build([]*types.Graph{sampleGraph()})

	var buf bytes.Buffer
	if err := RenderHTML(&buf, rep, "myproject"); err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "myproject") {
		t.Error("expected title in output")
	}
	if !strings.Contains(out, "App") || !strings.Contains(out, "Card") {
		t.Error("expected component names in output")
	}
	if !strings.Contains(out, `"project_context":"app"`) {
		t.Errorf("expected embedded JSON data, got: %s", out)
	}
}

func TestRenderFileWritesJSONByDefault(t *testing.T) {
	dir := t.TempDir()
	rep := Build([]*types.Graph{sampleGraph()})

	path, err := RenderFile(rep, dir, "spinne-report", "json")
	if err != nil {
		t.Fatalf("RenderFile() error: %v", err)
	}
	if filepath.Ext(path) != ".json" {
		t.Errorf("path = %q, want .json extension", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestRenderFileWritesHTML(t *testing.T) {
	dir := t.TempDir()
	rep := Build([]*types.Graph{sampleGraph()})

	path, err := RenderFile(rep, dir, "spinne-report", "html")
	if err != nil {
		t.Fatalf("RenderFile() error: %v", err)
	}
	if filepath.Ext(path) != ".html" {
		t.Errorf("path = %q, want .html extension", path)
	}
}
