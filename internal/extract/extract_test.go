package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spinnegraph/spinne/internal/tsxparse"
	"github.com/spinnegraph/spinne/pkg/types"
)

func parse(t *testing.T, source string) *tsxparse.ParsedFile {
	t.Helper()
	p, err := tsxparse.NewParser()
	if err != nil {
		t.Fatalf("NewParser() error: %v", err)
	}
	t.Cleanup(p.Close)

	root := t.TempDir()
	path := filepath.Join(root, "App.tsx")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	pf, perr := p.ParseFile(root, path)
	if perr != nil {
		t.Fatalf("ParseFile() error: %+v", perr)
	}
	t.Cleanup(pf.Close)
	return pf
}

func TestExtractSimpleLocalImport(t *testing.T) {
	pf := parse(t, `import { Button } from 'my-lib';
export const App = () => <Button variant="blue" />;`)

	ex := Extract(pf)

	if len(ex.LocalDefinitions) != 1 || ex.LocalDefinitions[0].Name != "App" {
		t.Fatalf("LocalDefinitions = %+v, want [App]", ex.LocalDefinitions)
	}
	if rec, ok := ex.Imports["Button"]; !ok || rec.ModuleSpecifier != "my-lib" || rec.Kind != types.Named {
		t.Fatalf("Imports[Button] = %+v, ok=%v", rec, ok)
	}
	if len(ex.Usages) != 1 {
		t.Fatalf("Usages = %+v, want 1 usage", ex.Usages)
	}
	u := ex.Usages[0]
	if u.TagName != "Button" || u.ContainingDefName != "App" {
		t.Errorf("usage = %+v", u)
	}
	if u.Props["variant"] != 1 {
		t.Errorf("Props[variant] = %d, want 1", u.Props["variant"])
	}
}

func TestExtractLocalComponentReuse(t *testing.T) {
	pf := parse(t, `import { Card } from './Card';
export const App = () => <Card title="x"/>;`)

	ex := Extract(pf)
	if len(ex.Usages) != 1 {
		t.Fatalf("Usages = %+v, want 1", ex.Usages)
	}
	u := ex.Usages[0]
	if u.TagName != "Card" || u.Props["title"] != 1 || u.HasSpread {
		t.Errorf("usage = %+v", u)
	}
}

func TestExtractMemberExpressionTag(t *testing.T) {
	pf := parse(t, `import Lib from 'my-lib';
export const App = () => <Lib.Menu open/>;`)

	ex := Extract(pf)
	if len(ex.Usages) != 1 {
		t.Fatalf("Usages = %+v, want 1", ex.Usages)
	}
	u := ex.Usages[0]
	if u.TagName != "Lib.Menu" || u.FirstSegment != "Lib" || u.MemberName != "Menu" {
		t.Errorf("usage = %+v", u)
	}
	if u.HasSpread {
		t.Error("expected no spread")
	}
}

func TestExtractSpreadProps(t *testing.T) {
	pf := parse(t, `import { Card } from './Card';
export const App = (p) => <Card {...p} title="x"/>;`)

	ex := Extract(pf)
	if len(ex.Usages) != 1 {
		t.Fatalf("Usages = %+v, want 1", ex.Usages)
	}
	u := ex.Usages[0]
	if !u.HasSpread {
		t.Error("expected HasSpread = true")
	}
	if u.Props["title"] != 1 {
		t.Errorf("Props[title] = %d, want 1", u.Props["title"])
	}
}

func TestExtractModuleTopLevelJSXSynthesizesFileStem(t *testing.T) {
	pf := parse(t, `import { Card } from './Card';
<Card/>;`)

	ex := Extract(pf)
	if len(ex.Usages) != 1 {
		t.Fatalf("Usages = %+v, want 1", ex.Usages)
	}
	if ex.Usages[0].ContainingDefName != "App" {
		t.Errorf("ContainingDefName = %q, want file stem App", ex.Usages[0].ContainingDefName)
	}
}

func TestExtractReexport(t *testing.T) {
	pf := parse(t, `export { Button } from './a';
export * from './b';`)

	ex := Extract(pf)
	if len(ex.Reexports) != 2 {
		t.Fatalf("Reexports = %+v, want 2", ex.Reexports)
	}
	if ex.Reexports[0].OriginalName != "Button" || ex.Reexports[0].ModuleSpecifier != "./a" {
		t.Errorf("Reexports[0] = %+v", ex.Reexports[0])
	}
	if !ex.Reexports[1].IsStar || ex.Reexports[1].ModuleSpecifier != "./b" {
		t.Errorf("Reexports[1] = %+v", ex.Reexports[1])
	}
}

func TestExtractHostElementStillRecordedForGraphToExclude(t *testing.T) {
	pf := parse(t, `export const App = () => <div className="x"/>;`)

	ex := Extract(pf)
	if len(ex.Usages) != 1 {
		t.Fatalf("Usages = %+v, want 1", ex.Usages)
	}
	if ex.Usages[0].TagName != "div" {
		t.Errorf("TagName = %q, want div", ex.Usages[0].TagName)
	}
}
