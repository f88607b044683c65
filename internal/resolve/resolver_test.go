package resolve

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveRelativeExactFile(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "Card.tsx"), "")
	importer := filepath.Join(root, "App.tsx")

	r := NewResolver()
	abs, ok := r.Resolve(importer, "./Card", "")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if filepath.Base(abs) != "Card.tsx" {
		t.Errorf("got %q, want Card.tsx", abs)
	}
}

func TestResolveRelativeIndexFallback(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "components", "index.ts"), "")
	importer := filepath.Join(root, "App.tsx")

	r := NewResolver()
	abs, ok := r.Resolve(importer, "./components", "")
	if !ok {
		t.Fatal("expected resolution to succeed via index fallback")
	}
	if filepath.Base(abs) != "index.ts" {
		t.Errorf("got %q, want index.ts", abs)
	}
}

func TestResolveBareSpecifierUnresolved(t *testing.T) {
	root := t.TempDir()
	importer := filepath.Join(root, "App.tsx")

	r := NewResolver()
	_, ok := r.Resolve(importer, "my-lib", "")
	if ok {
		t.Fatal("expected bare specifier to be unresolved")
	}
}

func TestResolvePathMapped(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "src", "components", "Button.tsx"), "")
	write(t, filepath.Join(root, "tsconfig.json"), `{
		"compilerOptions": {
			"baseUrl": ".",
			"paths": { "@/*": ["src/*"] }
		}
	}`)
	importer := filepath.Join(root, "src", "App.tsx")

	r := NewResolver()
	abs, ok := r.Resolve(importer, "@/components/Button", filepath.Join(root, "tsconfig.json"))
	if !ok {
		t.Fatal("expected path-mapped resolution to succeed")
	}
	if filepath.Base(abs) != "Button.tsx" {
		t.Errorf("got %q, want Button.tsx", abs)
	}
}

func TestResolvePathMappedTriesPatternsInOrder(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "lib", "widgets", "Widget.tsx"), "")
	write(t, filepath.Join(root, "tsconfig.json"), `{
		"compilerOptions": {
			"baseUrl": ".",
			"paths": {
				"@widgets/*": ["missing/*"],
				"@widgets/*": ["lib/widgets/*"]
			}
		}
	}`)
	importer := filepath.Join(root, "App.tsx")

	r := NewResolver()
	abs, ok := r.Resolve(importer, "@widgets/Widget", filepath.Join(root, "tsconfig.json"))
	if !ok {
		t.Fatal("expected path-mapped resolution to succeed")
	}
	if filepath.Base(abs) != "Widget.tsx" {
		t.Errorf("got %q, want Widget.tsx", abs)
	}
}

func TestMatchPatternWildcard(t *testing.T) {
	tests := []struct {
		pattern, specifier, want string
		ok                       bool
	}{
		{"@/*", "@/foo/bar", "foo/bar", true},
		{"@/*", "other/foo", "", false},
		{"exact", "exact", "", true},
		{"exact", "nope", "", false},
	}
	for _, tt := range tests {
		got, ok := matchPattern(tt.pattern, tt.specifier)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("matchPattern(%q, %q) = (%q, %v), want (%q, %v)", tt.pattern, tt.specifier, got, ok, tt.want, tt.ok)
		}
	}
}
