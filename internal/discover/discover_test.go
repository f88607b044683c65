package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spinnegraph/spinne/pkg/types"
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

func TestDiscoverDefaultsIncludeTSAndTSX(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "src", "App.tsx"), "")
	write(t, filepath.Join(root, "src", "index.ts"), "")
	write(t, filepath.Join(root, "src", "types.d.ts"), "")
	write(t, filepath.Join(root, "src", "App.test.tsx"), "")
	write(t, filepath.Join(root, "src", "util.test.ts"), "")
	write(t, filepath.Join(root, "src", "App.stories.tsx"), "")
	write(t, filepath.Join(root, "node_modules", "dep", "index.tsx"), "")

	d := NewDiscoverer()
	files, err := d.Discover(&types.Project{RootPath: root})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %v", len(files), files)
	}
	got := []string{filepath.Base(files[0]), filepath.Base(files[1])}
	want := []string{"App.tsx", "index.ts"}
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscoverSortedAndDeduplicated(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "b.tsx"), "")
	write(t, filepath.Join(root, "a.tsx"), "")

	d := NewDiscoverer()
	files, err := d.Discover(&types.Project{RootPath: root})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if filepath.Base(files[0]) != "a.tsx" || filepath.Base(files[1]) != "b.tsx" {
		t.Errorf("files not sorted: %v", files)
	}
}

func TestDiscoverProjectIncludeExcludeUnion(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "src", "App.tsx"), "")
	write(t, filepath.Join(root, "scripts", "codegen.tsx"), "")

	d := NewDiscoverer()
	files, err := d.Discover(&types.Project{
		RootPath:     root,
		ExcludeGlobs: []string{"scripts/**"},
	})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1: %v", len(files), files)
	}
}

func TestDiscoverGitignore(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".gitignore"), "ignored/\n")
	write(t, filepath.Join(root, "src", "App.tsx"), "")
	write(t, filepath.Join(root, "ignored", "Old.tsx"), "")

	d := NewDiscoverer()
	files, err := d.Discover(&types.Project{RootPath: root})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1: %v", len(files), files)
	}
}
