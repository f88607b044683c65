package main

import (
	"bytes"
	"errors"
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

func resetFlags() {
	entryFlag = ""
	formatFlag = "file"
	includeFlag = ""
	excludeFlag = ""
	entryPointsFlag = ""
	fileNameFlag = "spinne-report"
	logLevelFlag = 0
}

func TestRootCommandMetadata(t *testing.T) {
	if rootCmd.Use != "spinne" {
		t.Errorf("Use = %q, want %q", rootCmd.Use, "spinne")
	}
	if rootCmd.Short == "" {
		t.Error("root command should have a short description")
	}
	if !rootCmd.SilenceErrors {
		t.Error("root command should have SilenceErrors=true")
	}
}

func TestEntryAndFormatFlagsRegistered(t *testing.T) {
	e := rootCmd.Flags().Lookup("entry")
	if e == nil || e.Shorthand != "e" {
		t.Fatalf("entry flag not registered with shorthand 'e': %+v", e)
	}
	f := rootCmd.Flags().Lookup("format")
	if f == nil || f.Shorthand != "f" || f.DefValue != "file" {
		t.Fatalf("format flag misconfigured: %+v", f)
	}
	l := rootCmd.Flags().Lookup("verbose")
	if l == nil || l.Shorthand != "l" {
		t.Fatalf("verbose/log-level flag not registered with shorthand 'l': %+v", l)
	}
}

func TestSplitCSVTrimsAndDropsEmpty(t *testing.T) {
	got := splitCSV(" a, b ,,c")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestSplitCSVEmptyStringReturnsNil(t *testing.T) {
	if got := splitCSV(""); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestRunAnalyzeJSONFormat(t *testing.T) {
	resetFlags()
	defer resetFlags()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "App.tsx"), `
export function App() {
	return <div />;
}
`)

	entryFlag = dir
	formatFlag = "json"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	defer func() { rootCmd.SetOut(nil); rootCmd.SetErr(nil) }()

	if err := runAnalyze(rootCmd, nil); err != nil {
		t.Fatalf("runAnalyze() error: %v", err)
	}
	if out.Len() == 0 {
		t.Error("expected JSON report written to stdout")
	}
}

func TestRunAnalyzeNoFilesReturnsExitError(t *testing.T) {
	resetFlags()
	defer resetFlags()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "notes.txt"), "no tsx here")

	entryFlag = dir
	formatFlag = "json"

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer func() { rootCmd.SetOut(nil); rootCmd.SetErr(nil) }()

	err := runAnalyze(rootCmd, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	var exitErr *types.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("expected *types.ExitError with code 1, got %v", err)
	}
}
