// Package config handles spinne.json project-level configuration and its
// merge with CLI flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spinnegraph/spinne/pkg/types"
)

// FileConfig represents spinne.json: include/exclude glob patterns and
// auxiliary entry points for the exports report.
type FileConfig struct {
	Include     []string `json:"include"`
	Exclude     []string `json:"exclude"`
	EntryPoints []string `json:"entry_points"`
}

// fileName is the config file spinne looks for at the analysis root.
const fileName = "spinne.json"

// Load reads spinne.json from dir. A missing file is not an error; it
// returns a zero-value FileConfig. A malformed file wraps types.ErrConfigParse.
func Load(dir string) (*FileConfig, error) {
	path := filepath.Join(dir, fileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := &FileConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrConfigParse, path, err)
	}
	return cfg, nil
}

// CLIOverrides holds the subset of CLI flags that participate in the
// config merge: list fields union with spinne.json, scalars are CLI-only.
type CLIOverrides struct {
	Include     []string
	Exclude     []string
	EntryPoints []string
}

// Merged is the final, resolved set of include/exclude globs and entry
// points after unioning a FileConfig with CLIOverrides.
type Merged struct {
	Include     []string
	Exclude     []string
	EntryPoints []string
}

// Merge unions list fields from file and cli. Scalar flags (format,
// file-name, entry) are not modeled here: they are CLI-exclusive and never
// appear in spinne.json, so they always win by construction.
func Merge(file *FileConfig, cli CLIOverrides) Merged {
	return Merged{
		Include:     unionStrings(file.Include, cli.Include),
		Exclude:     unionStrings(file.Exclude, cli.Exclude),
		EntryPoints: unionStrings(file.EntryPoints, cli.EntryPoints),
	}
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, s := range a {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, s := range b {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
