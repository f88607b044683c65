package resolve

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

// pathMapping is one entry of compilerOptions.paths, order-preserving.
type pathMapping struct {
	Pattern string
	Targets []string
}

// TSConfig holds the subset of tsconfig.json relevant to module resolution:
// baseUrl and compilerOptions.paths, with paths kept in declaration order
// since resolution tries patterns "in lexical order" per the spec, meaning
// the order they appear in the file.
type TSConfig struct {
	Dir     string // directory containing the tsconfig.json
	BaseURL string // absolute; defaults to Dir if unset
	Paths   []pathMapping
}

// LoadTSConfig reads and parses the tsconfig.json at path. A missing or
// malformed file yields (nil, nil): path mapping is simply unavailable,
// it is not a fatal configuration error (only spinne.json parsing is).
func LoadTSConfig(path string) (*TSConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	var raw struct {
		CompilerOptions struct {
			BaseURL string          `json:"baseUrl"`
			Paths   json.RawMessage `json:"paths"`
		} `json:"compilerOptions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil
	}

	dir := filepath.Dir(path)
	cfg := &TSConfig{Dir: dir}

	if raw.CompilerOptions.BaseURL != "" {
		cfg.BaseURL = filepath.Join(dir, raw.CompilerOptions.BaseURL)
	} else {
		cfg.BaseURL = dir
	}

	if len(raw.CompilerOptions.Paths) > 0 {
		mappings, err := decodeOrderedPaths(raw.CompilerOptions.Paths)
		if err == nil {
			cfg.Paths = mappings
		}
	}

	return cfg, nil
}

// decodeOrderedPaths decodes a `paths` JSON object while preserving key
// declaration order, which a plain map[string][]string would discard.
func decodeOrderedPaths(raw json.RawMessage) ([]pathMapping, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil
	}

	var mappings []pathMapping
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var targets []string
		if err := dec.Decode(&targets); err != nil {
			return nil, err
		}
		mappings = append(mappings, pathMapping{Pattern: key, Targets: targets})
	}

	return mappings, nil
}
