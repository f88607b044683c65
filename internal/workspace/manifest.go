package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// readManifestName reads package.json's "name" field for the project rooted
// at dir. If the manifest is missing, unreadable, or has no name, the
// directory's base name is used instead.
func readManifestName(dir string) (name string, manifestPath string) {
	manifestPath = filepath.Join(dir, manifestName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return filepath.Base(dir), manifestPath
	}

	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil || manifest.Name == "" {
		return filepath.Base(dir), manifestPath
	}

	return manifest.Name, manifestPath
}
