package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spinnegraph/spinne/pkg/types"
)

// RenderFile writes report in format ("json" or "html") to <fileName>.json
// or <fileName>.html, used by the CLI's "file" output format.
func RenderFile(rep types.Report, dir, fileName, format string) (string, error) {
	var ext string
	switch format {
	case "html":
		ext = ".html"
	default:
		ext = ".json"
	}

	path := fileName + ext
	if dir != "" {
		path = filepath.Join(dir, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if format == "html" {
		if err := RenderHTML(f, rep, fileName); err != nil {
			return "", fmt.Errorf("render html report: %w", err)
		}
		return path, nil
	}
	if err := RenderJSON(f, rep); err != nil {
		return "", fmt.Errorf("render json report: %w", err)
	}
	return path, nil
}
