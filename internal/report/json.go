package report

import (
	"encoding/json"
	"io"

	"github.com/spinnegraph/spinne/pkg/types"
)

// RenderJSON writes report to w with pretty-printed indentation, matching
// the canonical schema verbatim.
func RenderJSON(w io.Writer, rep types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
