package surface

import (
	"encoding/json"
	"io"

	"github.com/credlens/credlens/pkg/scoring"
)

// JSONRenderer marshals a unified score result to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, result *scoring.TwitterScoreResult) error {
	return writeIndented(w, result)
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
