// Package surface defines output rendering for Credlens engine results.
// Implementations handle different output targets: terminal and JSON.
package surface

import (
	"io"

	"github.com/credlens/credlens/pkg/scoring"
)

// Renderer produces formatted output from a unified score result.
type Renderer interface {
	// Render writes the formatted score result to the writer.
	Render(w io.Writer, result *scoring.TwitterScoreResult) error
}
