package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/tdsent/target"
)

// JSONRenderer writes targets as a JSON array to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the targets as a JSON array.
func (r *JSONRenderer) Render(targets []target.Target) {
	json.NewEncoder(r.W).Encode(targets)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
