package sink

import (
	"encoding/json"

	"github.com/matzehuels/mondrian/pkg/mondrian"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact   bool
	blocksOut bool
}

// WithJSONCompact writes the document on one line.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONBlocksOnly drops grid lines, borders and connector segments,
// keeping blocks and connector endpoints.
func WithJSONBlocksOnly() JSONOption { return func(r *jsonRenderer) { r.blocksOut = true } }

// RenderJSON exports the layout as a JSON document that [mondrian.UnmarshalLayout]
// reads back, enabling:
//
//   - Integration with external visualization tools
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering (re-import and render identically)
func RenderJSON(l mondrian.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.blocksOut {
		l.GridLines, l.Borders = nil, nil
		conns := make([]mondrian.Connector, len(l.Connectors))
		for i, c := range l.Connectors {
			c.Segments = nil
			conns[i] = c
		}
		l.Connectors = conns
	}
	if r.compact {
		return json.Marshal(l)
	}
	return mondrian.MarshalLayout(l)
}
