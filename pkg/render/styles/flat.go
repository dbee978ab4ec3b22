package styles

import "bytes"

// Flat drops the thick outlines and draws each tile with a hairline edge,
// which reads better when many maps share one canvas.
type Flat struct{}

func (Flat) Name() string { return StyleFlat }

func (Flat) RenderDefs(buf *bytes.Buffer) {}

func (Flat) RenderTile(buf *bytes.Buffer, t Tile) {
	renderRect(buf, t, ` stroke="#3e3f39" stroke-width="0.5"`)
}

func (Flat) RenderLine(buf *bytes.Buffer, l Line) {
	if l.Kind == "outline" {
		return
	}
	renderLine(buf, l)
}

func (Flat) RenderLabel(buf *bytes.Buffer, t Tile) {
	renderLabel(buf, t)
}
