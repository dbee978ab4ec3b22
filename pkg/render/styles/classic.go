package styles

import (
	"bytes"
	"fmt"
)

// Classic draws solid tiles framed by thick black outlines, as in the
// original Mondrian compositions.
type Classic struct{}

func (Classic) Name() string { return StyleClassic }

func (Classic) RenderDefs(buf *bytes.Buffer) {}

func (Classic) RenderTile(buf *bytes.Buffer, t Tile) {
	renderRect(buf, t, "")
}

func (Classic) RenderLine(buf *bytes.Buffer, l Line) {
	renderLine(buf, l)
}

func (Classic) RenderLabel(buf *bytes.Buffer, t Tile) {
	renderLabel(buf, t)
}

func renderRect(buf *bytes.Buffer, t Tile, extra string) {
	fmt.Fprintf(buf, `    <rect id="tile-%s" class="tile" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s>`,
		EscapeXML(t.ID), t.X, t.Y, t.W, t.H, t.Fill, extra)
	if t.Tooltip != "" {
		fmt.Fprintf(buf, "<title>%s</title>", EscapeXML(t.Tooltip))
	}
	buf.WriteString("</rect>\n")
}

func renderLine(buf *bytes.Buffer, l Line) {
	fmt.Fprintf(buf, `    <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" stroke-linecap="square"/>`+"\n",
		l.Kind, l.X1, l.Y1, l.X2, l.Y2, l.Color, l.Width)
}

func renderLabel(buf *bytes.Buffer, t Tile) {
	if t.Label == "" {
		return
	}
	fmt.Fprintf(buf, `    <text class="label" x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central" pointer-events="none">%s</text>`+"\n",
		t.CX, t.CY, FontSize(t), TextColor(t.Fill), EscapeXML(t.Label))
}
