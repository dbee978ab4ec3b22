package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/render/styles"
)

const (
	legendSwatch  = 24.0
	legendRow     = 36.0
	legendPadding = 16.0
	legendWidth   = 320.0
	legendFont    = 14.0
)

// RenderLegend draws the color key of the five categories under th, plus
// the connector colors.
func RenderLegend(th mondrian.Thresholds) []byte {
	type entry struct {
		color  mondrian.Color
		label  string
		stroke bool
	}
	var entries []entry
	for _, c := range mondrian.Categories() {
		entries = append(entries, entry{color: c.Color(), label: th.Describe(c)})
	}
	entries = append(entries,
		entry{color: mondrian.Red, label: "Crosstalk between up-regulated pathways", stroke: true},
		entry{color: mondrian.Blue, label: "Crosstalk between down-regulated pathways", stroke: true},
		entry{color: mondrian.Yellow, label: "Other crosstalk", stroke: true},
	)

	h := 2*legendPadding + legendRow*float64(len(entries)) + legendRow
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		legendWidth, h, legendWidth, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.0f" height="%.0f" fill="%s"/>`+"\n", legendWidth, h, mondrian.White)
	fmt.Fprintf(&buf, `  <text x="%.0f" y="%.0f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" font-weight="bold" fill="%s">Mondrian Map legend</text>`+"\n",
		legendPadding, legendPadding+legendFont, legendFont+2, mondrian.Black)

	for i, e := range entries {
		y := legendPadding + legendRow*float64(i+1)
		if e.stroke {
			fmt.Fprintf(&buf, `  <line x1="%.0f" y1="%.1f" x2="%.0f" y2="%.1f" stroke="%s" stroke-width="%.0f"/>`+"\n",
				legendPadding, y+legendSwatch/2, legendPadding+legendSwatch, y+legendSwatch/2, e.color, mondrian.LineWidth)
		} else {
			fmt.Fprintf(&buf, `  <rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
				legendPadding, y, legendSwatch, legendSwatch, e.color, mondrian.Black)
		}
		fmt.Fprintf(&buf, `  <text x="%.0f" y="%.1f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" fill="%s" dominant-baseline="central">%s</text>`+"\n",
			legendPadding+legendSwatch+12, y+legendSwatch/2, legendFont, mondrian.Black, styles.EscapeXML(e.label))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
