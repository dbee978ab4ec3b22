package sink

import (
	"bytes"
	"fmt"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
)

// MaxCanvasCells bounds rows × cols of a canvas grid.
const MaxCanvasCells = 36

const canvasTitleFont = 28.0

// RenderCanvas lays several maps out in a rows × cols grid, each under its
// own title. Maps fill the grid row by row; unused cells stay empty. The
// output is the configured size (600px, or 1000px maximized) per column.
func RenderCanvas(maps []mondrian.Layout, rows, cols int, opts ...SVGOption) ([]byte, error) {
	if rows < 1 || cols < 1 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "canvas grid must have at least one row and column, got %d×%d", rows, cols)
	}
	if rows*cols > MaxCanvasCells {
		return nil, apperrors.New(apperrors.ErrCodeTooLarge, "canvas grid %d×%d exceeds %d cells", rows, cols, MaxCanvasCells)
	}
	if len(maps) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "canvas needs at least one map")
	}
	if len(maps) > rows*cols {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "%d maps do not fit a %d×%d canvas", len(maps), rows, cols)
	}

	r := newSVGRenderer(opts...)

	var cellW, cellH float64
	for _, l := range maps {
		cellW = max(cellW, l.Width()+2*framePadding)
		cellH = max(cellH, l.Height()+titleHeight+2*framePadding)
	}
	top := 0.0
	if r.title != "" {
		top = titleHeight * 1.5
	}
	vbW := cellW * float64(cols)
	vbH := cellH*float64(rows) + top
	pxW := r.size * float64(cols)
	pxH := pxW * vbH / vbW

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		vbW, vbH, pxW, pxH)
	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", tileInteractionCSS)
	if r.title != "" {
		renderTitle(&buf, r.title, vbW/2, top/2, canvasTitleFont)
	}

	for i, l := range maps {
		x := float64(i%cols) * cellW
		y := top + float64(i/cols)*cellH
		fmt.Fprintf(&buf, `  <g class="map" transform="translate(%.1f, %.1f)">`+"\n", x, y)
		if l.Title != "" {
			renderTitle(&buf, l.Title, cellW/2, framePadding+titleHeight/2, titleFont)
		}
		fmt.Fprintf(&buf, `  <g transform="translate(%.1f, %.1f)">`+"\n", framePadding, framePadding+titleHeight)
		renderMap(&buf, &r, l)
		buf.WriteString("  </g>\n  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}
