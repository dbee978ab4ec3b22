package mondrian

import (
	"cmp"
	"slices"
)

// minGridGap is the shortest gap between two tiles worth a grid segment.
const minGridGap = 10.0

// span is a closed interval along one axis.
type span struct{ lo, hi float64 }

// BorderLines returns the thin gray frame around the extent, clockwise from
// the top-left corner.
func BorderLines(extent Rect) []Line {
	tl := Point{extent.Left, extent.Top}
	tr := Point{extent.Right, extent.Top}
	br := Point{extent.Right, extent.Bottom}
	bl := Point{extent.Left, extent.Bottom}
	return []Line{
		newLine(tl, tr, Gray, ThinLineWidth, KindBorder),
		newLine(tr, br, Gray, ThinLineWidth, KindBorder),
		newLine(br, bl, Gray, ThinLineWidth, KindBorder),
		newLine(bl, tl, Gray, ThinLineWidth, KindBorder),
	}
}

// GridLines returns light gray lines through every tile edge position that
// stop where they meet a tile.
//
// For each distinct x of a tile's left or right edge (and each distinct y
// of a top or bottom edge) strictly inside the extent, the line is split at
// the tiles it meets: one segment from the canvas edge to the first tile,
// one per gap between consecutive tiles wider than minGridGap, and one from
// the last tile to the opposite edge. Vertical lines come first, then
// horizontal, each ordered by position.
func GridLines(extent Rect, tiles []Rect) []Line {
	var xs, ys []float64
	for _, t := range tiles {
		xs = append(xs, t.Left, t.Right)
		ys = append(ys, t.Top, t.Bottom)
	}
	xs = interior(xs, extent.Left, extent.Right)
	ys = interior(ys, extent.Top, extent.Bottom)

	var lines []Line
	for _, x := range xs {
		var hits []span
		for _, t := range tiles {
			if t.Left <= x && x <= t.Right {
				hits = append(hits, span{t.Top, t.Bottom})
			}
		}
		for _, s := range free(hits, extent.Top, extent.Bottom) {
			lines = append(lines, newLine(Point{x, s.lo}, Point{x, s.hi}, LightGray, ThinLineWidth, KindGrid))
		}
	}
	for _, y := range ys {
		var hits []span
		for _, t := range tiles {
			if t.Top <= y && y <= t.Bottom {
				hits = append(hits, span{t.Left, t.Right})
			}
		}
		for _, s := range free(hits, extent.Left, extent.Right) {
			lines = append(lines, newLine(Point{s.lo, y}, Point{s.hi, y}, LightGray, ThinLineWidth, KindGrid))
		}
	}
	return lines
}

// interior returns the sorted distinct values strictly between lo and hi.
func interior(vs []float64, lo, hi float64) []float64 {
	slices.Sort(vs)
	vs = slices.Compact(vs)
	return slices.DeleteFunc(vs, func(v float64) bool { return v <= lo || v >= hi })
}

// free returns the parts of [lo, hi] not covered by hits: the leading and
// trailing parts whenever they have positive length, and inner gaps only
// when wider than minGridGap.
func free(hits []span, lo, hi float64) []span {
	if len(hits) == 0 {
		return []span{{lo, hi}}
	}
	slices.SortFunc(hits, func(a, b span) int { return cmp.Compare(a.lo, b.lo) })

	merged := []span{hits[0]}
	for _, h := range hits[1:] {
		last := &merged[len(merged)-1]
		if h.lo <= last.hi {
			last.hi = max(last.hi, h.hi)
			continue
		}
		merged = append(merged, h)
	}

	var out []span
	if merged[0].lo > lo {
		out = append(out, span{lo, merged[0].lo})
	}
	for i := 0; i+1 < len(merged); i++ {
		if gap := merged[i+1].lo - merged[i].hi; gap > minGridGap {
			out = append(out, span{merged[i].hi, merged[i+1].lo})
		}
	}
	if last := merged[len(merged)-1].hi; last < hi {
		out = append(out, span{last, hi})
	}
	return out
}
