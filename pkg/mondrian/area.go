package mondrian

import "math"

// DefaultAreaScale converts |log2(FC)| into tile area in square canvas units.
const DefaultAreaScale = 4000.0

// MinTileSide keeps zero-area tiles visible.
const MinTileSide = 4.0

// tileAspect is the width-to-height ratio of tiles.
const tileAspect = 4.0 / 3.0

// Area returns |log2(|fc|)| × scale. Zero and non-finite fold changes have
// zero area.
func Area(fc, scale float64) float64 {
	if fc == 0 || math.IsNaN(fc) || math.IsInf(fc, 0) {
		return 0
	}
	a := math.Abs(math.Log2(math.Abs(fc))) * scale
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	return a
}

// TileSize returns the width and height of a 4:3 tile with the given area,
// scaled down uniformly to fit maxW × maxH and grown to at least minSide on
// each side.
func TileSize(area, maxW, maxH, minSide float64) (w, h float64) {
	if area > 0 {
		h = math.Sqrt(area / tileAspect)
		w = tileAspect * h
	}
	if w > maxW || h > maxH {
		if w/maxW >= h/maxH {
			w, h = maxW, h*maxW/w
		} else {
			w, h = w*maxH/h, maxH
		}
	}
	w = math.Min(math.Max(w, minSide), maxW)
	h = math.Min(math.Max(h, minSide), maxH)
	return w, h
}
