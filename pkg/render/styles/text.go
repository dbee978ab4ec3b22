package styles

import (
	"bytes"
	"encoding/xml"
	"strings"
)

const (
	fontHeightRatio = 0.45
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.6
	fontSizeMin     = 4.0
	fontSizeMax     = 14.0
)

// FontSize returns the label size that fits the tile.
func FontSize(t Tile) float64 { return fontSizeFor(t.W, t.H, len(t.Label)) }

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TextColor returns a label color readable on fill.
func TextColor(fill string) string {
	switch strings.ToUpper(fill) {
	case "#E70503", "#0300AD", "#050103", "#3E3F39":
		return "#FFFFFF"
	}
	return "#050103"
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
