package styles

import (
	"bytes"
	"slices"
	"strings"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
)

// Style names.
const (
	StyleClassic = "classic"
	StyleFlat    = "flat"
)

// DefaultStyle is used when no style is requested.
const DefaultStyle = StyleClassic

// Style defines the visual appearance of a Mondrian map.
// Implementations control how tiles, lines and labels are drawn.
type Style interface {
	// Name returns the style's registry name.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderTile writes the SVG for a single tile fill.
	RenderTile(buf *bytes.Buffer, t Tile)
	// RenderLine writes the SVG for a grid, border, outline or connector line.
	RenderLine(buf *bytes.Buffer, l Line)
	// RenderLabel writes the SVG for a tile's label text.
	RenderLabel(buf *bytes.Buffer, t Tile)
}

// Tile contains all data needed to render a single pathway tile.
type Tile struct {
	ID         string  // Pathway identifier
	Label      string  // Display text
	X, Y, W, H float64 // Position and dimensions
	CX, CY     float64 // Center coordinates (for text)
	Fill       string  // Fill color
	Tooltip    string  // Hover text (empty if disabled)
}

// Line contains positioning data for a straight stroke.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Width          float64
	Kind           string // "border", "grid", "outline" or "connector"
}

// Names returns the registered style names.
func Names() []string {
	return []string{StyleClassic, StyleFlat}
}

// Lookup returns the style registered under name. An empty name returns
// the default style.
func Lookup(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "", StyleClassic:
		return Classic{}, nil
	case StyleFlat:
		return Flat{}, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidStyle, "unknown style %q (valid: %s)", name, strings.Join(Names(), ", "))
}

// Valid reports whether name is a registered style.
func Valid(name string) bool {
	return name == "" || slices.Contains(Names(), strings.ToLower(name))
}
