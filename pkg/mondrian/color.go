package mondrian

import (
	"fmt"
	"math"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
)

// Color is a hex RGB color.
type Color string

// Mondrian palette.
const (
	White     Color = "#FFFFFF"
	Gray      Color = "#3e3f39"
	LightGray Color = "#D3D3D3"
	Black     Color = "#050103"
	Red       Color = "#E70503"
	Blue      Color = "#0300AD"
	Yellow    Color = "#FDDE06"
)

// Category is the regulation class of a pathway.
type Category string

const (
	NonSignificant Category = "non_significant"
	Neutral        Category = "neutral"
	Moderate       Category = "moderate"
	Up             Category = "up"
	Down           Category = "down"
)

// Categories returns all categories in legend order.
func Categories() []Category {
	return []Category{NonSignificant, Neutral, Moderate, Up, Down}
}

// ParseCategory converts a category name back to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Color returns the tile color of the category.
func (c Category) Color() Color {
	switch c {
	case NonSignificant:
		return White
	case Moderate:
		return Yellow
	case Up:
		return Red
	case Down:
		return Blue
	default:
		return Black
	}
}

// Title returns a human-readable name.
func (c Category) Title() string {
	switch c {
	case NonSignificant:
		return "Non-significant"
	case Neutral:
		return "Neutral"
	case Moderate:
		return "Moderate"
	case Up:
		return "Up-regulated"
	case Down:
		return "Down-regulated"
	}
	return string(c)
}

// ConnectorColor returns the color of a connector between two categories:
// red between two up-regulated tiles, blue between two down-regulated tiles,
// yellow otherwise.
func ConnectorColor(a, b Category) Color {
	switch {
	case a == Up && b == Up:
		return Red
	case a == Down && b == Down:
		return Blue
	default:
		return Yellow
	}
}

// =============================================================================
// Thresholds
// =============================================================================

// Scale tells how fold changes are expressed.
type Scale string

const (
	// ScaleLog treats 0 as no change and symmetric cutoffs around it.
	ScaleLog Scale = "log"
	// ScaleRatio treats 1 as no change with ratio cutoffs above and below it.
	ScaleRatio Scale = "ratio"
)

// DefaultSignificance is the adjusted p-value below which a change counts.
const DefaultSignificance = 0.05

// Thresholds is the classification table mapping fold change and p-value
// to a Category.
type Thresholds struct {
	Scale        Scale   `json:"scale" toml:"scale"`
	Significance float64 `json:"significance" toml:"significance"`
	Up           float64 `json:"up" toml:"up"`
	Down         float64 `json:"down" toml:"down"`
	Neutral      float64 `json:"neutral" toml:"neutral"`
}

// DefaultThresholds returns the log-scale table: FC ≥ 1 up, FC ≤ -1 down,
// |FC| < 0.5 neutral, anything in between moderate.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Scale:        ScaleLog,
		Significance: DefaultSignificance,
		Up:           1.0,
		Down:         -1.0,
		Neutral:      0.5,
	}
}

// RatioThresholds returns the ratio-scale table: FC ≥ 1.25 up, FC ≤ 0.75
// down, anything in between moderate.
func RatioThresholds() Thresholds {
	return Thresholds{
		Scale:        ScaleRatio,
		Significance: DefaultSignificance,
		Up:           1.25,
		Down:         0.75,
	}
}

// ThresholdsFor returns the preset table of a scale.
func ThresholdsFor(s Scale) (Thresholds, error) {
	switch s {
	case ScaleLog, "":
		return DefaultThresholds(), nil
	case ScaleRatio:
		return RatioThresholds(), nil
	}
	return Thresholds{}, apperrors.NewConfigError("thresholds.scale", "unknown scale %q (must be log or ratio)", s)
}

// Validate checks that the table is internally consistent.
func (t Thresholds) Validate() error {
	if !(t.Significance > 0 && t.Significance <= 1) {
		return apperrors.NewConfigError("thresholds.significance", "must be within (0, 1], got %v", t.Significance)
	}
	switch t.Scale {
	case ScaleLog:
		if !(t.Up > 0) {
			return apperrors.NewConfigError("thresholds.up", "must be > 0 on the log scale, got %v", t.Up)
		}
		if !(t.Down < 0) {
			return apperrors.NewConfigError("thresholds.down", "must be < 0 on the log scale, got %v", t.Down)
		}
		if t.Neutral < 0 || t.Neutral > t.Up || t.Neutral > -t.Down {
			return apperrors.NewConfigError("thresholds.neutral", "must be within [0, min(up, -down)], got %v", t.Neutral)
		}
	case ScaleRatio:
		if !(t.Up > 1) {
			return apperrors.NewConfigError("thresholds.up", "must be > 1 on the ratio scale, got %v", t.Up)
		}
		if !(t.Down > 0 && t.Down < 1) {
			return apperrors.NewConfigError("thresholds.down", "must be within (0, 1) on the ratio scale, got %v", t.Down)
		}
		if t.Neutral < 0 {
			return apperrors.NewConfigError("thresholds.neutral", "must be >= 0, got %v", t.Neutral)
		}
	default:
		return apperrors.NewConfigError("thresholds.scale", "unknown scale %q (must be log or ratio)", t.Scale)
	}
	return nil
}

// Classify returns the category of a pathway.
//
// A zero or missing fold change is neutral. Otherwise a p-value at or above
// the significance level (or NaN) is non-significant. Cutoffs are inclusive
// toward the more extreme category, so FC = Up is up-regulated and
// |FC| = Neutral is moderate.
func (t Thresholds) Classify(fc, p float64) Category {
	if fc == 0 || math.IsNaN(fc) {
		return Neutral
	}
	if !(p < t.Significance) {
		return NonSignificant
	}
	switch {
	case fc >= t.Up:
		return Up
	case fc <= t.Down:
		return Down
	}
	if t.Scale == ScaleRatio {
		if math.Abs(fc-1) < t.Neutral {
			return Neutral
		}
		return Moderate
	}
	if math.Abs(fc) < t.Neutral {
		return Neutral
	}
	return Moderate
}

// Describe returns the legend text of a category under this table.
func (t Thresholds) Describe(c Category) string {
	switch c {
	case NonSignificant:
		return fmt.Sprintf("Non-significant (p ≥ %g)", t.Significance)
	case Up:
		return fmt.Sprintf("Up-regulated (FC ≥ %g)", t.Up)
	case Down:
		return fmt.Sprintf("Down-regulated (FC ≤ %g)", t.Down)
	case Neutral:
		if t.Scale == ScaleRatio {
			if t.Neutral > 0 {
				return fmt.Sprintf("Neutral (|FC - 1| < %g)", t.Neutral)
			}
			return "Neutral (FC missing)"
		}
		return fmt.Sprintf("Neutral (|FC| < %g)", t.Neutral)
	case Moderate:
		if t.Scale == ScaleRatio {
			return fmt.Sprintf("Moderate (%g < FC < %g)", t.Down, t.Up)
		}
		return fmt.Sprintf("Moderate (%g ≤ |FC| < %g)", t.Neutral, t.Up)
	}
	return c.Title()
}
