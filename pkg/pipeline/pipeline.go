// Package pipeline provides the load → layout → render pipeline shared by
// the CLI and the HTTP explorer.
//
// Keeping the stages in one place gives every entry point the same
// defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse the pathway CSV, the optional relations CSV and the
//     optional pathway info JSON
//  2. Layout: Classify, size and place blocks, then route connectors
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, CSV)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DatasetPath: "tumor_vs_normal.csv",
//	    Formats:     []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mondrian/pkg/cache"
	apperrors "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pathway"
	"github.com/matzehuels/mondrian/pkg/render"
	"github.com/matzehuels/mondrian/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultCanvasSize is the default canvas width and height in pixels.
	DefaultCanvasSize = mondrian.DefaultCanvasSize

	// DefaultCellSize is the default grid cell side in pixels.
	DefaultCellSize = mondrian.DefaultCellSize

	// DefaultAreaScale multiplies |log2 wFC| into a tile area.
	DefaultAreaScale = mondrian.DefaultAreaScale

	// DefaultMinTileSide is the smallest drawn tile side.
	DefaultMinTileSide = mondrian.MinTileSide

	// DefaultMaxRelations is the number of connectors one pathway may take part in.
	DefaultMaxRelations = pathway.DefaultMaxRelations

	// DefaultPNGScale is the PNG resolution multiplier.
	DefaultPNGScale = render.DefaultPNGScale
)

// DefaultStyle is the default visual style.
const DefaultStyle = styles.DefaultStyle

// Kinds of rendered output.
const (
	KindMap     = "map"
	KindNetwork = "network"
)

// DefaultKind is the default output kind.
const DefaultKind = KindMap

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatDOT  = "dot"
)

// ValidFormats is the set of formats a map can be rendered to.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatCSV:  true,
}

// NetworkFormats is the set of formats a relation network can be rendered to.
var NetworkFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
	FormatDOT: true,
}

// ValidKinds is the set of supported output kinds.
var ValidKinds = map[string]bool{
	KindMap:     true,
	KindNetwork: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Raw bytes take precedence over paths.
	DatasetPath   string `json:"dataset_path,omitempty"`
	DatasetName   string `json:"dataset_name,omitempty"`
	Dataset       []byte `json:"-"`
	RelationsPath string `json:"relations_path,omitempty"`
	Relations     []byte `json:"-"`
	InfoPath      string `json:"info_path,omitempty"`
	Info          []byte `json:"-"`
	Refresh       bool   `json:"refresh,omitempty"`

	// Layout options
	Width        int                 `json:"width,omitempty"`
	Height       int                 `json:"height,omitempty"`
	CellWidth    int                 `json:"cell_width,omitempty"`
	CellHeight   int                 `json:"cell_height,omitempty"`
	AreaScale    float64             `json:"area_scale,omitempty"`
	MinTileSide  float64             `json:"min_tile_side,omitempty"`
	Thresholds   mondrian.Thresholds `json:"thresholds"`
	MaxRelations int                 `json:"max_relations,omitempty"`
	Title        string              `json:"title,omitempty"`

	// Render options
	Kind     string   `json:"kind,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	ShowIDs  bool     `json:"show_ids,omitempty"`
	Tooltips bool     `json:"tooltips,omitempty"`
	Maximize bool     `json:"maximize,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`  // network: name and wFC in node labels
	AllNodes bool     `json:"all_nodes,omitempty"` // network: include pathways without relations
	PNGScale float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Input is the loaded dataset with its relations.
	Input *Input

	// Layout is the computed map.
	Layout mondrian.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats RunStats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// RunStats contains pipeline execution statistics.
type RunStats struct {
	Records    int
	Rejected   int
	Blocks     int
	Connectors int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the parsed dataset came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid for kind.
func ValidateFormat(kind, format string) error {
	valid := ValidFormats
	if kind == KindNetwork {
		valid = NetworkFormats
	}
	if !valid[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid %s format: %q (must be one of: %s)",
			kind, format, strings.Join(sortedKeys(valid), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid for kind.
func ValidateFormats(kind string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(kind, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := styles.Lookup(style)
	return err
}

// ValidateKind checks that an output kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid kind: %q (must be one of: map, network)", kind)
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a dataset source is given.
func (o *Options) ValidateForLoad() error {
	if o.Dataset == nil && o.DatasetPath == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "dataset is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultCanvasSize
	}
	if o.Height == 0 {
		o.Height = DefaultCanvasSize
	}
	if o.CellWidth == 0 {
		o.CellWidth = DefaultCellSize
	}
	if o.CellHeight == 0 {
		o.CellHeight = DefaultCellSize
	}
	if o.AreaScale == 0 {
		o.AreaScale = DefaultAreaScale
	}
	if o.MinTileSide == 0 {
		o.MinTileSide = DefaultMinTileSide
	}
	if o.Thresholds == (mondrian.Thresholds{}) {
		o.Thresholds = mondrian.DefaultThresholds()
	}
	if o.MaxRelations == 0 {
		o.MaxRelations = DefaultMaxRelations
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.Grid().Validate(); err != nil {
		return err
	}
	if err := o.Thresholds.Validate(); err != nil {
		return err
	}
	if o.MaxRelations < 0 {
		return apperrors.NewConfigError("relations.max", "must not be negative, got %d", o.MaxRelations)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if err := ValidateFormats(o.Kind, o.Formats); err != nil {
		return err
	}
	if o.PNGScale < 0 {
		return apperrors.NewConfigError("render.png_scale", "must be positive, got %g", o.PNGScale)
	}
	return ValidateStyle(o.Style)
}

// IsNetwork returns true if this renders the relation network.
func (o *Options) IsNetwork() bool {
	return o.Kind == KindNetwork
}

// Grid returns the grid system described by the layout options.
func (o *Options) Grid() mondrian.GridSystem {
	return mondrian.GridSystem{
		Width:      o.Width,
		Height:     o.Height,
		CellWidth:  o.CellWidth,
		CellHeight: o.CellHeight,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(in *Input) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:         o.Width,
		Height:        o.Height,
		CellWidth:     o.CellWidth,
		CellHeight:    o.CellHeight,
		AreaScale:     o.AreaScale,
		MinTileSide:   o.MinTileSide,
		Scale:         string(o.Thresholds.Scale),
		Significance:  o.Thresholds.Significance,
		Up:            o.Thresholds.Up,
		Down:          o.Thresholds.Down,
		Neutral:       o.Thresholds.Neutral,
		MaxRelations:  o.MaxRelations,
		RelationsHash: in.RelationsHash,
		InfoHash:      in.InfoHash,
		Title:         o.Title,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Kind:     o.Kind,
		Format:   format,
		Style:    o.Style,
		Title:    o.Title,
		ShowIDs:  o.ShowIDs,
		Tooltips: o.Tooltips,
		Maximize: o.Maximize,
		Detailed: o.Detailed,
		All:      o.AllNodes,
	}
	if format == FormatPNG {
		k.PNGScale = o.PNGScale
	}
	return k
}
