package cache

import "fmt"

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// DatasetKey returns the key of a parsed dataset.
	DatasetKey(datasetHash string) string

	// LayoutKey returns the key of a layout computed from a dataset.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the options that change a computed layout.
type LayoutKeyOpts struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	CellWidth     int     `json:"cell_width"`
	CellHeight    int     `json:"cell_height"`
	AreaScale     float64 `json:"area_scale"`
	MinTileSide   float64 `json:"min_tile_side"`
	Scale         string  `json:"scale"`
	Significance  float64 `json:"significance"`
	Up            float64 `json:"up"`
	Down          float64 `json:"down"`
	Neutral       float64 `json:"neutral"`
	MaxRelations  int     `json:"max_relations"`
	RelationsHash string  `json:"relations_hash,omitempty"`
	InfoHash      string  `json:"info_hash,omitempty"`
	Title         string  `json:"title,omitempty"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Kind     string  `json:"kind"`
	Format   string  `json:"format"`
	Style    string  `json:"style,omitempty"`
	Title    string  `json:"title,omitempty"`
	ShowIDs  bool    `json:"show_ids,omitempty"`
	Tooltips bool    `json:"tooltips,omitempty"`
	Maximize bool    `json:"maximize,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	All      bool    `json:"all,omitempty"`
	PNGScale float64 `json:"png_scale,omitempty"`
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DatasetKey returns "dataset:<hash>".
func (DefaultKeyer) DatasetKey(datasetHash string) string {
	return fmt.Sprintf("dataset:%s", datasetHash)
}

// LayoutKey hashes the dataset hash together with opts.
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey hashes the layout hash together with opts.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
