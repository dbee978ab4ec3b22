// Package config loads the TOML configuration shared by the CLI and the
// HTTP explorer.
//
// A configuration file is optional. Values it sets replace the defaults
// returned by [Default]; values it omits keep them. Command-line flags are
// applied on top by the caller.
//
//	[canvas]
//	width = 1001
//	cell_width = 50
//
//	[thresholds]
//	scale = "ratio"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pathway"
	"github.com/matzehuels/mondrian/pkg/render/styles"
)

// FileName is the name of the configuration file inside the config directory.
const FileName = "config.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Server defaults.
const (
	DefaultAddr          = ":8080"
	DefaultMaxUploadMB   = 10
	DefaultDatasetTTL    = 24 * time.Hour
	DefaultMaxDatasets   = 100
	DefaultRenderTimeout = 30 * time.Second
)

// Config is the full application configuration.
type Config struct {
	Canvas     Canvas              `toml:"canvas"`
	Thresholds mondrian.Thresholds `toml:"thresholds"`
	Relations  Relations           `toml:"relations"`
	Render     Render              `toml:"render"`
	Server     Server              `toml:"server"`
	Cache      Cache               `toml:"cache"`
}

// Canvas configures the grid system and tile sizing.
type Canvas struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	CellWidth   int     `toml:"cell_width"`
	CellHeight  int     `toml:"cell_height"`
	AreaScale   float64 `toml:"area_scale"`
	MinTileSide float64 `toml:"min_tile_side"`
}

// Grid returns the canvas as a grid system.
func (c Canvas) Grid() mondrian.GridSystem {
	return mondrian.GridSystem{
		Width:      c.Width,
		Height:     c.Height,
		CellWidth:  c.CellWidth,
		CellHeight: c.CellHeight,
	}
}

// Relations configures connector selection.
type Relations struct {
	// Max is the number of connectors one pathway may take part in.
	Max int `toml:"max"`
}

// Render configures map rendering.
type Render struct {
	Style    string  `toml:"style"`
	ShowIDs  bool    `toml:"show_ids"`
	Tooltips bool    `toml:"tooltips"`
	Maximize bool    `toml:"maximize"`
	PNGScale float64 `toml:"png_scale"`
}

// Server configures the HTTP explorer.
type Server struct {
	Addr          string   `toml:"addr"`
	MaxUploadMB   int64    `toml:"max_upload_mb"`
	MaxDatasets   int      `toml:"max_datasets"`
	DatasetTTL    Duration `toml:"dataset_ttl"`
	RenderTimeout Duration `toml:"render_timeout"`
}

// Cache configures the artifact cache.
type Cache struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`

	// Prefix scopes every cache key, so several explorers can share one
	// Redis instance.
	Prefix string `toml:"prefix"`
}

// Duration is a time.Duration written as a string ("90s", "24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	grid := mondrian.DefaultGridSystem()
	return Config{
		Canvas: Canvas{
			Width:       grid.Width,
			Height:      grid.Height,
			CellWidth:   grid.CellWidth,
			CellHeight:  grid.CellHeight,
			AreaScale:   mondrian.DefaultAreaScale,
			MinTileSide: mondrian.MinTileSide,
		},
		Thresholds: mondrian.DefaultThresholds(),
		Relations:  Relations{Max: pathway.DefaultMaxRelations},
		Render: Render{
			Style:    styles.DefaultStyle,
			Tooltips: true,
			PNGScale: 2,
		},
		Server: Server{
			Addr:          DefaultAddr,
			MaxUploadMB:   DefaultMaxUploadMB,
			MaxDatasets:   DefaultMaxDatasets,
			DatasetTTL:    Duration{DefaultDatasetTTL},
			RenderTimeout: Duration{DefaultRenderTimeout},
		},
		Cache: Cache{Backend: BackendFile},
	}
}

// Load reads the file at path on top of the defaults and validates the
// result. A missing file is FILE_NOT_FOUND; unknown keys are rejected.
func Load(path string) (Config, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config not found: %s", path)
		}
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes TOML data on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse config (line %d)", perr.Position.Line)
		}
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, apperrors.NewConfigError(undecoded[0].String(), "unknown configuration key")
	}

	// A custom scale without explicit cutoffs picks up that scale's preset.
	if md.IsDefined("thresholds", "scale") {
		preset, err := mondrian.ThresholdsFor(cfg.Thresholds.Scale)
		if err != nil {
			return Config{}, err
		}
		for _, f := range []struct {
			key string
			dst *float64
			v   float64
		}{
			{"significance", &cfg.Thresholds.Significance, preset.Significance},
			{"up", &cfg.Thresholds.Up, preset.Up},
			{"down", &cfg.Thresholds.Down, preset.Down},
			{"neutral", &cfg.Thresholds.Neutral, preset.Neutral},
		} {
			if !md.IsDefined("thresholds", f.key) {
				*f.dst = f.v
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the file at DefaultPath when it exists and returns the
// defaults otherwise.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns $XDG_CONFIG_HOME/mondrian/config.toml, falling back to
// ~/.config/mondrian/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mondrian", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mondrian", FileName), nil
}

// Validate checks every section and returns the first problem found as a
// ConfigError.
func (c Config) Validate() error {
	if err := c.Canvas.Grid().Validate(); err != nil {
		return err
	}
	if c.Canvas.AreaScale <= 0 {
		return apperrors.NewConfigError("canvas.area_scale", "must be positive, got %g", c.Canvas.AreaScale)
	}
	if c.Canvas.MinTileSide <= 0 {
		return apperrors.NewConfigError("canvas.min_tile_side", "must be positive, got %g", c.Canvas.MinTileSide)
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.Relations.Max < 1 {
		return apperrors.NewConfigError("relations.max", "must be at least 1, got %d", c.Relations.Max)
	}
	if !styles.Valid(c.Render.Style) {
		return apperrors.NewConfigError("render.style", "unknown style %q (must be one of: %v)", c.Render.Style, styles.Names())
	}
	if c.Render.PNGScale <= 0 {
		return apperrors.NewConfigError("render.png_scale", "must be positive, got %g", c.Render.PNGScale)
	}
	if c.Server.MaxUploadMB < 1 {
		return apperrors.NewConfigError("server.max_upload_mb", "must be at least 1, got %d", c.Server.MaxUploadMB)
	}
	if c.Server.MaxDatasets < 1 {
		return apperrors.NewConfigError("server.max_datasets", "must be at least 1, got %d", c.Server.MaxDatasets)
	}
	if c.Server.DatasetTTL.Duration <= 0 {
		return apperrors.NewConfigError("server.dataset_ttl", "must be positive")
	}
	if c.Server.RenderTimeout.Duration <= 0 {
		return apperrors.NewConfigError("server.render_timeout", "must be positive")
	}
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return apperrors.NewConfigError("cache.backend", "unknown backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return apperrors.NewConfigError("cache.redis_url", "required when backend is redis")
	}
	return nil
}

// Encode writes cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
