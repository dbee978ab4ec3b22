package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Canvas.Grid() != mondrian.DefaultGridSystem() {
		t.Errorf("Default grid = %+v, want %+v", cfg.Canvas.Grid(), mondrian.DefaultGridSystem())
	}
	if cfg.Thresholds != mondrian.DefaultThresholds() {
		t.Errorf("Default thresholds = %+v", cfg.Thresholds)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[canvas]
cell_width = 100
cell_height = 100

[thresholds]
scale = "ratio"
up = 1.5

[relations]
max = 3

[render]
style = "flat"
show_ids = true

[server]
addr = "127.0.0.1:9000"
dataset_ttl = "90m"

[cache]
backend = "none"
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Canvas.CellWidth != 100 || cfg.Canvas.Width != mondrian.DefaultCanvasSize {
		t.Errorf("Canvas = %+v", cfg.Canvas)
	}
	ratio := mondrian.RatioThresholds()
	if cfg.Thresholds.Scale != mondrian.ScaleRatio || cfg.Thresholds.Up != 1.5 || cfg.Thresholds.Down != ratio.Down {
		t.Errorf("Thresholds = %+v, want ratio preset with up 1.5", cfg.Thresholds)
	}
	if cfg.Relations.Max != 3 {
		t.Errorf("Relations.Max = %d, want 3", cfg.Relations.Max)
	}
	if cfg.Render.Style != "flat" || !cfg.Render.ShowIDs || !cfg.Render.Tooltips {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.DatasetTTL.Duration != 90*time.Minute {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.MaxUploadMB != DefaultMaxUploadMB {
		t.Errorf("Server.MaxUploadMB = %d, want default", cfg.Server.MaxUploadMB)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("Cache.Backend = %q", cfg.Cache.Backend)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"cell too small", "[canvas]\ncell_width = 5", "canvas.cell_width"},
		{"area scale", "[canvas]\narea_scale = -1", "canvas.area_scale"},
		{"bad scale", "[thresholds]\nscale = \"sqrt\"", "thresholds.scale"},
		{"significance", "[thresholds]\nsignificance = 2", "thresholds.significance"},
		{"relations", "[relations]\nmax = 0", "relations.max"},
		{"style", "[render]\nstyle = \"cubist\"", "render.style"},
		{"backend", "[cache]\nbackend = \"memcached\"", "cache.backend"},
		{"redis url", "[cache]\nbackend = \"redis\"", "cache.redis_url"},
		{"unknown key", "[canvas]\ncolour = \"red\"", "canvas.colour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			var cerr *apperrors.ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Parse() error = %v, want ConfigError", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cerr.Field, tt.field)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[canvas\nwidth = 1"))
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("Parse(bad toml) = %v, want INVALID_CONFIG", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("[relations]\nmax = 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Relations.Max != 5 {
		t.Errorf("Relations.Max = %d, want 5", cfg.Relations.Max)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Relations.Max != Default().Relations.Max {
		t.Error("LoadDefault() without a file should return defaults")
	}

	path, _ := DefaultPath()
	if path != filepath.Join(dir, "mondrian", FileName) {
		t.Errorf("DefaultPath() = %q", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[render]\nmaximize = true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Render.Maximize {
		t.Error("LoadDefault() did not read the config file")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Server.DatasetTTL = Duration{2 * time.Hour}
	data, err := Encode(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Encode()) error = %v\n%s", err, data)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

