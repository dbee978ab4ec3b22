package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name     string
		backend  string
		dir      string
		noCache  bool
		wantFile bool
	}{
		{"file backend", config.BackendFile, "", false, true},
		{"explicit dir", config.BackendFile, t.TempDir(), false, true},
		{"no-cache flag", config.BackendFile, "", true, false},
		{"none backend", config.BackendNone, "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Cache.Backend = tt.backend
			cfg.Cache.Dir = tt.dir

			c, err := newCache(cfg, tt.noCache)
			if err != nil {
				t.Fatal(err)
			}
			defer c.Close()

			fc, isFile := c.(*cache.FileCache)
			if isFile != tt.wantFile {
				t.Fatalf("file cache = %v, want %v", isFile, tt.wantFile)
			}
			if isFile && tt.dir != "" && fc.Dir() != tt.dir {
				t.Errorf("Dir() = %q, want %q", fc.Dir(), tt.dir)
			}
		})
	}
}
