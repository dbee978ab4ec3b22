package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mondrian/pkg/mondrian"
)

const testCSV = `GS_ID,wFC,pFDR,x,y,NAME
WAG002659,2.1,0.001,375,225,Glycolysis
WAG002805,0.4,0.002,625,425,Apoptosis
WAG000123,-1.6,0.01,125,825,Wnt signaling
`

const testRelations = `GS_A_ID,GS_B_ID
WAG002659,WAG002805
`

// testEnv isolates config and cache directories and writes the sample
// dataset, returning its path.
func testEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir := t.TempDir()
	for name, data := range map[string]string{"wt.csv": testCSV, "rels.csv": testRelations} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "wt.csv")
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"render", "layout", "visualize", "canvas", "legend", "stats", "browse", "serve", "cache", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestRenderCommand(t *testing.T) {
	input := testEnv(t)
	out := filepath.Join(filepath.Dir(input), "out", "wt")

	if err := execute(t, "render", input, "-r", filepath.Join(filepath.Dir(input), "rels.csv"),
		"-f", "svg,csv,json", "-o", out, "--show-ids"); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("svg output is not SVG")
	}
	csv, err := os.ReadFile(out + ".csv")
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(strings.TrimSpace(string(csv)), "\n"); lines != 3 {
		t.Errorf("csv has %d data rows, want 3", lines)
	}

	l, err := mondrian.ReadLayoutFile(out + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Blocks) != 3 || len(l.Connectors) != 1 {
		t.Errorf("layout has %d blocks and %d connectors, want 3 and 1", len(l.Blocks), len(l.Connectors))
	}
	if l.Title != "wt" {
		t.Errorf("Title = %q, want wt", l.Title)
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	input := testEnv(t)
	base := strings.TrimSuffix(input, ".csv")

	if err := execute(t, "layout", input, "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if _, err := os.Stat(base + ".layout.json"); err != nil {
		t.Fatalf("layout file: %v", err)
	}

	if err := execute(t, "visualize", base+".layout.json", "-f", "csv", "-t", "network", "--no-cache"); err == nil {
		t.Error("visualize accepted a map-only format combination")
	}
	if err := execute(t, "visualize", base+".layout.json", "-f", "dot", "-t", "network", "--all", "--no-cache"); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	dot, err := os.ReadFile(base + ".network.dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), "WAG002659") {
		t.Errorf("dot output missing nodes:\n%s", dot)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := testEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "absent.csv")}},
		{"bad format", []string{"render", input, "-f", "gif"}},
		{"bad style", []string{"render", input, "--style", "neon"}},
		{"network csv", []string{"render", input, "-t", "network", "-f", "csv"}},
		{"bad config", []string{"render", input, "--config", filepath.Join(t.TempDir(), "missing.toml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestConfigInitAndShow(t *testing.T) {
	testEnv(t)
	path := filepath.Join(t.TempDir(), "mondrian.toml")

	if err := execute(t, "config", "init", "--config", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if err := execute(t, "config", "show", "--config", path); err != nil {
		t.Errorf("config show: %v", err)
	}
}

func TestLegendCommand(t *testing.T) {
	testEnv(t)
	out := filepath.Join(t.TempDir(), "legend.svg")
	if err := execute(t, "legend", "--scale", "ratio", "-o", out); err != nil {
		t.Fatalf("legend: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("legend is not SVG")
	}
}
