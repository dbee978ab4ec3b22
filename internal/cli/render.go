package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/pipeline"
)

// stdoutPath as the output writes a single artifact to standard output.
const stdoutPath = "-"

// renderCommand creates the render command: dataset CSV straight to
// artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf      layoutFlags
		rf      renderFlags
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "render [dataset.csv]",
		Short: "Render a pathway dataset as a Mondrian map or relation network",
		Long: `Render a pathway dataset as a Mondrian map or relation network.

The dataset is a CSV with GS_ID, wFC, pFDR, x, y and NAME columns. Rows that
fail validation are reported and skipped. With --relations, connectors are
drawn between related pathways; --type network renders those relations as a
graph instead of a map.

Results are cached locally for faster subsequent runs.`,
		Example: `  mondrian render wt_vs_ko.csv
  mondrian render wt_vs_ko.csv -r crosstalk.csv -f svg,png --show-ids
  mondrian render wt_vs_ko.csv -r crosstalk.csv -t network -f dot -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := c.buildOptions(cmd, &lf, &rf)
			if err != nil {
				return err
			}
			opts.DatasetPath = args[0]
			opts.Refresh = refresh
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			return c.runRender(cmd.Context(), runner, args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-parse the dataset even when cached")
	lf.register(cmd.Flags(), true)
	rf.register(cmd.Flags(), true)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options) error {
	paths, err := outputPaths(opts.Kind, opts.Formats, input, output)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.Kind))
	spinner.Start()
	prog := newProgress(c.Logger)

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d blocks", res.Stats.Blocks))

	if err := writeArtifacts(ctx, res.Artifacts, opts.Formats, paths); err != nil {
		return err
	}
	if output == stdoutPath {
		return nil
	}

	printSuccess("%s complete", titleCase(opts.Kind))
	for _, f := range opts.Formats {
		printFile(paths[f])
	}
	printStats(res.Stats.Blocks, res.Stats.Connectors, res.Stats.Rejected, res.CacheInfo.RenderHit)
	printCounts(res.Layout.Counts())
	printRejected("rows", res.Input.Dataset.Errors)
	printRejected("pathways not placed", res.Layout.Rejected)
	return nil
}

// =============================================================================
// Output Paths
// =============================================================================

// basePath derives the base output path from the output and input paths.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to. A single
// format with an explicit output uses that path verbatim; otherwise files
// are named <base>[.network].<format>.
func outputPaths(kind string, formats []string, input, output string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if output == stdoutPath {
		if len(formats) != 1 {
			return nil, fmt.Errorf("writing to stdout needs exactly one format, got %d", len(formats))
		}
		paths[formats[0]] = stdoutPath
		return paths, nil
	}
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths, nil
	}

	base := basePath(output, input)
	if kind == pipeline.KindNetwork {
		base += ".network"
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths, nil
}

// writeArtifacts writes each format's bytes to its path, in format order.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, formats []string, paths map[string]string) error {
	logger := loggerFromContext(ctx)
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return fmt.Errorf("no %s output produced", f)
		}
		if err := writeOutput(paths[f], data); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
		logger.Debugf("Wrote %s (%d bytes)", paths[f], len(data))
	}
	return nil
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
