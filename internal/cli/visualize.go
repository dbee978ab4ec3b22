package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		rf      renderFlags
		title   string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout' or
'render -f json') and renders it. The layout holds every block, line and
connector, so this step only draws.

Use 'render' as a shortcut to go directly from a dataset to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := c.buildOptions(cmd, nil, &rf)
			if err != nil {
				return err
			}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}

			l, err := mondrian.ReadLayoutFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}
			if cmd.Flags().Changed("title") {
				l.Title = title
			}

			runner, err := c.newRunner(cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			return c.runVisualize(cmd.Context(), runner, l, args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVar(&title, "title", "", "replace the layout's title")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	rf.register(cmd.Flags(), true)

	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, runner *pipeline.Runner, l mondrian.Layout, input, output string, opts pipeline.Options) error {
	paths, err := outputPaths(opts.Kind, opts.Formats, trimLayoutExt(input), output)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.Kind))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if err := writeArtifacts(ctx, artifacts, opts.Formats, paths); err != nil {
		return err
	}
	if output == stdoutPath {
		return nil
	}

	printSuccess("%s complete", titleCase(opts.Kind))
	for _, f := range opts.Formats {
		printFile(paths[f])
	}
	printStats(len(l.Blocks), len(l.Connectors), len(l.Rejected), cacheHit)
	return nil
}

// trimLayoutExt strips the final extension, so "x.layout.json" yields
// outputs named x.svg and friends.
func trimLayoutExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
