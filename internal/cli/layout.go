package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pipeline"
)

// layoutCommand creates the layout command for computing map layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		lf      layoutFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset.csv]",
		Short: "Compute a Mondrian map layout from a pathway dataset",
		Long: `Compute a Mondrian map layout from a pathway dataset.

The layout command places one block per pathway, computes the grid lines and
routes connectors, and writes the result as <input>.layout.json. The layout
can then be rendered with the 'visualize' command without recomputing it.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := c.buildOptions(cmd, &lf, nil)
			if err != nil {
				return err
			}
			opts.DatasetPath = args[0]

			runner, err := c.newRunner(cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			return c.runLayout(cmd.Context(), runner, args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd.Flags(), true)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options) error {
	in, loadHit, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Placing %d pathways...", in.Dataset.Len()))
	spinner.Start()

	l, layoutHit, err := runner.LayoutWithCacheInfo(ctx, in, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := mondrian.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Blocks), len(l.Connectors), len(l.Rejected), loadHit && layoutHit)
	printCounts(l.Counts())
	printRejected("rows", in.Dataset.Errors)
	printRejected("pathways not placed", l.Rejected)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
