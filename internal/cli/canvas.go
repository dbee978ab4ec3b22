package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/pipeline"
)

// canvasCommand creates the canvas command: several maps in one SVG grid.
func (c *CLI) canvasCommand() *cobra.Command {
	var (
		lf         layoutFlags
		rf         renderFlags
		output     string
		rows, cols int
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "canvas [dataset.csv...]",
		Short: "Arrange several pathway maps side by side",
		Long: `Arrange several pathway maps side by side in one SVG.

Each dataset is laid out on its own and titled with its file name. Maps are
placed row by row in a rows x cols grid; by default all maps share one row.`,
		Example: `  mondrian canvas wt.csv ko.csv rescue.csv -o comparison.svg
  mondrian canvas a.csv b.csv c.csv d.csv --rows 2 --cols 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, base, err := c.buildOptions(cmd, &lf, &rf)
			if err != nil {
				return err
			}
			if err := base.ValidateForRender(); err != nil {
				return err
			}

			if !cmd.Flags().Changed("cols") {
				cols = (len(args) + rows - 1) / max(rows, 1)
			}

			maps := make([]pipeline.Options, len(args))
			for i, path := range args {
				opts := base
				opts.DatasetPath = path
				opts.Title = datasetName(path)
				maps[i] = opts
			}

			runner, err := c.newRunner(cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			ctx := cmd.Context()
			spinner := newSpinner(ctx, fmt.Sprintf("Laying out %d maps...", len(maps)))
			spinner.Start()
			svg, err := runner.Canvas(ctx, maps, rows, cols)
			if err != nil {
				spinner.StopWithError("Canvas failed")
				return err
			}
			spinner.Stop()

			if err := writeOutput(output, svg); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			if output != stdoutPath {
				printSuccess("Canvas complete (%d×%d)", rows, cols)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "canvas.svg", "output SVG file, or - for stdout")
	cmd.Flags().IntVar(&rows, "rows", 1, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", 0, "grid columns (default: enough for all maps)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd.Flags(), false)
	rf.register(cmd.Flags(), false)

	return cmd
}
