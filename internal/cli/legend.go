package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

// legendCommand creates the legend command, which explains the tile colors.
func (c *CLI) legendCommand() *cobra.Command {
	var (
		lf     layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Show the color legend for the configured thresholds",
		Long: `Show the color legend for the configured thresholds.

Without --output the legend is printed to the terminal. With --output it is
written as an SVG that can sit next to rendered maps.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts, err := c.buildOptions(cmd, &lf, nil)
			if err != nil {
				return err
			}
			th := opts.Thresholds
			if th == (mondrian.Thresholds{}) {
				th = mondrian.DefaultThresholds()
			}
			if err := th.Validate(); err != nil {
				return err
			}

			if output != "" {
				if err := writeOutput(output, sink.RenderLegend(th)); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				if output != stdoutPath {
					printSuccess("Legend written")
					printFile(output)
				}
				return nil
			}

			fmt.Println(StyleTitle.Render(fmt.Sprintf("Categories (%s scale)", th.Scale)))
			for _, cat := range mondrian.Categories() {
				fmt.Printf("  %s %s\n", categoryStyle(cat).Render(iconTile+iconTile), th.Describe(cat))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the legend as SVG")
	lf.register(cmd.Flags(), false)

	return cmd
}
