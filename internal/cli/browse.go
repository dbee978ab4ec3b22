package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/mondrian"
)

// browseCommand creates the browse command, an interactive pathway list.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		lf      layoutFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "browse [dataset.csv]",
		Short: "Browse the pathways of a map interactively",
		Long: `Browse the pathways of a map interactively.

The list shows every placed pathway with its category, fold change, p-value,
grid cell and connector count. Press enter to print the details of the
selected pathway.`,
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

			ctx := cmd.Context()
			in, err := runner.Load(ctx, opts)
			if err != nil {
				return err
			}
			l, err := runner.Layout(ctx, in, opts)
			if err != nil {
				return err
			}
			if len(l.Blocks) == 0 {
				printWarning("No pathways placed")
				return nil
			}

			final, err := tea.NewProgram(NewPathwayListModel(l), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(PathwayListModel); ok && m.Selected != nil {
				printBlock(*m.Selected, l)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd.Flags(), true)

	return cmd
}

// printBlock prints the details of one pathway.
func printBlock(b mondrian.Block, l mondrian.Layout) {
	fmt.Println(categoryStyle(b.Category).Render(iconTile) + " " + StyleTitle.Render(b.Name))
	printKeyValue("ID", b.ID)
	printKeyValue("Category", l.Thresholds.Describe(b.Category))
	printKeyValue("wFC", fmt.Sprintf("%+.4f", b.FoldChange))
	printKeyValue("pFDR", fmt.Sprintf("%.4g", b.PValue))
	printKeyValue("Position", fmt.Sprintf("(%g, %g)", b.X, b.Y))
	cell := b.Cell.String()
	if b.Displaced {
		cell += StyleWarning.Render(" displaced")
	}
	printKeyValue("Cell", cell)
	printKeyValue("Tile", fmt.Sprintf("%.1f × %.1f", b.Rect.Width(), b.Rect.Height()))

	for _, kv := range [][2]string{{"Description", b.Description}, {"Ontology", b.Ontology}, {"Disease", b.Disease}} {
		if kv[1] != "" {
			printKeyValue(kv[0], kv[1])
		}
	}

	var linked []string
	for _, conn := range l.Connectors {
		switch b.ID {
		case conn.From:
			linked = append(linked, conn.To)
		case conn.To:
			linked = append(linked, conn.From)
		}
	}
	if len(linked) > 0 {
		printKeyValue("Linked to", strings.Join(linked, ", "))
	}
}
