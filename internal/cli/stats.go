package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/stats"
)

// statsCommand creates the stats command, which summarizes a dataset.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		lf      layoutFlags
		top     int
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "stats [dataset.csv]",
		Short: "Summarize a pathway dataset",
		Long: `Summarize a pathway dataset: category counts, the fold-change
distribution, the pathways with the strongest change and, given --relations,
the most connected pathways in the crosstalk network.`,
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

			s, err := runner.Summarize(cmd.Context(), opts, top)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			printSummary(s)
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", stats.DefaultTopN, "pathways listed per ranking")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd.Flags(), true)

	return cmd
}

func printSummary(s stats.Summary) {
	fmt.Println(StyleTitle.Render(s.Dataset))
	printKeyValue("Pathways", strconv.Itoa(s.Total))
	printKeyValue("Significant", strconv.Itoa(s.Significant))
	if s.Rejected > 0 {
		printKeyValue("Rejected", StyleWarning.Render(strconv.Itoa(s.Rejected)))
	}
	if s.Measured > 0 {
		printKeyValue("wFC mean", fmt.Sprintf("%.3f ± %.3f", s.Mean, s.StdDev))
		printKeyValue("wFC median", fmt.Sprintf("%.3f", s.Median))
		printKeyValue("wFC range", fmt.Sprintf("%.3f … %.3f", s.Min, s.Max))
	}
	printCounts(s.Counts)

	if len(s.Top) > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Strongest change"))
		rows := make([][]string, len(s.Top))
		for i, e := range s.Top {
			rows[i] = []string{categoryStyle(e.Category).Render(iconTile), e.ID, e.Name,
				fmt.Sprintf("%+.3f", e.FoldChange), fmt.Sprintf("%.2g", e.PValue)}
		}
		fmt.Println(summaryTable([]string{"", "ID", "Name", "wFC", "pFDR"}, rows, 3, 4))
	}

	if len(s.Hubs) > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Crosstalk hubs"))
		rows := make([][]string, len(s.Hubs))
		for i, h := range s.Hubs {
			rows[i] = []string{h.ID, h.Name, strconv.Itoa(h.Degree),
				fmt.Sprintf("%.3f", h.Betweenness), fmt.Sprintf("%.3f", h.PageRank)}
		}
		fmt.Println(summaryTable([]string{"ID", "Name", "Degree", "Betweenness", "PageRank"}, rows, 2, 3, 4))
	}
}

// summaryTable renders rows with the given numeric columns right-aligned.
func summaryTable(headers []string, rows [][]string, numeric ...int) string {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			s := lipgloss.NewStyle().Padding(0, 1)
			if right[col] {
				s = s.Align(lipgloss.Right).Foreground(colorCyan)
			}
			return s
		}).
		Render()
}
