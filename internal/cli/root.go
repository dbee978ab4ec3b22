package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Mondrian turns pathway enrichment tables into Mondrian maps",
		Long: `Mondrian renders pathway enrichment results as Mondrian maps: one colored
tile per pathway, sized by fold change, placed on a grid by its 2D embedding,
with Manhattan connectors for pathway crosstalk.

Input is a CSV with GS_ID, wFC, pFDR, x, y and NAME columns. Relations
(GS_A_ID, GS_B_ID) and pathway annotations (JSON) are optional.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/mondrian/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.canvasCommand())
	root.AddCommand(c.legendCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
