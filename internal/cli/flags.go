package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/mondrian/pkg/config"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pipeline"
)

// layoutFlags are the layout options shared by commands that build maps.
// Values start from the configuration; only flags set on the command line
// override it.
type layoutFlags struct {
	relations    string
	info         string
	title        string
	scale        string
	cell         int
	canvas       int
	areaScale    float64
	maxRelations int
}

func (f *layoutFlags) register(fs *pflag.FlagSet, inputs bool) {
	if inputs {
		fs.StringVarP(&f.relations, "relations", "r", "", "pathway relations CSV (GS_A_ID, GS_B_ID)")
		fs.StringVar(&f.info, "pathway-info", "", "pathway annotations JSON")
		fs.StringVar(&f.title, "title", "", "map title (default: dataset name)")
		fs.IntVar(&f.maxRelations, "max-relations", 0, "connectors per pathway (default from config)")
	}
	fs.StringVar(&f.scale, "scale", "", "fold-change scale: log (default), ratio")
	fs.IntVar(&f.cell, "cell", 0, "grid cell size in pixels")
	fs.IntVar(&f.canvas, "canvas", 0, "canvas size in pixels")
	fs.Float64Var(&f.areaScale, "area-scale", 0, "tile area per unit of |wFC|")
}

func (f *layoutFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) error {
	if fs.Changed("relations") {
		opts.RelationsPath = f.relations
	}
	if fs.Changed("pathway-info") {
		opts.InfoPath = f.info
	}
	if fs.Changed("title") {
		opts.Title = f.title
	}
	if fs.Changed("scale") {
		th, err := mondrian.ThresholdsFor(mondrian.Scale(f.scale))
		if err != nil {
			return err
		}
		opts.Thresholds = th
	}
	if fs.Changed("cell") {
		opts.CellWidth, opts.CellHeight = f.cell, f.cell
	}
	if fs.Changed("canvas") {
		opts.Width, opts.Height = f.canvas, f.canvas
	}
	if fs.Changed("area-scale") {
		opts.AreaScale = f.areaScale
	}
	if fs.Changed("max-relations") {
		opts.MaxRelations = f.maxRelations
	}
	return nil
}

// renderFlags are the render options shared by commands that write
// artifacts.
type renderFlags struct {
	kind     string
	formats  string
	style    string
	showIDs  bool
	tooltips bool
	maximize bool
	detailed bool
	all      bool
	pngScale float64
}

func (f *renderFlags) register(fs *pflag.FlagSet, kinds bool) {
	if kinds {
		fs.StringVarP(&f.kind, "type", "t", pipeline.KindMap, "output type: map (default), network")
		fs.BoolVar(&f.detailed, "detailed", false, "network: show name and wFC in node labels")
		fs.BoolVar(&f.all, "all", false, "network: include pathways without relations")
	}
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, csv, dot (comma-separated)")
	fs.StringVar(&f.style, "style", "", "visual style: classic (default), flat")
	fs.BoolVar(&f.showIDs, "show-ids", false, "draw short pathway IDs on tiles")
	fs.BoolVar(&f.tooltips, "tooltips", true, "add hover tooltips")
	fs.BoolVar(&f.maximize, "maximize", false, "render at the maximized canvas size")
	fs.Float64Var(&f.pngScale, "png-scale", 0, "PNG resolution multiplier")
}

func (f *renderFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	opts.Kind = f.kind
	opts.Formats = parseFormats(f.formats)
	opts.Detailed = f.detailed
	opts.AllNodes = f.all
	if fs.Changed("style") {
		opts.Style = f.style
	}
	if fs.Changed("show-ids") {
		opts.ShowIDs = f.showIDs
	}
	if fs.Changed("tooltips") {
		opts.Tooltips = f.tooltips
	}
	if fs.Changed("maximize") {
		opts.Maximize = f.maximize
	}
	if fs.Changed("png-scale") {
		opts.PNGScale = f.pngScale
	}
}

// buildOptions loads the configuration and layers the command's flags on
// top. Either flag set may be nil.
func (c *CLI) buildOptions(cmd *cobra.Command, lf *layoutFlags, rf *renderFlags) (config.Config, pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return config.Config{}, pipeline.Options{}, err
	}
	opts := pipeline.FromConfig(cfg)
	opts.Logger = c.Logger
	if lf != nil {
		if err := lf.apply(cmd.Flags(), &opts); err != nil {
			return config.Config{}, pipeline.Options{}, err
		}
	}
	if rf != nil {
		rf.apply(cmd.Flags(), &opts)
	}
	return cfg, opts, nil
}
