package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/pipeline"
)

// renderCommand creates the render command for drawing one election chart.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render <tipo> [año]",
		Short: "Render an election chart to SVG, PNG, PDF, JSON or DOT",
		Long: `Render an election chart to one or more files.

The election type is ejecutivo or legislativo; the year defaults to 2024.
Charts are barras (default), circular, hemiciclo (legislativo only) and mapa.

Examples:
  elecciones render legislativo 2019 -c hemiciclo -f svg,png
  elecciones render ejecutivo 2024 -c mapa -o mapa.svg
  elecciones render legislativo 2024 -c hemiciclo -f dot`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeElection,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parseElectionArgs(args, &opts); err != nil {
				return err
			}
			opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	cmd.Flags().StringVarP(&opts.Chart, "chart", "c", pipeline.DefaultChart, "chart: barras, circular, hemiciclo, mapa")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height (default 450, 600 for maps)")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "hemicycle rows, 1 to 6 (0 picks from the seat count)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", opts.Strict, "fail when party seats do not add up to the chamber size")
	cmd.Flags().BoolVar(&opts.Fallback, "fallback", false, "draw barras when the chart does not apply to the election")

	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title (default: election and year)")
	cmd.Flags().BoolVar(&opts.Popups, "popups", opts.Popups, "embed hover tooltips")
	cmd.Flags().BoolVar(&opts.NoLegend, "no-legend", false, "omit the legend")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.Engine, "engine", pipeline.EngineAuto, "PNG engine: auto, rsvg, graphviz")

	_ = cmd.RegisterFlagCompletionFunc("chart", cobra.FixedCompletions(pipeline.Charts, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formatOrder, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	if opts.Title == "" {
		opts.Title = pipeline.DefaultTitle(opts)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s %s %d...", opts.Chart, opts.Election, opts.Year))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, basePath(output, defaultBase(result.Layout)), output)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s %d", result.Layout.Chart, result.Layout.Year))

	if result.Layout.Chart != opts.Chart {
		printWarning("%s has no %s chart, drew %s instead", opts.Election, opts.Chart, result.Layout.Chart)
	}
	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Items, itemUnit(result.Layout.Chart), result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// formatOrder fixes the order files are written and listed in.
var formatOrder = []string{
	pipeline.FormatSVG,
	pipeline.FormatPNG,
	pipeline.FormatPDF,
	pipeline.FormatJSON,
	pipeline.FormatDOT,
}

// writeArtifacts writes each artifact next to base. A single artifact goes
// to output verbatim when one was given.
func writeArtifacts(artifacts map[string][]byte, base, output string) ([]string, error) {
	var paths []string
	for _, format := range formatOrder {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if len(artifacts) == 1 && output != "" {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path. If output carries a known format
// extension (.svg, .png, ...) it is stripped; an empty output uses fallback.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// defaultBase names output files after what they show,
// e.g. "legislativo-2024-hemiciclo".
func defaultBase(l pipeline.Layout) string {
	return fmt.Sprintf("%s-%d-%s", l.Election, l.Year, l.Chart)
}

// parseElectionArgs fills the election type and optional year from
// positional arguments.
func parseElectionArgs(args []string, opts *pipeline.Options) error {
	t, err := election.ParseType(args[0])
	if err != nil {
		return err
	}
	opts.Election = string(t)
	opts.Year = pipeline.DefaultYear
	if len(args) > 1 {
		if opts.Year, err = election.ParseYear(args[1]); err != nil {
			return err
		}
	}
	return nil
}

// completeElection completes the election type, then the year.
func completeElection(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		types := make([]string, len(election.Types))
		for i, t := range election.Types {
			types[i] = string(t)
		}
		return types, cobra.ShellCompDirectiveNoFileComp
	case 1:
		years := make([]string, len(election.Years))
		for i, y := range election.Years {
			years[i] = strconv.Itoa(y)
		}
		return years, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// itemUnit names what a chart's items are for the stats line.
func itemUnit(chart string) string {
	switch chart {
	case pipeline.ChartHemicycle:
		return "seats"
	case pipeline.ChartMap:
		return "provinces"
	}
	return "parties"
}
