package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/hemicycle"
	"github.com/matzehuels/elecciones/pkg/io"
	"github.com/matzehuels/elecciones/pkg/pipeline"
)

// layoutOpts holds the flags of the layout command.
type layoutOpts struct {
	input   string // seat request JSON; empty uses the dataset
	output  string // write the layout JSON here
	json    bool   // print the layout JSON instead of tables
	rows    int    // 0 picks the row count from the seat total
	strict  bool   // reject requests whose seats do not add up
	noCache bool
}

// layoutCommand creates the layout command for computing hemicycle seat
// positions.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{strict: true}

	cmd := &cobra.Command{
		Use:   "layout [año]",
		Short: "Compute the hemicycle seat layout of a National Assembly",
		Long: `Compute the hemicycle seat layout of a National Assembly.

Without --input the seats come from the legislative election of the given
year (default 2024). With --input they come from a JSON request:

  {"total_seats": 5, "parties": [{"name": "A", "seats": 3, "color": "#f00"},
                                 {"name": "B", "seats": 2, "color": "#00f"}]}

The rows and party tally are printed as tables; --json prints the full
layout and -o writes it to a file.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			years := make([]string, len(election.Years))
			for i, y := range election.Years {
				years[i] = strconv.Itoa(y)
			}
			return years, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			year := pipeline.DefaultYear
			if len(args) > 0 {
				y, err := election.ParseYear(args[0])
				if err != nil {
					return err
				}
				year = y
			}
			return c.runLayout(cmd.Context(), year, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "seat request JSON file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the layout JSON to a file")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the layout JSON")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "number of rows, 1 to 6 (0 picks from the seat count)")
	cmd.Flags().BoolVar(&opts.strict, "strict", opts.strict, "fail when party seats do not add up to the chamber size")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout computes the layout and prints or writes it.
func (c *CLI) runLayout(ctx context.Context, year int, opts layoutOpts) error {
	logger := loggerFromContext(ctx)

	var (
		l      hemicycle.Layout
		cached bool
		err    error
	)
	if opts.input != "" {
		l, err = layoutFromFile(opts)
	} else {
		l, cached, err = c.layoutFromDataset(ctx, year, opts)
	}
	if err != nil {
		return err
	}
	logger.Debug("computed seat layout", "seats", len(l.Seats), "rows", l.Rows.RowCount, "cached", cached)

	if opts.json {
		return io.WriteLayout(l, stdout)
	}
	if opts.output != "" {
		if err := io.ExportLayout(l, opts.output); err != nil {
			return err
		}
	}

	fmt.Fprintln(stdout, seatTable(l))
	if opts.output != "" {
		printSuccess("Layout complete")
		printFile(opts.output)
		printStats(len(l.Seats), "seats", cached)
		printNewline()
		printNextStep("Draw it", fmt.Sprintf("%s render legislativo %d -c %s", appName, year, pipeline.ChartHemicycle))
	}
	return nil
}

// layoutFromFile builds the layout of a request read from disk.
func layoutFromFile(opts layoutOpts) (hemicycle.Layout, error) {
	req, err := io.ImportRequest(opts.input)
	if err != nil {
		return hemicycle.Layout{}, err
	}
	if opts.strict {
		if err := hemicycle.Validate(req); err != nil {
			return hemicycle.Layout{}, err
		}
	} else if sum := req.SeatSum(); sum != req.TotalSeats {
		printWarning("party seats sum to %d, chamber has %d", sum, req.TotalSeats)
	}
	var buildOpts []hemicycle.Option
	if opts.rows > 0 {
		buildOpts = append(buildOpts, hemicycle.WithRows(opts.rows))
	}
	return hemicycle.Build(req, buildOpts...), nil
}

// layoutFromDataset runs the layout stage of the pipeline for one year.
func (c *CLI) layoutFromDataset(ctx context.Context, year int, opts layoutOpts) (hemicycle.Layout, bool, error) {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return hemicycle.Layout{}, false, err
	}
	defer runner.Close()

	l, cached, err := runner.GenerateLayoutWithCacheInfo(ctx, pipeline.Options{
		Election: string(election.Legislative),
		Year:     year,
		Chart:    pipeline.ChartHemicycle,
		Rows:     opts.rows,
		Strict:   opts.strict,
	})
	if err != nil {
		return hemicycle.Layout{}, false, err
	}
	return *l.Hemicycle, cached, nil
}
