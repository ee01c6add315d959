package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/elecciones/pkg/election"
)

// yearsCommand creates the years command, which lists the bundled elections
// or prints one result.
func (c *CLI) yearsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "years [tipo] [año]",
		Short: "List the elections in the dataset, or show one result",
		Long: `List the elections in the dataset.

With a type, only that type is listed. With a type and a year, the result
of that election is printed as a table.

Examples:
  elecciones years
  elecciones years legislativo
  elecciones years ejecutivo 2019`,
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: completeElection,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runYears(cmd.Context(), args)
		},
	}
}

func (c *CLI) runYears(ctx context.Context, args []string) error {
	data, err := c.loadData()
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("loaded dataset", "hash", data.Hash())

	types := election.Types
	if len(args) > 0 {
		t, err := election.ParseType(args[0])
		if err != nil {
			return err
		}
		types = []election.Type{t}
	}

	if len(args) == 2 {
		year, err := election.ParseYear(args[1])
		if err != nil {
			return err
		}
		r, err := data.Result(types[0], year)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, StyleTitle.Render(fmt.Sprintf("%s %d", r.Type.Label(), r.Year)))
		fmt.Fprintln(stdout, resultTable(r))
		printKeyValue(r.Type.TotalLabel(), humanize.Comma(int64(r.Total())))
		if winner, ok := r.Winner(); ok {
			printKeyValue("Ganador", winner.Name)
		}
		return nil
	}

	for _, t := range types {
		years := data.Years(t)
		if len(years) == 0 {
			printInfo("%s: sin datos", t.Label())
			continue
		}
		strs := make([]string, len(years))
		for i, y := range years {
			strs[i] = strconv.Itoa(y)
		}
		printKeyValue(string(t), StyleNumber.Render(strings.Join(strs, "  ")))
	}
	printNewline()
	printNextStep("Show a result", appName+" years legislativo 2024")
	return nil
}
