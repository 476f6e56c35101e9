package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lewis/pkg/pipeline"
)

// layoutCommand creates the layout command, which prints structures as
// text grids.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  solveFlags
		coords bool
	)

	cmd := &cobra.Command{
		Use:   "layout FORMULA|structures.json",
		Short: "Print structures laid out on the grid as text",
		Long: `Print structures laid out on the grid as text.

Each atom sits on an integer grid cell. Single, double and triple bonds are
drawn with -, = and ≡, or |, ‖ and ⦀ when vertical. Use --coords to list the
grid position of every atom as well.`,
		Example: `  lewis layout CO2
  lewis layout C4H10 --all --coords`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, args[0], &flags)
			opts.Formats = []string{pipeline.FormatText}
			return c.runLayout(cmd.Context(), args[0], opts, flags, coords)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&coords, "coords", false, "also print atom grid positions")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, flags solveFlags, coords bool) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	structures, cached, _, err := c.loadStructures(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	for i, s := range structures {
		if i > 0 {
			printNewline()
		}
		artifacts, err := runner.Render(ctx, s, opts)
		if err != nil {
			return fmt.Errorf("layout %s #%d: %w", s.Formula, s.Index+1, err)
		}
		fmt.Fprintln(out, structureTitle(s, len(structures)))
		printNewline()
		fmt.Fprint(out, string(artifacts[pipeline.FormatText]))
		if coords {
			printNewline()
			fmt.Fprintln(out, atomTable(s))
		}
	}

	printNewline()
	printStats(len(structures[0].Atoms), len(structures), cached)
	return nil
}
