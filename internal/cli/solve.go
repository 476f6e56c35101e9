package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lewis/pkg/errors"
	"github.com/matzehuels/lewis/pkg/graph"
	"github.com/matzehuels/lewis/pkg/pipeline"
)

// Print styles for the solve command.
const (
	printBonds = "bonds"
	printAtoms = "atoms"
	printJSON  = "json"
)

// solveFlags are the solver flags shared by every command that solves.
type solveFlags struct {
	all     bool
	limit   int
	maxIon  int
	timeout time.Duration
	noCache bool
	refresh bool
}

func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, "enumerate every structure instead of stopping at the first")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum structures kept with --all (default from config)")
	cmd.Flags().IntVar(&f.maxIon, "max-ion", 0, "largest ion charge tried (default from config)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "solve timeout (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached structures and solve again")
}

// options overlays changed flags on the configured defaults.
func (c *CLI) options(cmd *cobra.Command, formula string, f *solveFlags) pipeline.Options {
	opts := c.Config.PipelineOptions(formula)
	opts.Logger = c.Logger
	if f.all {
		opts.Mode = "all"
	}
	if cmd.Flags().Changed("limit") {
		opts.Limit = f.limit
	}
	if cmd.Flags().Changed("max-ion") {
		opts.MaxIonCharge = f.maxIon
	}
	if cmd.Flags().Changed("timeout") {
		opts.Timeout = f.timeout
	}
	opts.Refresh = f.refresh
	return opts
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		flags  solveFlags
		style  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "solve FORMULA",
		Short: "Find bond structures for a molecular formula",
		Long: `Find bond structures that satisfy the octet rule for a molecular formula.

By default the first structure is printed as a list of bonds. Use --all to
enumerate every distinct structure, and -o to save them as JSON for the
render and browse commands.`,
		Example: `  lewis solve CH4
  lewis solve C4H10 --all
  lewis solve NH4 --print atoms
  lewis solve C6H6 --all -o benzene.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch style {
			case printBonds, printAtoms, printJSON:
			default:
				return errors.New(errors.ErrCodeInvalidInput, "invalid --print %q (must be one of: bonds, atoms, json)", style)
			}
			opts := c.options(cmd, args[0], &flags)
			return c.runSolve(cmd.Context(), opts, flags.noCache, style, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&style, "print", "p", printBonds, "output style: bonds, atoms, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write structures to a JSON file")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, opts pipeline.Options, noCache bool, style, output string) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	structures, cached, err := c.solveWithSpinner(ctx, runner, opts)
	if err != nil {
		return err
	}
	prog.done("Solved "+structures[0].Formula, "structures", len(structures), "cached", cached)

	if output != "" {
		if err := graph.WriteFile(structures, output); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
	}

	if style == printJSON {
		return graph.Write(structures, out)
	}

	for i, s := range structures {
		if i > 0 {
			printNewline()
		}
		fmt.Fprintln(out, structureTitle(s, len(structures)))
		switch style {
		case printAtoms:
			fmt.Fprintln(out, atomTable(s))
		default:
			fmt.Fprintln(out, bondTable(s))
		}
	}

	printNewline()
	printSuccess("Found %d structure(s) for %s", len(structures), structures[0].Formula)
	printStats(len(structures[0].Atoms), len(structures), cached)
	if output != "" {
		printFile(output)
		printNewline()
		printNextStep("Render", "lewis render "+output)
	}
	return nil
}

// solveWithSpinner runs the solver while showing a spinner.
func (c *CLI) solveWithSpinner(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) ([]graph.Structure, bool, error) {
	spinner := newSpinner(ctx, fmt.Sprintf("Solving %s...", opts.Formula))
	spinner.Start()

	structures, cached, err := runner.SolveWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return nil, false, err
	}
	spinner.Stop()

	if spinner.Cancelled() {
		return nil, false, ctx.Err()
	}
	return structures, cached, nil
}

// =============================================================================
// Tables
// =============================================================================

func structureTitle(s graph.Structure, total int) string {
	title := StyleTitle.Render(fmt.Sprintf("%s #%d", s.Formula, s.Index+1))
	meta := []string{s.Method}
	if total > 1 {
		meta = append(meta, fmt.Sprintf("%d of %d", s.Index+1, total))
	}
	if s.Charge != 0 {
		meta = append(meta, fmt.Sprintf("charge %+d", s.Charge))
	}
	if s.Endpoints != nil {
		meta = append(meta, fmt.Sprintf("ring %s-%s", s.Endpoints.Start, s.Endpoints.End))
	}
	if s.Rings > 0 {
		meta = append(meta, fmt.Sprintf("%d ring(s)", s.Rings))
	}
	// isomers of one formula differ by their carbon skeleton
	if total > 1 && s.Skeleton != "" {
		meta = append(meta, "C "+s.Skeleton)
	}
	return title + " " + StyleDim.Render(strings.Join(meta, " · "))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

var bondSymbols = map[int]string{1: "-", 2: "=", 3: "≡"}

// bondTable lists bonds. A bond from an atom to itself is a lone ion.
func bondTable(s graph.Structure) string {
	t := newTable("From", "", "To", "Order")
	for _, b := range s.Bonds {
		if b.From == b.To {
			t.Row(b.From, "", "(ion)", "")
			continue
		}
		t.Row(b.From, bondSymbols[b.Order], b.To, strconv.Itoa(b.Order))
	}
	return t.Render()
}

// atomTable lists atoms with their valence, charge and grid position.
func atomTable(s graph.Structure) string {
	t := newTable("Atom", "Element", "Valence", "Charge", "Position")
	atoms := append([]graph.Atom(nil), s.Atoms...)
	sort.SliceStable(atoms, func(i, j int) bool { return atoms[i].Name < atoms[j].Name })
	for _, a := range atoms {
		charge := ""
		if a.Charge != 0 {
			charge = fmt.Sprintf("%+d", a.Charge)
		}
		pos := ""
		if p, ok := s.Positions[a.Name]; ok {
			pos = fmt.Sprintf("(%d, %d)", p.X, p.Y)
		}
		t.Row(a.Name, a.Element, strconv.Itoa(a.Valence), charge, pos)
	}
	return t.Render()
}
