package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lewis/pkg/graph"
	"github.com/matzehuels/lewis/pkg/pipeline"
)

var (
	browseGridStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(1, 3)
	browseHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, an interactive pager over the
// structures of a formula.
func (c *CLI) browseCommand() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "browse FORMULA|structures.json",
		Short: "Page through structures interactively",
		Long: `Page through structures interactively.

All structures are enumerated (as with --all) and shown one at a time as a
text grid next to their bond list. Use ←/→ to move, tab to switch between
bonds and atoms, and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.all = true
			opts := c.options(cmd, args[0], &flags)
			opts.Formats = []string{pipeline.FormatText}
			return c.runBrowse(cmd.Context(), args[0], opts, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().Lookup("all").Hidden = true

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, input string, opts pipeline.Options, flags solveFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	structures, _, _, err := c.loadStructures(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	grids := make([]string, len(structures))
	for i, s := range structures {
		artifacts, err := runner.Render(ctx, s, opts)
		if err != nil {
			return fmt.Errorf("layout %s #%d: %w", s.Formula, s.Index+1, err)
		}
		grids[i] = strings.TrimRight(string(artifacts[pipeline.FormatText]), "\n")
	}

	_, err = tea.NewProgram(newBrowseModel(structures, grids), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// browseModel - Interactive structure pager
// =============================================================================

type browseModel struct {
	structures []graph.Structure
	grids      []string
	cursor     int
	atoms      bool // show the atom table instead of bonds
}

func newBrowseModel(structures []graph.Structure, grids []string) browseModel {
	return browseModel{structures: structures, grids: grids}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "n", " ":
		m.cursor = (m.cursor + 1) % len(m.structures)
	case "left", "h", "p":
		m.cursor = (m.cursor - 1 + len(m.structures)) % len(m.structures)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.structures) - 1
	case "tab":
		m.atoms = !m.atoms
	}
	return m, nil
}

func (m browseModel) View() string {
	s := m.structures[m.cursor]

	var b strings.Builder
	b.WriteString(structureTitle(s, len(m.structures)))
	b.WriteString("\n\n")

	side := bondTable(s)
	if m.atoms {
		side = atomTable(s)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, browseGridStyle.Render(m.grids[m.cursor]), "  ", side))
	b.WriteString("\n\n")
	b.WriteString(browseHelpStyle.Render(fmt.Sprintf("  [%d/%d]  ←/→ move · tab bonds/atoms · q quit", m.cursor+1, len(m.structures))))
	b.WriteString("\n")
	return b.String()
}
