package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lewis/pkg/errors"
	"github.com/matzehuels/lewis/pkg/graph"
	"github.com/matzehuels/lewis/pkg/pipeline"
)

// extensions maps formats to output file extensions.
var extensions = map[string]string{
	pipeline.FormatSVG:   ".svg",
	pipeline.FormatPNG:   ".png",
	pipeline.FormatJSON:  ".json",
	pipeline.FormatDOT:   ".dot",
	pipeline.FormatText:  ".txt",
	pipeline.FormatNeato: ".neato.svg",
}

// renderOpts holds the render-only flags.
type renderOpts struct {
	output   string
	formats  string
	index    int
	size     float64
	detailed bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags solveFlags
		ro    renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render FORMULA|structures.json",
		Short: "Draw structures as SVG, PNG, DOT or text",
		Long: `Draw structures as SVG, PNG, DOT or text.

The argument is either a formula, which is solved first, or a JSON file
written by 'lewis solve -o'. Output files are named after the formula
unless -o is given. With --all every structure is rendered and numbered.

Formats: svg, png, json, dot, txt, neato (SVG laid out by Graphviz).`,
		Example: `  lewis render CO2
  lewis render C4H10 --all -f svg,png
  lewis render benzene.json -f txt -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, args[0], &flags)
			opts.Formats = c.parseFormats(ro.formats)
			opts.Index = ro.index
			opts.Detailed = ro.detailed
			if cmd.Flags().Changed("size") {
				opts.Size = ro.size
			}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			if ro.output == "-" && (len(opts.Formats) != 1 || flags.all) {
				return errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one format and one structure")
			}
			return c.runRender(cmd.Context(), args[0], opts, flags, ro.output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file, base path for several outputs, or - for stdout")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s), comma-separated (default from config)")
	cmd.Flags().IntVarP(&ro.index, "index", "i", 0, "structure to render (0-based)")
	cmd.Flags().Float64Var(&ro.size, "size", 0, "canvas size in pixels (default from config)")
	cmd.Flags().BoolVar(&ro.detailed, "detailed", false, "label DOT nodes with atom names and valences")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags solveFlags, output string) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	structures, cached, base, err := c.loadStructures(ctx, runner, input, opts)
	if err != nil {
		return err
	}
	if output != "" && output != "-" {
		base = basePath(output)
	}

	selected := structures
	if !flags.all {
		if opts.Index >= len(structures) {
			return errors.New(errors.ErrCodeNotFound, "structure %d not found (%d available)", opts.Index, len(structures))
		}
		selected = structures[opts.Index : opts.Index+1]
	}

	var written []string
	for _, s := range selected {
		artifacts, err := runner.Render(ctx, s, opts)
		if err != nil {
			return fmt.Errorf("render %s #%d: %w", s.Formula, s.Index+1, err)
		}
		for _, format := range opts.Formats {
			if output == "-" {
				_, err := out.Write(artifacts[format])
				return err
			}
			path := outputPath(base, format, s.Index, flags.all, output, len(opts.Formats))
			if err := writeFile(path, artifacts[format]); err != nil {
				return err
			}
			logger.Debug("wrote artifact", "path", path, "bytes", len(artifacts[format]))
			written = append(written, path)
		}
	}

	printSuccess("Rendered %s", structures[0].Formula)
	for _, p := range written {
		printFile(p)
	}
	printStats(len(structures[0].Atoms), len(structures), cached)
	return nil
}

// loadStructures solves a formula or reads a structures file.
// It returns the structures, whether they came from cache, and the default
// output base path.
func (c *CLI) loadStructures(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) ([]graph.Structure, bool, string, error) {
	if isFile(input) {
		structures, err := graph.ReadFile(input)
		if err != nil {
			return nil, false, "", fmt.Errorf("load structures %s: %w", input, err)
		}
		if len(structures) == 0 {
			return nil, false, "", errors.New(errors.ErrCodeInvalidInput, "%s holds no structures", input)
		}
		return structures, false, strings.TrimSuffix(input, filepath.Ext(input)), nil
	}

	structures, cached, err := c.solveWithSpinner(ctx, runner, opts)
	if err != nil {
		return nil, false, "", err
	}
	return structures, cached, structures[0].Formula, nil
}

func isFile(arg string) bool {
	if !strings.HasSuffix(strings.ToLower(arg), ".json") {
		return false
	}
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}

// basePath strips a known format extension from an output path.
func basePath(output string) string {
	// The neato extension ends in ".svg", so it is tried first.
	for _, format := range []string{pipeline.FormatNeato, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatText} {
		if ext := extensions[format]; strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPath names one artifact. An explicit output with a single format
// and structure is used verbatim.
func outputPath(base, format string, index int, numbered bool, output string, formats int) string {
	if output != "" && formats == 1 && !numbered && filepath.Ext(output) != "" {
		return output
	}
	if numbered {
		base = fmt.Sprintf("%s_%d", base, index+1)
	}
	return base + extensions[format]
}

func writeFile(path string, data []byte) error {
	f, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// openOutput creates path, or returns stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{out}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
