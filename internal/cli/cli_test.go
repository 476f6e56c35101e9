package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lewis/pkg/cache"
	"github.com/matzehuels/lewis/pkg/config"
	"github.com/matzehuels/lewis/pkg/graph"
)

// captureOutput redirects status output to a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

// isolate points config and cache lookups at temporary directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

// execute runs the root command with args and returns status output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := captureOutput(t)
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestParseFormats(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.Config.Render.Formats = []string{"png"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty uses config", "", "png"},
		{"single format", "svg", "svg"},
		{"multiple formats", "svg,txt,dot", "svg,txt,dot"},
		{"spaces and blanks", " svg, ,neato ", "svg,neato"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(c.parseFormats(tt.input), ",")
			if got != tt.want {
				t.Errorf("parseFormats(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewCacheBackends(t *testing.T) {
	dir := t.TempDir()
	c := New(io.Discard, log.InfoLevel)
	ctx := context.Background()

	c.Config.Cache.Backend = config.BackendFile
	c.Config.Cache.Dir = dir
	ch, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatalf("file cache: %v", err)
	}
	if fc, ok := ch.(*cache.FileCache); !ok || fc.Dir() != dir {
		t.Errorf("file backend = %T", ch)
	}

	if ch, _ := c.newCache(ctx, true); !isNull(ch) {
		t.Errorf("--no-cache = %T, want NullCache", ch)
	}

	c.Config.Cache.Backend = config.BackendNone
	if ch, _ := c.newCache(ctx, false); !isNull(ch) {
		t.Errorf("backend none = %T, want NullCache", ch)
	}
}

func isNull(c cache.Cache) bool {
	_, ok := c.(cache.NullCache)
	return ok
}

func TestCacheDir(t *testing.T) {
	dir := isolate(t)
	c := New(io.Discard, log.InfoLevel)

	got, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "cache", appName); got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}

	c.Config.Cache.Dir = "/srv/lewis-cache"
	if got, _ := c.cacheDir(); got != "/srv/lewis-cache" {
		t.Errorf("configured cacheDir() = %q", got)
	}
}

func TestSolveCommand(t *testing.T) {
	isolate(t)

	got, err := execute(t, "solve", "CH4", "--no-cache")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	for _, want := range []string{"CH4 #1", "branch", "H1", "Found 1 structure(s) for CH4", "1 structures"} {
		if !strings.Contains(got, want) {
			t.Errorf("solve output missing %q:\n%s", want, got)
		}
	}
}

func TestStructureTitle(t *testing.T) {
	tests := []struct {
		name   string
		s      graph.Structure
		total  int
		want   []string
		absent []string
	}{
		{
			name:   "single chain",
			s:      graph.Structure{Formula: "C4H10", Method: "branch", Skeleton: "1,1,2,2"},
			total:  1,
			want:   []string{"C4H10 #1", "branch"},
			absent: []string{"ring", "C 1,1,2,2"},
		},
		{
			name:  "isomer",
			s:     graph.Structure{Formula: "C4H10", Index: 1, Method: "branch", Skeleton: "1,1,1,3"},
			total: 2,
			want:  []string{"C4H10 #2", "2 of 2", "C 1,1,1,3"},
		},
		{
			name:  "ring",
			s:     graph.Structure{Formula: "O3", Method: "circle", Endpoints: &graph.Endpoints{Start: "O1", End: "O3"}, Rings: 1},
			total: 1,
			want:  []string{"ring O1-O3", "1 ring(s)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := structureTitle(tt.s, tt.total)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("structureTitle() = %q, missing %q", got, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("structureTitle() = %q, should not contain %q", got, a)
				}
			}
		})
	}
}

func TestSolveCommandJSONAndFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "water.json")

	got, err := execute(t, "solve", "H2O", "--print", "json", "-o", path)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !strings.HasPrefix(got, "[") || !strings.Contains(got, `"formula": "H2O"`) {
		t.Errorf("json output:\n%s", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("structures file not written: %v", err)
	}

	// The saved file renders without solving again.
	if _, err := execute(t, "render", path, "-f", "dot"); err != nil {
		t.Fatalf("render file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "water.dot")); err != nil {
		t.Errorf("water.dot not written: %v", err)
	}
}

func TestSolveCommandErrors(t *testing.T) {
	isolate(t)

	tests := [][]string{
		{"solve", "Xx"},
		{"solve", "CH4", "--print", "xml"},
		{"solve"},
		{"render", "CH4", "-f", "pdf"},
		{"render", "CH4", "--index", "4", "--no-cache", "-o", "-", "-f", "txt"},
	}
	for _, args := range tests {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v should fail", args)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := isolate(t)
	base := filepath.Join(dir, "out", "co2")

	got, err := execute(t, "render", "CO2", "-f", "svg,txt", "-o", base)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{".svg", ".txt"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("%s not written: %v", base+ext, err)
		}
	}
	if !strings.Contains(got, "Rendered CO2") {
		t.Errorf("render output:\n%s", got)
	}

	// A second run is served from the file cache.
	got, err = execute(t, "render", "CO2", "-f", "svg", "-o", base+".svg")
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if !strings.Contains(got, "cached") {
		t.Errorf("second render should be cached:\n%s", got)
	}
}

func TestRenderStdout(t *testing.T) {
	isolate(t)
	got, err := execute(t, "render", "CO2", "-f", "txt", "-o", "-", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "===") {
		t.Errorf("text render should contain a double bond:\n%s", got)
	}
}

func TestLayoutCommand(t *testing.T) {
	isolate(t)
	got, err := execute(t, "layout", "CO2", "--coords", "--no-cache")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	for _, want := range []string{"===", "Position", "O1"} {
		if !strings.Contains(got, want) {
			t.Errorf("layout output missing %q:\n%s", want, got)
		}
	}
}

func TestConfigCommands(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "lewis.toml")

	if _, err := execute(t, "config", "init", "--config", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	got, err := execute(t, "config", "path", "--config", path)
	if err != nil || strings.TrimSpace(got) != path {
		t.Errorf("config path = %q, %v", got, err)
	}

	got, err = execute(t, "config", "show", "--config", path)
	if err != nil || !strings.Contains(got, `mode = "first"`) {
		t.Errorf("config show = %q, %v", got, err)
	}

	// Values from the file seed command defaults.
	cfg := config.Default()
	cfg.Render.Formats = []string{"dot"}
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	base := filepath.Join(dir, "hcl")
	if _, err := execute(t, "render", "HCl", "--config", path, "-o", base, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(base + ".dot"); err != nil {
		t.Errorf("configured format not used: %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := isolate(t)

	got, err := execute(t, "cache", "path")
	if err != nil || strings.TrimSpace(got) != filepath.Join(dir, "cache", appName) {
		t.Errorf("cache path = %q, %v", got, err)
	}

	if _, err := execute(t, "solve", "HCl"); err != nil {
		t.Fatal(err)
	}
	got, err = execute(t, "cache", "clear")
	if err != nil || !strings.Contains(got, "Cleared 1 cached entries") {
		t.Errorf("cache clear = %q, %v", got, err)
	}
	got, _ = execute(t, "cache", "clear")
	if !strings.Contains(got, "Cache is empty") {
		t.Errorf("second clear = %q", got)
	}
}

func TestBasePathAndOutputPath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"mol.svg", "mol"},
		{"mol.neato.svg", "mol"},
		{"dir/mol.txt", "dir/mol"},
		{"mol", "mol"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}

	if got := outputPath("CO2", "svg", 0, false, "", 1); got != "CO2.svg" {
		t.Errorf("default path = %q", got)
	}
	if got := outputPath("C4H10", "png", 1, true, "", 1); got != "C4H10_2.png" {
		t.Errorf("numbered path = %q", got)
	}
	if got := outputPath("x", "svg", 0, false, "x.svg", 1); got != "x.svg" {
		t.Errorf("explicit path = %q", got)
	}
	if got := outputPath("x", "neato", 0, false, "x", 2); got != "x.neato.svg" {
		t.Errorf("neato path = %q", got)
	}
}
