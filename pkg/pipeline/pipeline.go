// Package pipeline provides the solve → layout → render pipeline for lewis.
//
// This package implements the complete pipeline used by the CLI and the HTTP
// server. Centralizing it keeps caching, defaults and error codes identical
// across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Solve: Parse the formula and enumerate bond structures
//  2. Layout: Place each structure's atoms on the grid
//  3. Render: Generate output in various formats (SVG, PNG, JSON, DOT, text)
//
// Solve and layout run together and produce [graph.Structure] values, which
// are what the cache and the store persist. Render works from a structure.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formula: "C2H4",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Solve only
//	structures, err := runner.Solve(ctx, opts)
//
//	// Render an existing structure
//	artifacts, err := runner.Render(ctx, structures[0], opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lewis/pkg/cache"
	"github.com/matzehuels/lewis/pkg/errors"
	"github.com/matzehuels/lewis/pkg/graph"
	"github.com/matzehuels/lewis/pkg/render"
	"github.com/matzehuels/lewis/pkg/solver"
)

// =============================================================================
// Default Values - Shared by CLI and Server
// =============================================================================

const (
	// DefaultMode stops at the first structure found.
	DefaultMode = "first"

	// DefaultLimit caps exhaustive enumeration. Larger hydrocarbons have
	// thousands of skeletal isomers.
	DefaultLimit = 64

	// DefaultSize is the default canvas size in pixels.
	DefaultSize = render.DefaultCanvas

	// DefaultTimeout bounds a single solve.
	DefaultTimeout = 30 * time.Second
)

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatText  = "txt"
	FormatNeato = "neato" // SVG laid out by Graphviz
)

// Formats lists every supported output format in display order.
var Formats = []string{FormatSVG, FormatPNG, FormatJSON, FormatDOT, FormatText, FormatNeato}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatText:  true,
	FormatNeato: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Solve options
	Formula      string        `json:"formula"`
	Mode         string        `json:"mode,omitempty"` // "first" or "all"
	MaxIonCharge int           `json:"max_ion_charge,omitempty"`
	Limit        int           `json:"limit,omitempty"` // structures kept in "all" mode
	Timeout      time.Duration `json:"timeout,omitempty"`
	Refresh      bool          `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Size     float64  `json:"size,omitempty"`
	Index    int      `json:"index,omitempty"` // structure rendered by Execute
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Formula is the normalized formula that was solved.
	Formula string

	// Structures are the solved and laid out molecules in enumeration order.
	Structures []graph.Structure

	// Artifacts contains rendered outputs of Structures[Index] keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Atoms      int
	Structures int
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether structures came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.ValidateFormat(format, Formats)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMode checks that a search mode is valid.
func ValidateMode(mode string) error {
	if _, err := solver.ParseMode(mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "invalid mode %q (must be one of: first, all)", mode)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSolve checks required fields and applies solve defaults.
func (o *Options) ValidateForSolve() error {
	if err := errors.ValidateFormula(o.Formula); err != nil {
		return err
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if o.MaxIonCharge < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_ion_charge must not be negative")
	}
	if o.MaxIonCharge == 0 {
		o.MaxIonCharge = solver.DefaultMaxIonCharge
	}
	if o.Limit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "limit must not be negative")
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Size < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "size must be positive")
	}
	if o.Index < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "index must not be negative")
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SolverOptions converts the solve options for the solver package.
// Mode must already be valid.
func (o *Options) SolverOptions() solver.Options {
	mode, _ := solver.ParseMode(o.Mode)
	return solver.Options{
		Mode:         mode,
		MaxIonCharge: o.MaxIonCharge,
		Logger:       o.Logger,
	}
}

// SolveKeyOpts returns cache key options for solving.
func (o *Options) SolveKeyOpts() cache.SolveKeyOpts {
	return cache.SolveKeyOpts{
		Mode:         o.Mode,
		MaxIonCharge: o.MaxIonCharge,
		Limit:        o.Limit,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Size:     o.Size,
		Detailed: o.Detailed,
	}
}

// String summarizes the options for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("%s mode=%s limit=%d", o.Formula, o.Mode, o.Limit)
}
