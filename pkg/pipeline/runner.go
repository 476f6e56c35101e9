package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lewis/pkg/cache"
	"github.com/matzehuels/lewis/pkg/errors"
	"github.com/matzehuels/lewis/pkg/formula"
	"github.com/matzehuels/lewis/pkg/graph"
	"github.com/matzehuels/lewis/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeSolve    = "solve"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides cache.SolveTTL and cache.ArtifactTTL when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete solve → layout → render pipeline with caching.
// Artifacts are rendered for the structure at opts.Index.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1+2: Solve and layout
	solveStart := time.Now()
	structures, solveHit, err := r.SolveWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Structures = structures
	result.Formula = structures[0].Formula
	result.Stats.Atoms = len(structures[0].Atoms)
	result.Stats.Structures = len(structures)
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("solved structures",
		"formula", result.Formula,
		"structures", len(structures),
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	if opts.Index >= len(structures) {
		return nil, errors.New(errors.ErrCodeNotFound, "structure %d not found (%d available)", opts.Index, len(structures))
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, structures[opts.Index], opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo enumerates structures with caching and returns cache hit info.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, opts Options) ([]graph.Structure, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSolve(); err != nil {
		return nil, false, err
	}

	normalized, err := formula.Normalize(opts.Formula)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.SolveKey(normalized, opts.SolveKeyOpts())
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		var cached []graph.Structure
		err := cache.GetJSON(ctx, r.Cache, cacheKey, &cached)
		switch {
		case err == nil && len(cached) > 0:
			hooks.OnCacheHit(ctx, keyTypeSolve)
			return cached, true, nil
		case err != nil && !stderrors.Is(err, cache.ErrCacheMiss):
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
		hooks.OnCacheMiss(ctx, keyTypeSolve)
	}

	structures, err := Solve(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	if size, err := cache.SetJSON(ctx, r.Cache, cacheKey, structures, r.ttl(cache.SolveTTL)); err != nil {
		r.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
	} else {
		hooks.OnCacheSet(ctx, keyTypeSolve, size)
	}

	return structures, false, nil
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, opts Options) ([]graph.Structure, error) {
	structures, _, err := r.SolveWithCacheInfo(ctx, opts)
	return structures, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s graph.Structure, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Compute cache key from structure data
	data, err := graph.MarshalStructures([]graph.Structure{s})
	if err != nil {
		return nil, false, fmt.Errorf("serialize structure for cache key: %w", err)
	}
	structureHash := cache.Hash(data)
	hooks := observability.Cache()

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(structureHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
			continue
		}
		hooks.OnCacheMiss(ctx, keyTypeArtifact)
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	// Render only the missing formats
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, s, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(structureHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.ArtifactTTL)); err == nil {
			hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s graph.Structure, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
