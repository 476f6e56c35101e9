// Package observability lets the server (or any embedding program) watch
// the pipeline without the solver and renderers importing a metrics stack.
//
// Three event families are reported: solve and render runs, cache lookups,
// and served HTTP requests. Each family has an interface, a no-op default
// and a process-wide slot. Libraries read the slot on every event; the
// program that owns the process fills it once at startup:
//
//	metrics := server.NewMetrics("lewis")
//	observability.SetPipelineHooks(metrics)
//	observability.SetCacheHooks(metrics)
//
// and the pipeline reports through it:
//
//	observability.Pipeline().OnSolveStart(ctx, "C2H6", "all")
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the solve and render pipeline.
type PipelineHooks interface {
	OnSolveStart(ctx context.Context, formula, mode string)
	OnSolveComplete(ctx context.Context, formula string, structures int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups. keyType is "solve" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP server. route is the matched
// route pattern, not the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnSolveStart(context.Context, string, string)                       {}
func (NoopPipelineHooks) OnSolveComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds the registered implementation of one hook family. Reads are
// lock-free since they happen on every solve and request.
type slot[T any] struct {
	noop T
	cur  atomic.Pointer[T]
}

func (s *slot[T]) get() T {
	if p := s.cur.Load(); p != nil {
		return *p
	}
	return s.noop
}

func (s *slot[T]) set(h T) { s.cur.Store(&h) }

func (s *slot[T]) reset() { s.cur.Store(nil) }

var (
	pipelineSlot = &slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheSlot    = &slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot     = &slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores the no-op defaults. Tests that register hooks call it in
// cleanup.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
