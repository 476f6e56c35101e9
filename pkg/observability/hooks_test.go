package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recorder counts events of every family.
type recorder struct {
	mu     sync.Mutex
	events map[string]int
}

func newRecorder() *recorder { return &recorder{events: make(map[string]int)} }

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[name]++
}

func (r *recorder) OnSolveStart(context.Context, string, string) { r.add("solve.start") }
func (r *recorder) OnSolveComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	if err != nil {
		r.add("solve.error")
		return
	}
	r.add("solve.ok")
}
func (r *recorder) OnRenderStart(context.Context, []string) { r.add("render.start") }
func (r *recorder) OnRenderComplete(context.Context, []string, time.Duration, error) {
	r.add("render.done")
}
func (r *recorder) OnCacheHit(_ context.Context, k string)       { r.add("cache.hit." + k) }
func (r *recorder) OnCacheMiss(_ context.Context, k string)      { r.add("cache.miss." + k) }
func (r *recorder) OnCacheSet(_ context.Context, k string, _ int) { r.add("cache.set." + k) }
func (r *recorder) OnRequest(context.Context, string, string)    { r.add("http.request") }
func (r *recorder) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	if status >= 500 {
		r.add("http.5xx")
		return
	}
	r.add("http.response")
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	ctx := context.Background()
	Pipeline().OnSolveComplete(ctx, "CH4", 1, time.Millisecond, nil)
	Cache().OnCacheSet(ctx, "artifact", 10)
	HTTP().OnResponse(ctx, "GET", "/api/solve", 200, time.Millisecond)
}

func TestRegisteredHooksReceiveEvents(t *testing.T) {
	t.Cleanup(Reset)
	r := newRecorder()
	SetPipelineHooks(r)
	SetCacheHooks(r)
	SetHTTPHooks(r)

	ctx := context.Background()
	Pipeline().OnSolveStart(ctx, "H2O", "first")
	Pipeline().OnSolveComplete(ctx, "H2O", 1, time.Millisecond, nil)
	Pipeline().OnSolveComplete(ctx, "Xx", 0, time.Millisecond, errors.New("unknown element"))
	Cache().OnCacheMiss(ctx, "solve")
	Cache().OnCacheSet(ctx, "solve", 120)
	Cache().OnCacheHit(ctx, "solve")
	HTTP().OnRequest(ctx, "GET", "/api/solve")
	HTTP().OnResponse(ctx, "GET", "/api/solve", 500, time.Millisecond)

	want := map[string]int{
		"solve.start":      1,
		"solve.ok":         1,
		"solve.error":      1,
		"cache.miss.solve": 1,
		"cache.set.solve":  1,
		"cache.hit.solve":  1,
		"http.request":     1,
		"http.5xx":         1,
	}
	for name, n := range want {
		if got := r.events[name]; got != n {
			t.Errorf("events[%q] = %d, want %d", name, got, n)
		}
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)
	r := newRecorder()
	SetCacheHooks(r)
	SetCacheHooks(nil)
	if Cache() != CacheHooks(r) {
		t.Errorf("Cache() = %T after SetCacheHooks(nil), want the recorder", Cache())
	}
}

func TestReset(t *testing.T) {
	r := newRecorder()
	SetPipelineHooks(r)
	SetHTTPHooks(r)
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Cleanup(Reset)
	r := newRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetCacheHooks(r)
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheHit(context.Background(), "artifact")
		}()
	}
	wg.Wait()
}
