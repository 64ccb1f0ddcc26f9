// Package observability lets callers watch the engine, the caches and the
// HTTP API without tying any package to a metrics or tracing backend.
//
// Each event category has a hook interface with a no-op default. A program
// installs its own implementations once, before laying anything out:
//
//	observability.SetLayoutHooks(&passCounter{})
//	observability.SetCacheHooks(&hitRatio{})
//
// and instrumented code reports through the accessors:
//
//	observability.Layout().OnAllocate("width", available, unclaimed, duration)
//
// Layout hooks carry no context: allocation passes run inside change
// notifications, which have no request scope.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the allocation engine.
type LayoutHooks interface {
	// OnClassify records a classification scan over a container's children.
	OnClassify(axis string, fixed, elastic, stretch int, err error)

	// OnAllocate records one allocation pass.
	OnAllocate(axis string, available, unclaimed float64, duration time.Duration)

	// OnRebind records the installation of a standing resize subscription.
	OnRebind(axis string, children int)

	// OnAlign records one applied alignment directive.
	OnAlign(directive string, children int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnError records a request that failed with an error.
	OnError(ctx context.Context, method, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnClassify(string, int, int, int, error)            {}
func (NoopLayoutHooks) OnAllocate(string, float64, float64, time.Duration) {}
func (NoopLayoutHooks) OnRebind(string, int)                               {}
func (NoopLayoutHooks) OnAlign(string, int)                                {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// slot holds the installed implementation of one hook interface.
type slot[H any] struct {
	mu   sync.RWMutex
	h    H
	noop H
}

func newSlot[H any](noop H) *slot[H] { return &slot[H]{h: noop, noop: noop} }

func (s *slot[H]) get() H {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.h
}

func (s *slot[H]) set(h H) {
	s.mu.Lock()
	s.h = h
	s.mu.Unlock()
}

func (s *slot[H]) reset() { s.set(s.noop) }

var (
	layoutSlot = newSlot[LayoutHooks](NoopLayoutHooks{})
	cacheSlot  = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot   = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetLayoutHooks installs h for allocation events. Nil is ignored.
func SetLayoutHooks(h LayoutHooks) {
	if h != nil {
		layoutSlot.set(h)
	}
}

// SetCacheHooks installs h for cache events. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks installs h for API events. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

// Layout returns the installed layout hooks.
func Layout() LayoutHooks { return layoutSlot.get() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset reinstalls the no-op hooks everywhere.
func Reset() {
	layoutSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
